package crazyeights

// Ruleset is the set of house rules a game is constructed with.
// The engine consults these flags instead of hard-coding rank effects.
type Ruleset struct {
	UseJokers      bool `json:"useJokers"`      // two Jokers in the deck; a Joker plays on anything
	Use2sForceDraw bool `json:"use2sForceDraw"` // a 2 obliges the next player to draw two cards
	Use7Skip       bool `json:"use7Skip"`       // a 7 skips the next player
	UseJackReverse bool `json:"useJackReverse"` // a Jack reverses (or goes again with 2 players)
	UseKingGoAgain bool `json:"useKingGoAgain"` // a King lets the same player go again
	HandSize       int  `json:"handSize"`
}

const (
	minPlayers      = 2
	defaultHandSize = 8
	forcedDrawCount = 2
)

// DefaultRuleset returns the full house-rule set with 8-card hands
func DefaultRuleset() Ruleset {
	return Ruleset{
		UseJokers:      true,
		Use2sForceDraw: true,
		Use7Skip:       true,
		UseJackReverse: true,
		UseKingGoAgain: true,
		HandSize:       defaultHandSize,
	}
}

// ClassicRuleset returns plain Crazy Eights: 7-card hands, eights wild,
// no other special ranks and no Jokers.
func ClassicRuleset() Ruleset {
	return Ruleset{HandSize: 7}
}

// DeckTotal returns the number of cards a game under this ruleset owns
// for its whole lifetime.
func (r Ruleset) DeckTotal() int {
	if r.UseJokers {
		return 54
	}
	return 52
}

func (r Ruleset) handSize() int {
	if r.HandSize <= 0 {
		return defaultHandSize
	}
	return r.HandSize
}
