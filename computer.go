package crazyeights

import (
	"github.com/ottoh/crazyeights/deck"
)

// ActionType classifies a computer move
type ActionType int

const (
	ActionPlay ActionType = iota
	ActionDraw
	ActionPass
)

// Action is one move for the caller to apply through the public
// engine operations.
type Action struct {
	Type       ActionType
	Card       *deck.Card
	ChosenSuit *deck.Suit
}

// DecideMove picks the computer seat's next move. It is a pure policy
// over the engine's public surface: the caller applies the action and
// calls DecideMove again while the computer still holds the turn.
func DecideMove(g *Game, playerID string) Action {
	if g.PendingDraw() > 0 {
		return Action{Type: ActionDraw}
	}

	hand, err := g.Hand(playerID)
	if err != nil {
		return Action{Type: ActionPass}
	}

	valid := []deck.Card{}
	for _, c := range hand {
		if g.IsValidPlay(c) {
			valid = append(valid, c)
		}
	}

	if len(valid) == 0 {
		if !g.HasDrawn() {
			return Action{Type: ActionDraw}
		}
		return Action{Type: ActionPass}
	}

	card := chooseCard(g, hand, valid)
	action := Action{Type: ActionPlay, Card: &card}
	if card.Rank() == deck.Eight {
		suit := chooseSuitForEight(hand, card)
		action.ChosenSuit = &suit
	}
	return action
}

// chooseCard applies the play priority: a plain card first, then a
// go-again card with a follow-up, then a 7 that isn't the last card,
// then a reversing Jack, then whatever valid card is left.
func chooseCard(g *Game, hand, valid []deck.Card) deck.Card {
	rs := g.ruleset
	numPlayers := len(g.players)

	for _, c := range valid {
		if !isSpecialRank(rs, c.Rank()) {
			return c
		}
	}

	for _, c := range valid {
		if isGoAgain(rs, numPlayers, c.Rank()) && hasFollowUp(rs, hand, c) {
			return c
		}
	}

	if rs.Use7Skip {
		for _, c := range valid {
			if c.Rank() == deck.Seven && len(hand) > 1 {
				return c
			}
		}
	}

	if rs.UseJackReverse && numPlayers > 2 {
		for _, c := range valid {
			if c.Rank() == deck.Jack {
				return c
			}
		}
	}

	return valid[0]
}

func isSpecialRank(rs Ruleset, r deck.Rank) bool {
	switch r {
	case deck.Eight, deck.Joker:
		return true
	case deck.Two:
		return rs.Use2sForceDraw
	case deck.Seven:
		return rs.Use7Skip
	case deck.King:
		return rs.UseKingGoAgain
	case deck.Jack:
		return rs.UseJackReverse
	}
	return false
}

func isGoAgain(rs Ruleset, numPlayers int, r deck.Rank) bool {
	if r == deck.King && rs.UseKingGoAgain {
		return true
	}
	return r == deck.Jack && rs.UseJackReverse && numPlayers == 2
}

// hasFollowUp reports whether another card in hand would be playable
// once candidate is on top of the pile.
func hasFollowUp(rs Ruleset, hand []deck.Card, candidate deck.Card) bool {
	for _, c := range hand {
		if c == candidate {
			continue
		}
		if rs.UseJokers && (c.Rank() == deck.Joker || candidate.Rank() == deck.Joker) {
			return true
		}
		if c.Rank() == deck.Eight || c.Rank() == candidate.Rank() || c.Suit() == candidate.Suit() {
			return true
		}
	}
	return false
}

// chooseSuitForEight picks the suit with the most remaining non-8
// cards, ties broken by enumeration order, Spades when nothing is left.
func chooseSuitForEight(hand []deck.Card, eight deck.Card) deck.Suit {
	counts := map[deck.Suit]int{}
	for _, c := range hand {
		if c == eight || c.Rank() == deck.Eight || c.Rank() == deck.Joker {
			continue
		}
		counts[c.Suit()]++
	}

	best := deck.Spades
	bestCount := 0
	for _, s := range deck.Suits() {
		if counts[s] > bestCount {
			best = s
			bestCount = counts[s]
		}
	}
	return best
}
