package crazyeights

import (
	"errors"
	"fmt"

	"github.com/ottoh/crazyeights/deck"
	"github.com/ottoh/crazyeights/protocol"
)

var (
	ErrTooFewPlayers     = errors.New("minimum of 2 players required")
	ErrGameOver          = errors.New("game is already over")
	ErrGameStarted       = errors.New("game has already started")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrPendingForcedDraw = errors.New("must resolve forced draw first")
	ErrCardNotInHand     = errors.New("card not in hand")
	ErrInvalidPlay       = errors.New("invalid play")
	ErrInvalidSuitChoice = errors.New("an 8 requires a valid chosen suit")
	ErrAlreadyDrawn      = errors.New("already drawn a card this turn")
	ErrMustDrawFirst     = errors.New("must draw a card before passing")
	ErrNoSuchPlayer      = errors.New("no such player")
	ErrDuplicatePlayer   = errors.New("player already in game")
	ErrDeckExhausted     = errors.New("not enough cards to start the game")
)

// DrawnGame is the winner value of a game that ended with no cards
// left to draw.
const DrawnGame = "draw"

// Game is the authoritative state of one game of Crazy Eights.
// It is not safe for concurrent use; callers must serialize access
// (see Room).
type Game struct {
	ruleset     Ruleset
	players     []protocol.PlayerInfo
	hands       map[string][]deck.Card
	deck        deck.Deck
	pile        []deck.Card
	turnIdx     int
	currentSuit deck.Suit
	suitSet     bool
	pendingDraw int
	hasDrawn    bool
	started     bool
	gameOver    bool
	winner      string
	message     string
}

// NewGame constructs a game over the given roster. The game does not
// deal until Start is called.
func NewGame(ruleset Ruleset, players []protocol.PlayerInfo) *Game {
	g := &Game{
		ruleset: ruleset,
		players: []protocol.PlayerInfo{},
		hands:   map[string][]deck.Card{},
		deck:    deck.New(ruleset.UseJokers),
		pile:    []deck.Card{},
		turnIdx: -1,
	}
	for _, p := range players {
		g.players = append(g.players, p)
		g.hands[p.PlayerID] = []deck.Card{}
	}
	g.deck.Shuffle()
	return g
}

// Start deals hands and the opening discard card and gives the first
// player the turn. Calling Start on a finished game resets it into a
// fresh game over the same roster.
func (g *Game) Start() error {
	g.deck = deck.New(g.ruleset.UseJokers)
	g.deck.Shuffle()
	g.pile = []deck.Card{}
	g.suitSet = false
	g.pendingDraw = 0
	g.hasDrawn = false
	g.gameOver = false
	g.winner = ""
	g.turnIdx = -1
	g.started = false

	if len(g.players) < minPlayers {
		g.gameOver = true
		g.message = "Not enough players to start the game."
		return ErrTooFewPlayers
	}

	for _, p := range g.players {
		hand, err := g.deck.Deal(g.ruleset.handSize())
		if err != nil {
			g.gameOver = true
			g.message = fmt.Sprintf("Error dealing initial hands: %s.", err)
			return ErrDeckExhausted
		}
		g.hands[p.PlayerID] = hand
	}

	opening, err := g.deck.Deal(1)
	if err != nil {
		g.gameOver = true
		g.message = "Deck is empty, cannot start game."
		return ErrDeckExhausted
	}
	startingCard := opening[0]

	// An opening 8 sets the suit from the card itself; no re-draw.
	g.setCurrentSuit(startingCard.Suit())
	g.pile = append(g.pile, startingCard)
	g.turnIdx = 0
	g.started = true

	first := g.players[g.turnIdx]
	if startingCard.Rank() == deck.Eight {
		g.message = fmt.Sprintf("Starting card is an 8. Current suit is %s. It's %s's turn.", g.currentSuit, first.Name)
	} else {
		g.message = fmt.Sprintf("Game started. Top card is: %s. It's %s's turn.", startingCard, first.Name)
	}
	return nil
}

// TopCard returns the top of the discard pile
func (g *Game) TopCard() (deck.Card, bool) {
	if len(g.pile) == 0 {
		return deck.Card{}, false
	}
	return g.pile[len(g.pile)-1], true
}

// CurrentSuit returns the suit newly played cards must match. The
// second value is false until the opening card has been placed.
func (g *Game) CurrentSuit() (deck.Suit, bool) {
	return g.currentSuit, g.suitSet
}

// CurrentPlayer returns the player holding the turn
func (g *Game) CurrentPlayer() (protocol.PlayerInfo, bool) {
	if g.turnIdx < 0 || g.turnIdx >= len(g.players) {
		return protocol.PlayerInfo{}, false
	}
	return g.players[g.turnIdx], true
}

// Players returns the roster in turn order
func (g *Game) Players() []protocol.PlayerInfo {
	out := make([]protocol.PlayerInfo, len(g.players))
	copy(out, g.players)
	return out
}

// Hand returns a copy of a player's hand
func (g *Game) Hand(playerID string) ([]deck.Card, error) {
	hand, ok := g.hands[playerID]
	if !ok {
		return nil, ErrNoSuchPlayer
	}
	out := make([]deck.Card, len(hand))
	copy(out, hand)
	return out, nil
}

// GameOver reports whether the game has finished
func (g *Game) GameOver() bool {
	return g.gameOver
}

// Winner returns the winning player's id, DrawnGame for a drawn game,
// or the empty string while the game is live.
func (g *Game) Winner() string {
	return g.winner
}

// Message returns a description of the most recent action, for display
func (g *Game) Message() string {
	return g.message
}

// PendingDraw returns the outstanding forced-draw obligation
func (g *Game) PendingDraw() int {
	return g.pendingDraw
}

// HasDrawn reports whether the current player has taken their
// voluntary draw this turn.
func (g *Game) HasDrawn() bool {
	return g.hasDrawn
}

// DeckSize returns the number of cards left to draw
func (g *Game) DeckSize() int {
	return g.deck.Size()
}

// IsValidPlay reports whether card may legally be played on the
// current pile.
func (g *Game) IsValidPlay(card deck.Card) bool {
	top, ok := g.TopCard()
	if !ok {
		// only happens before the opening card is placed
		return true
	}
	if g.ruleset.UseJokers && (card.Rank() == deck.Joker || top.Rank() == deck.Joker) {
		return true
	}
	return card.Rank() == deck.Eight ||
		card.Rank() == top.Rank() ||
		card.Suit() == g.currentSuit
}

// PlayCard plays a card from playerID's hand onto the pile. chosenSuit
// is required when the card is an 8 and ignored otherwise.
func (g *Game) PlayCard(playerID string, card deck.Card, chosenSuit *deck.Suit) error {
	if g.gameOver {
		return ErrGameOver
	}
	if !g.isCurrentPlayer(playerID) {
		g.message = "It's not your turn."
		return ErrNotYourTurn
	}
	if g.pendingDraw > 0 {
		g.message = fmt.Sprintf("You must draw %d %s first.", g.pendingDraw, plural("card", g.pendingDraw))
		return ErrPendingForcedDraw
	}

	hand := g.hands[playerID]
	cardIdx := -1
	for i, c := range hand {
		if c == card {
			cardIdx = i
			break
		}
	}
	if cardIdx == -1 {
		g.message = "Card not found in your hand."
		return ErrCardNotInHand
	}

	if !g.IsValidPlay(card) {
		top, _ := g.TopCard()
		g.message = fmt.Sprintf("Invalid play. You cannot play %s on %s.", card, top)
		return fmt.Errorf("cannot play %s on %s (current suit %s): %w", card, top, g.currentSuit, ErrInvalidPlay)
	}

	// Move the card from hand to pile. The 8-without-suit case below
	// must undo both together.
	g.hands[playerID] = append(hand[:cardIdx], hand[cardIdx+1:]...)
	g.pile = append(g.pile, card)

	playerName := g.playerName(playerID)

	switch {
	case card.Rank() == deck.Joker:
		// the Joker's own suit is its colour tag
		g.setCurrentSuit(card.Suit())
		g.message = fmt.Sprintf("%s played a Joker.", playerName)

	case card.Rank() == deck.Eight:
		if chosenSuit == nil || *chosenSuit < deck.Hearts || *chosenSuit > deck.Spades {
			// roll back: restore the card at its old index, pop the pile
			hand = g.hands[playerID]
			hand = append(hand, deck.Card{})
			copy(hand[cardIdx+1:], hand[cardIdx:])
			hand[cardIdx] = card
			g.hands[playerID] = hand
			g.pile = g.pile[:len(g.pile)-1]
			g.message = "When playing an 8, you must choose a valid suit."
			return ErrInvalidSuitChoice
		}
		g.setCurrentSuit(*chosenSuit)
		g.message = fmt.Sprintf("%s played an 8 and chose %s.", playerName, g.currentSuit)

	default:
		g.setCurrentSuit(card.Suit())
		g.message = fmt.Sprintf("%s played %s.", playerName, card)
	}

	// a successful play ends any pending pass eligibility
	g.hasDrawn = false

	// Win check comes before special effects, so a winning King, 7 or
	// Jack fires no interrupt.
	if g.checkWin(playerID) {
		return nil
	}

	switch {
	case card.Rank() == deck.Two && g.ruleset.Use2sForceDraw:
		g.pendingDraw = forcedDrawCount
		g.message = fmt.Sprintf("%s played a 2. Next player must draw %d cards!", playerName, forcedDrawCount)
		g.nextTurn()

	case card.Rank() == deck.King && g.ruleset.UseKingGoAgain:
		g.message += " You played a King, go again!"

	case card.Rank() == deck.Seven && g.ruleset.Use7Skip:
		g.message = fmt.Sprintf("%s played a 7.", playerName)
		g.skipNextPlayer()

	case card.Rank() == deck.Jack && g.ruleset.UseJackReverse:
		g.message = fmt.Sprintf("%s played a Jack.", playerName)
		if len(g.players) == 2 {
			// with 2 players a Jack acts like a King
			g.message += " Go again!"
		} else {
			g.turnIdx = (g.turnIdx - 1 + len(g.players)) % len(g.players)
			g.hasDrawn = false
			g.message += fmt.Sprintf(" It's now %s's turn.", g.players[g.turnIdx].Name)
		}

	default:
		g.nextTurn()
	}

	return nil
}

// DrawCard draws for playerID: the outstanding forced draw if one is
// pending, otherwise the single voluntary draw for this turn. The
// drawn cards are returned.
func (g *Game) DrawCard(playerID string) ([]deck.Card, error) {
	if g.gameOver {
		return nil, ErrGameOver
	}
	if !g.isCurrentPlayer(playerID) {
		g.message = "It's not your turn to draw."
		return nil, ErrNotYourTurn
	}

	playerName := g.playerName(playerID)

	if g.pendingDraw > 0 {
		drawn := []deck.Card{}
		for i := 0; i < g.pendingDraw; i++ {
			if g.deck.IsEmpty() {
				if !g.reshuffleFromPile() {
					g.hands[playerID] = append(g.hands[playerID], drawn...)
					g.endInDraw()
					return drawn, nil
				}
			}
			cards, err := g.deck.Deal(1)
			if err != nil {
				return drawn, err
			}
			drawn = append(drawn, cards[0])
		}
		g.hands[playerID] = append(g.hands[playerID], drawn...)
		g.pendingDraw = 0
		// a forced draw is not the voluntary draw; hasDrawn stays false
		g.message = fmt.Sprintf("%s drew %d %s (forced by '2' rule).", playerName, len(drawn), plural("card", len(drawn)))
		return drawn, nil
	}

	if g.hasDrawn {
		g.message = "You have already drawn a card this turn."
		return nil, ErrAlreadyDrawn
	}

	if g.deck.IsEmpty() {
		if !g.reshuffleFromPile() {
			g.endInDraw()
			return nil, nil
		}
	}

	cards, err := g.deck.Deal(1)
	if err != nil {
		return nil, err
	}
	g.hands[playerID] = append(g.hands[playerID], cards[0])
	g.hasDrawn = true
	g.message = fmt.Sprintf("%s drew a card.", playerName)
	return cards, nil
}

// PassTurn ends playerID's turn after a voluntary draw
func (g *Game) PassTurn(playerID string) error {
	if g.gameOver {
		return ErrGameOver
	}
	if !g.isCurrentPlayer(playerID) {
		g.message = "It's not your turn."
		return ErrNotYourTurn
	}
	if !g.hasDrawn {
		g.message = "You must draw a card before passing."
		return ErrMustDrawFirst
	}
	g.message = fmt.Sprintf("%s passed their turn.", g.playerName(playerID))
	g.nextTurn()
	return nil
}

// AddPlayer appends a player to the roster. Late joins are rejected.
func (g *Game) AddPlayer(info protocol.PlayerInfo) error {
	if g.started {
		return ErrGameStarted
	}
	if _, exists := g.hands[info.PlayerID]; exists {
		return ErrDuplicatePlayer
	}
	g.players = append(g.players, info)
	g.hands[info.PlayerID] = []deck.Card{}
	return nil
}

// RemovePlayer removes a departing player. If they held the turn it
// passes to whoever now occupies that roster index.
func (g *Game) RemovePlayer(playerID string) error {
	idx := -1
	for i, p := range g.players {
		if p.PlayerID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNoSuchPlayer
	}

	departing := g.players[idx].Name
	wasTheirTurn := g.started && idx == g.turnIdx

	g.players = append(g.players[:idx], g.players[idx+1:]...)
	delete(g.hands, playerID)

	if len(g.players) == 0 {
		g.gameOver = true
		g.winner = ""
		g.message = "All players have left the game."
		return nil
	}

	if !g.started {
		g.message = fmt.Sprintf("%s has left the game.", departing)
		return nil
	}

	if wasTheirTurn {
		// the next player now occupies the departed player's index
		g.turnIdx = idx % len(g.players)
		g.hasDrawn = false
		g.message = fmt.Sprintf("%s has left the game. It is now %s's turn.", departing, g.players[g.turnIdx].Name)
	} else {
		if idx < g.turnIdx {
			g.turnIdx--
		}
		g.message = fmt.Sprintf("%s has left the game.", departing)
	}
	return nil
}

// EndGame terminally stops the game, e.g. on room teardown
func (g *Game) EndGame() {
	g.gameOver = true
	g.message = "Game has ended due to a player disconnecting."
}

func (g *Game) isCurrentPlayer(playerID string) bool {
	return g.turnIdx >= 0 && g.turnIdx < len(g.players) && g.players[g.turnIdx].PlayerID == playerID
}

func (g *Game) playerName(playerID string) string {
	for _, p := range g.players {
		if p.PlayerID == playerID {
			return p.Name
		}
	}
	return "A player"
}

func (g *Game) setCurrentSuit(s deck.Suit) {
	g.currentSuit = s
	g.suitSet = true
}

func (g *Game) checkWin(playerID string) bool {
	if len(g.hands[playerID]) > 0 {
		return false
	}
	g.gameOver = true
	g.winner = playerID
	g.message = fmt.Sprintf("%s wins!", g.playerName(playerID))
	return true
}

func (g *Game) endInDraw() {
	g.gameOver = true
	g.winner = DrawnGame
	g.message = "No cards left to draw. The game is a draw."
}

// reshuffleFromPile moves all but the top discard card back into the
// deck and shuffles. Returns false when there is nothing to reshuffle.
func (g *Game) reshuffleFromPile() bool {
	if len(g.pile) <= 1 {
		return false
	}
	top := g.pile[len(g.pile)-1]
	g.deck = deck.Deck(g.pile[:len(g.pile)-1])
	g.pile = []deck.Card{top}
	g.deck.Shuffle()
	g.message = "Deck reshuffled."
	return true
}

func (g *Game) nextTurn() {
	g.turnIdx = (g.turnIdx + 1) % len(g.players)
	g.hasDrawn = false
	next := g.players[g.turnIdx].Name

	if g.pendingDraw > 0 {
		g.message = fmt.Sprintf("%s must draw %d %s before playing.", next, g.pendingDraw, plural("card", g.pendingDraw))
	} else {
		g.message = fmt.Sprintf("It's now %s's turn.", next)
	}
}

func (g *Game) skipNextPlayer() {
	skipped := g.players[(g.turnIdx+1)%len(g.players)].Name
	g.turnIdx = (g.turnIdx + 2) % len(g.players)
	g.hasDrawn = false
	next := g.players[g.turnIdx].Name
	g.message += fmt.Sprintf(" %s is skipped! It's now %s's turn.", skipped, next)
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
