package crazyeights

import (
	"testing"

	"github.com/ottoh/crazyeights/deck"
	utils "github.com/ottoh/crazyeights/internal"
	"github.com/ottoh/crazyeights/protocol"
	"github.com/stretchr/testify/assert"
)

var (
	twoPlayers = func() []protocol.PlayerInfo {
		return []protocol.PlayerInfo{
			{PlayerID: "alice", Name: "Alice"},
			{PlayerID: "bob", Name: "Bob"},
		}
	}
	threePlayers = func() []protocol.PlayerInfo {
		return []protocol.PlayerInfo{
			{PlayerID: "alice", Name: "Alice"},
			{PlayerID: "bob", Name: "Bob"},
			{PlayerID: "cleo", Name: "Cleo"},
		}
	}
)

func mkCard(suit deck.Suit, rank deck.Rank) deck.Card {
	c, err := deck.NewCard(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

func suitPtr(s deck.Suit) *deck.Suit {
	return &s
}

// riggedGame builds a started game with exactly the cards given, so
// tests control what everyone holds.
func riggedGame(rs Ruleset, info []protocol.PlayerInfo, hands map[string][]deck.Card, deckCards, pile []deck.Card, turnIdx int) *Game {
	g := &Game{
		ruleset: rs,
		players: info,
		hands:   hands,
		deck:    deck.Deck(deckCards),
		pile:    pile,
		turnIdx: turnIdx,
		started: true,
	}
	if len(pile) > 0 {
		g.setCurrentSuit(pile[len(pile)-1].Suit())
	}
	return g
}

func cardTotal(g *Game) int {
	total := g.deck.Size() + len(g.pile)
	for _, hand := range g.hands {
		total += len(hand)
	}
	return total
}

func TestStartNewGame(t *testing.T) {
	t.Run("deals hands and an opening card", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), twoPlayers())
		utils.AssertNoError(t, g.Start())

		for _, p := range twoPlayers() {
			hand, err := g.Hand(p.PlayerID)
			utils.AssertNoError(t, err)
			utils.AssertEqual(t, len(hand), 8)
		}

		top, ok := g.TopCard()
		utils.AssertTrue(t, ok)

		suit, set := g.CurrentSuit()
		utils.AssertTrue(t, set)
		utils.AssertEqual(t, suit, top.Suit())

		current, ok := g.CurrentPlayer()
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, current.PlayerID, "alice")

		utils.AssertEqual(t, g.DeckSize(), 54-2*8-1)
		utils.AssertEqual(t, cardTotal(g), 54)
		utils.AssertNotEmptyString(t, g.Message())
		assert.False(t, g.GameOver())
	})

	t.Run("classic ruleset deals 7 from 52 cards", func(t *testing.T) {
		g := NewGame(ClassicRuleset(), twoPlayers())
		utils.AssertNoError(t, g.Start())

		hand, _ := g.Hand("alice")
		utils.AssertEqual(t, len(hand), 7)
		utils.AssertEqual(t, g.DeckSize(), 52-2*7-1)
		utils.AssertEqual(t, cardTotal(g), 52)
	})

	t.Run("fails with fewer than 2 players", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), []protocol.PlayerInfo{{PlayerID: "alice", Name: "Alice"}})
		err := g.Start()
		utils.AssertErrorIs(t, err, ErrTooFewPlayers)
		assert.True(t, g.GameOver())
		utils.AssertNotEmptyString(t, g.Message())
	})

	t.Run("fails when the deck cannot cover the deal", func(t *testing.T) {
		rs := ClassicRuleset()
		rs.HandSize = 30
		g := NewGame(rs, twoPlayers())
		err := g.Start()
		utils.AssertErrorIs(t, err, ErrDeckExhausted)
		assert.True(t, g.GameOver())
	})

	t.Run("restarting resets into a fresh game", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), twoPlayers())
		utils.AssertNoError(t, g.Start())
		_, err := g.DrawCard("alice")
		utils.AssertNoError(t, err)

		utils.AssertNoError(t, g.Start())

		hand, _ := g.Hand("alice")
		utils.AssertEqual(t, len(hand), 8)
		utils.AssertEqual(t, cardTotal(g), 54)
		utils.AssertEqual(t, g.PendingDraw(), 0)
		assert.False(t, g.HasDrawn())
		assert.False(t, g.GameOver())
	})
}

func TestIsValidPlay(t *testing.T) {
	g := riggedGame(DefaultRuleset(), twoPlayers(),
		map[string][]deck.Card{"alice": {}, "bob": {}},
		nil,
		[]deck.Card{mkCard(deck.Hearts, deck.Seven)},
		0,
	)

	t.Run("rank match is valid", func(t *testing.T) {
		assert.True(t, g.IsValidPlay(mkCard(deck.Clubs, deck.Seven)))
	})

	t.Run("current suit match is valid", func(t *testing.T) {
		assert.True(t, g.IsValidPlay(mkCard(deck.Hearts, deck.Queen)))
	})

	t.Run("an 8 is always valid", func(t *testing.T) {
		assert.True(t, g.IsValidPlay(mkCard(deck.Clubs, deck.Eight)))
	})

	t.Run("a Joker is always valid", func(t *testing.T) {
		assert.True(t, g.IsValidPlay(mkCard(deck.Spades, deck.Joker)))
	})

	t.Run("no match is invalid", func(t *testing.T) {
		assert.False(t, g.IsValidPlay(mkCard(deck.Clubs, deck.Queen)))
	})

	t.Run("anything may be played on a Joker", func(t *testing.T) {
		onJoker := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{"alice": {}, "bob": {}},
			nil,
			[]deck.Card{mkCard(deck.Spades, deck.Joker)},
			0,
		)
		assert.True(t, onJoker.IsValidPlay(mkCard(deck.Diamonds, deck.Three)))
	})

	t.Run("current suit beats top card suit after an 8", func(t *testing.T) {
		afterEight := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{"alice": {}, "bob": {}},
			nil,
			[]deck.Card{mkCard(deck.Hearts, deck.Eight)},
			0,
		)
		afterEight.setCurrentSuit(deck.Clubs)
		assert.True(t, afterEight.IsValidPlay(mkCard(deck.Clubs, deck.Queen)))
		assert.False(t, afterEight.IsValidPlay(mkCard(deck.Hearts, deck.Queen)))
	})
}

func TestPlayCard(t *testing.T) {
	newRigged := func() *Game {
		return riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Three), mkCard(deck.Clubs, deck.Nine)},
				"bob":   {mkCard(deck.Diamonds, deck.Four), mkCard(deck.Spades, deck.Five)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)
	}

	t.Run("rejects a player out of turn", func(t *testing.T) {
		g := newRigged()
		before, _ := g.Hand("bob")

		err := g.PlayCard("bob", mkCard(deck.Diamonds, deck.Four), nil)
		utils.AssertErrorIs(t, err, ErrNotYourTurn)

		after, _ := g.Hand("bob")
		utils.AssertDeepEqual(t, after, before)
		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "alice")
	})

	t.Run("rejects a card the player does not hold", func(t *testing.T) {
		g := newRigged()
		err := g.PlayCard("alice", mkCard(deck.Spades, deck.Ace), nil)
		utils.AssertErrorIs(t, err, ErrCardNotInHand)
	})

	t.Run("rejects an invalid play and leaves state unchanged", func(t *testing.T) {
		g := newRigged()
		before, _ := g.Hand("alice")
		pileBefore := len(g.pile)

		err := g.PlayCard("alice", mkCard(deck.Clubs, deck.Nine), nil)
		utils.AssertErrorIs(t, err, ErrInvalidPlay)

		after, _ := g.Hand("alice")
		utils.AssertDeepEqual(t, after, before)
		utils.AssertEqual(t, len(g.pile), pileBefore)
	})

	t.Run("a matching suit play advances the turn", func(t *testing.T) {
		g := newRigged()
		played := mkCard(deck.Hearts, deck.Three)

		utils.AssertNoError(t, g.PlayCard("alice", played, nil))

		top, _ := g.TopCard()
		utils.AssertEqual(t, top, played)

		suit, _ := g.CurrentSuit()
		utils.AssertEqual(t, suit, deck.Hearts)

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "bob")

		hand, _ := g.Hand("alice")
		utils.AssertEqual(t, len(hand), 1)
	})
}

func TestPlayEight(t *testing.T) {
	newRigged := func() *Game {
		return riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Three), mkCard(deck.Clubs, deck.Eight), mkCard(deck.Clubs, deck.Nine)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)
	}

	t.Run("an 8 with a chosen suit sets the current suit", func(t *testing.T) {
		g := newRigged()
		utils.AssertNoError(t, g.PlayCard("alice", mkCard(deck.Clubs, deck.Eight), suitPtr(deck.Spades)))

		suit, _ := g.CurrentSuit()
		utils.AssertEqual(t, suit, deck.Spades)

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "bob")
	})

	t.Run("an 8 without a chosen suit rolls back completely", func(t *testing.T) {
		g := newRigged()
		handBefore, _ := g.Hand("alice")
		pileBefore := append([]deck.Card{}, g.pile...)

		err := g.PlayCard("alice", mkCard(deck.Clubs, deck.Eight), nil)
		utils.AssertErrorIs(t, err, ErrInvalidSuitChoice)

		handAfter, _ := g.Hand("alice")
		utils.AssertDeepEqual(t, handAfter, handBefore)
		utils.AssertDeepEqual(t, g.pile, pileBefore)

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "alice")
	})

	t.Run("an 8 with an out-of-range suit rolls back too", func(t *testing.T) {
		g := newRigged()
		handBefore, _ := g.Hand("alice")

		bad := deck.Suit(9)
		err := g.PlayCard("alice", mkCard(deck.Clubs, deck.Eight), &bad)
		utils.AssertErrorIs(t, err, ErrInvalidSuitChoice)

		handAfter, _ := g.Hand("alice")
		utils.AssertDeepEqual(t, handAfter, handBefore)
	})
}

func TestPlayJoker(t *testing.T) {
	g := riggedGame(DefaultRuleset(), twoPlayers(),
		map[string][]deck.Card{
			"alice": {mkCard(deck.Spades, deck.Joker), mkCard(deck.Clubs, deck.Nine)},
			"bob":   {mkCard(deck.Diamonds, deck.Four)},
		},
		deck.New(false),
		[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
		0,
	)

	utils.AssertNoError(t, g.PlayCard("alice", mkCard(deck.Spades, deck.Joker), nil))

	// the Joker's own colour suit becomes current; no player choice
	suit, _ := g.CurrentSuit()
	utils.AssertEqual(t, suit, deck.Spades)

	current, _ := g.CurrentPlayer()
	utils.AssertEqual(t, current.PlayerID, "bob")
}

func TestSpecialRankEffects(t *testing.T) {
	t.Run("a 2 obliges the next player to draw", func(t *testing.T) {
		g := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Two), mkCard(deck.Clubs, deck.Nine)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)

		utils.AssertNoError(t, g.PlayCard("alice", mkCard(deck.Hearts, deck.Two), nil))
		utils.AssertEqual(t, g.PendingDraw(), 2)

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "bob")

		t.Run("playing before resolving the draw fails", func(t *testing.T) {
			err := g.PlayCard("bob", mkCard(deck.Diamonds, deck.Four), nil)
			utils.AssertErrorIs(t, err, ErrPendingForcedDraw)
		})

		t.Run("passing before resolving the draw fails", func(t *testing.T) {
			err := g.PassTurn("bob")
			utils.AssertErrorIs(t, err, ErrMustDrawFirst)
		})

		t.Run("the forced draw clears the obligation", func(t *testing.T) {
			drawn, err := g.DrawCard("bob")
			utils.AssertNoError(t, err)
			utils.AssertEqual(t, len(drawn), 2)
			utils.AssertEqual(t, g.PendingDraw(), 0)

			// forced draws are not the voluntary draw
			assert.False(t, g.HasDrawn())

			hand, _ := g.Hand("bob")
			utils.AssertEqual(t, len(hand), 3)

			current, _ := g.CurrentPlayer()
			utils.AssertEqual(t, current.PlayerID, "bob")
		})
	})

	t.Run("a King goes again", func(t *testing.T) {
		g := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.King), mkCard(deck.Clubs, deck.Nine)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)

		utils.AssertNoError(t, g.PlayCard("alice", mkCard(deck.Hearts, deck.King), nil))

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "alice")
	})

	t.Run("a 7 skips the next player", func(t *testing.T) {
		g := riggedGame(DefaultRuleset(), threePlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Seven), mkCard(deck.Clubs, deck.Nine)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
				"cleo":  {mkCard(deck.Spades, deck.Five)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)

		utils.AssertNoError(t, g.PlayCard("alice", mkCard(deck.Hearts, deck.Seven), nil))

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "cleo")
		assert.Contains(t, g.Message(), "Bob is skipped!")
	})

	t.Run("a Jack goes again with two players", func(t *testing.T) {
		g := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Jack), mkCard(deck.Clubs, deck.Nine)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)

		utils.AssertNoError(t, g.PlayCard("alice", mkCard(deck.Hearts, deck.Jack), nil))

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "alice")
	})

	t.Run("a Jack reverses with more than two players", func(t *testing.T) {
		g := riggedGame(DefaultRuleset(), threePlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Diamonds, deck.Four)},
				"bob":   {mkCard(deck.Hearts, deck.Jack), mkCard(deck.Clubs, deck.Nine)},
				"cleo":  {mkCard(deck.Spades, deck.Five)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			1,
		)

		utils.AssertNoError(t, g.PlayCard("bob", mkCard(deck.Hearts, deck.Jack), nil))

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "alice")
	})

	t.Run("disabled house rules fall back to a normal advance", func(t *testing.T) {
		g := riggedGame(ClassicRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Two), mkCard(deck.Hearts, deck.King), mkCard(deck.Clubs, deck.Nine)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)

		utils.AssertNoError(t, g.PlayCard("alice", mkCard(deck.Hearts, deck.Two), nil))
		utils.AssertEqual(t, g.PendingDraw(), 0)

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "bob")
	})
}

func TestWinDetection(t *testing.T) {
	t.Run("emptying the hand wins", func(t *testing.T) {
		g := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Three)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)

		utils.AssertNoError(t, g.PlayCard("alice", mkCard(deck.Hearts, deck.Three), nil))
		assert.True(t, g.GameOver())
		utils.AssertEqual(t, g.Winner(), "alice")
		assert.Contains(t, g.Message(), "Alice wins!")
	})

	t.Run("a winning special card fires no interrupt", func(t *testing.T) {
		g := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Seven)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)
		turnBefore := g.turnIdx

		utils.AssertNoError(t, g.PlayCard("alice", mkCard(deck.Hearts, deck.Seven), nil))

		assert.True(t, g.GameOver())
		utils.AssertEqual(t, g.Winner(), "alice")
		utils.AssertEqual(t, g.turnIdx, turnBefore)
		utils.AssertEqual(t, g.PendingDraw(), 0)
	})

	t.Run("a finished game rejects further moves", func(t *testing.T) {
		g := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Three)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			deck.New(false),
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)
		utils.AssertNoError(t, g.PlayCard("alice", mkCard(deck.Hearts, deck.Three), nil))

		utils.AssertErrorIs(t, g.PlayCard("bob", mkCard(deck.Diamonds, deck.Four), nil), ErrGameOver)
		_, err := g.DrawCard("bob")
		utils.AssertErrorIs(t, err, ErrGameOver)
		utils.AssertErrorIs(t, g.PassTurn("bob"), ErrGameOver)
	})
}

func TestDrawCard(t *testing.T) {
	t.Run("a voluntary draw keeps the turn", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), twoPlayers())
		utils.AssertNoError(t, g.Start())

		drawn, err := g.DrawCard("alice")
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, len(drawn), 1)
		assert.True(t, g.HasDrawn())

		hand, _ := g.Hand("alice")
		utils.AssertEqual(t, len(hand), 9)

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "alice")
		utils.AssertEqual(t, cardTotal(g), 54)
	})

	t.Run("a second voluntary draw fails", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), twoPlayers())
		utils.AssertNoError(t, g.Start())

		_, err := g.DrawCard("alice")
		utils.AssertNoError(t, err)
		_, err = g.DrawCard("alice")
		utils.AssertErrorIs(t, err, ErrAlreadyDrawn)
	})

	t.Run("passing requires a draw first", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), twoPlayers())
		utils.AssertNoError(t, g.Start())

		utils.AssertErrorIs(t, g.PassTurn("alice"), ErrMustDrawFirst)

		_, err := g.DrawCard("alice")
		utils.AssertNoError(t, err)
		utils.AssertNoError(t, g.PassTurn("alice"))

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "bob")
		assert.False(t, g.HasDrawn())
	})

	t.Run("drawing from an empty deck reshuffles the pile", func(t *testing.T) {
		pile := []deck.Card{
			mkCard(deck.Clubs, deck.Two),
			mkCard(deck.Clubs, deck.Three),
			mkCard(deck.Clubs, deck.Four),
			mkCard(deck.Hearts, deck.Ten),
		}
		g := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Three)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			nil,
			pile,
			0,
		)
		totalBefore := cardTotal(g)

		_, err := g.DrawCard("alice")
		utils.AssertNoError(t, err)

		// all but the old top card went back into the deck
		utils.AssertEqual(t, len(g.pile), 1)
		top, _ := g.TopCard()
		utils.AssertEqual(t, top, mkCard(deck.Hearts, deck.Ten))
		utils.AssertEqual(t, g.DeckSize(), 2)
		utils.AssertEqual(t, cardTotal(g), totalBefore)
	})

	t.Run("no cards anywhere ends the game in a draw", func(t *testing.T) {
		g := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Three)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			nil,
			[]deck.Card{mkCard(deck.Hearts, deck.Ten)},
			0,
		)

		_, err := g.DrawCard("alice")
		utils.AssertNoError(t, err)
		assert.True(t, g.GameOver())
		utils.AssertEqual(t, g.Winner(), DrawnGame)
	})

	t.Run("a forced draw reshuffles mid-draw when needed", func(t *testing.T) {
		g := riggedGame(DefaultRuleset(), twoPlayers(),
			map[string][]deck.Card{
				"alice": {mkCard(deck.Hearts, deck.Three)},
				"bob":   {mkCard(deck.Diamonds, deck.Four)},
			},
			[]deck.Card{mkCard(deck.Clubs, deck.Five)},
			[]deck.Card{mkCard(deck.Clubs, deck.Six), mkCard(deck.Hearts, deck.Ten)},
			0,
		)
		g.pendingDraw = 2
		totalBefore := cardTotal(g)

		drawn, err := g.DrawCard("alice")
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, len(drawn), 2)
		utils.AssertEqual(t, g.PendingDraw(), 0)
		utils.AssertEqual(t, len(g.pile), 1)
		utils.AssertEqual(t, cardTotal(g), totalBefore)
	})
}

func TestPlayerJoinLeave(t *testing.T) {
	t.Run("players join before the game starts", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), twoPlayers())
		utils.AssertNoError(t, g.AddPlayer(protocol.PlayerInfo{PlayerID: "cleo", Name: "Cleo"}))
		utils.AssertErrorIs(t, g.AddPlayer(protocol.PlayerInfo{PlayerID: "cleo", Name: "Cleo"}), ErrDuplicatePlayer)

		utils.AssertNoError(t, g.Start())
		utils.AssertErrorIs(t, g.AddPlayer(protocol.PlayerInfo{PlayerID: "dana", Name: "Dana"}), ErrGameStarted)
	})

	t.Run("removing the turn holder passes the turn in place", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), threePlayers())
		utils.AssertNoError(t, g.Start())

		utils.AssertNoError(t, g.RemovePlayer("alice"))

		current, ok := g.CurrentPlayer()
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, current.PlayerID, "bob")
		assert.Contains(t, g.Message(), "Alice has left the game.")
	})

	t.Run("removing the last roster player wraps the turn", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), threePlayers())
		utils.AssertNoError(t, g.Start())
		g.turnIdx = 2 // cleo

		utils.AssertNoError(t, g.RemovePlayer("cleo"))

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "alice")
	})

	t.Run("removing an earlier player keeps the turn holder", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), threePlayers())
		utils.AssertNoError(t, g.Start())
		g.turnIdx = 2 // cleo

		utils.AssertNoError(t, g.RemovePlayer("alice"))

		current, _ := g.CurrentPlayer()
		utils.AssertEqual(t, current.PlayerID, "cleo")
	})

	t.Run("all players leaving ends the game", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), twoPlayers())
		utils.AssertNoError(t, g.Start())

		utils.AssertNoError(t, g.RemovePlayer("alice"))
		utils.AssertNoError(t, g.RemovePlayer("bob"))

		assert.True(t, g.GameOver())
		utils.AssertEqual(t, g.Winner(), "")
		utils.AssertEqual(t, g.Message(), "All players have left the game.")
	})

	t.Run("removing an unknown player fails", func(t *testing.T) {
		g := NewGame(DefaultRuleset(), twoPlayers())
		utils.AssertErrorIs(t, g.RemovePlayer("nobody"), ErrNoSuchPlayer)
	})
}

func TestCardConservation(t *testing.T) {
	g := NewGame(DefaultRuleset(), threePlayers())
	utils.AssertNoError(t, g.Start())
	utils.AssertEqual(t, cardTotal(g), 54)

	// a few turns of draw-and-pass keep the total constant
	for i := 0; i < 6; i++ {
		current, ok := g.CurrentPlayer()
		utils.AssertTrue(t, ok)

		_, err := g.DrawCard(current.PlayerID)
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, cardTotal(g), 54)

		utils.AssertNoError(t, g.PassTurn(current.PlayerID))
		utils.AssertEqual(t, cardTotal(g), 54)
	}
}
