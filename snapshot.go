package crazyeights

import (
	"errors"
	"fmt"

	"github.com/ottoh/crazyeights/deck"
	"github.com/ottoh/crazyeights/protocol"
)

var ErrBadSnapshot = errors.New("snapshot is not a valid game")

// PlayerState is a roster entry in a snapshot, hand included
type PlayerState struct {
	PlayerID   string      `json:"playerID"`
	Name       string      `json:"name"`
	IsComputer bool        `json:"isComputer,omitempty"`
	Hand       []deck.Card `json:"hand"`
}

// Snapshot is the plain structural form of a game, for resumable
// sessions. A snapshot round-trips through JSON with full fidelity.
type Snapshot struct {
	Ruleset     Ruleset       `json:"ruleset"`
	Players     []PlayerState `json:"players"`
	Deck        []deck.Card   `json:"deck"`
	Pile        []deck.Card   `json:"pile"`
	TurnIdx     int           `json:"turnIdx"`
	CurrentSuit string        `json:"currentSuit,omitempty"`
	PendingDraw int           `json:"pendingDraw"`
	HasDrawn    bool          `json:"hasDrawn"`
	Started     bool          `json:"started"`
	GameOver    bool          `json:"gameOver"`
	Winner      string        `json:"winner,omitempty"`
	Message     string        `json:"message"`
}

// Snapshot captures the full game state in its serializable form
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Ruleset:     g.ruleset,
		Players:     []PlayerState{},
		Deck:        append([]deck.Card{}, g.deck...),
		Pile:        append([]deck.Card{}, g.pile...),
		TurnIdx:     g.turnIdx,
		PendingDraw: g.pendingDraw,
		HasDrawn:    g.hasDrawn,
		Started:     g.started,
		GameOver:    g.gameOver,
		Winner:      g.winner,
		Message:     g.message,
	}
	if g.suitSet {
		snap.CurrentSuit = g.currentSuit.String()
	}
	for _, p := range g.players {
		snap.Players = append(snap.Players, PlayerState{
			PlayerID:   p.PlayerID,
			Name:       p.Name,
			IsComputer: p.IsComputer,
			Hand:       append([]deck.Card{}, g.hands[p.PlayerID]...),
		})
	}
	return snap
}

// ResumeGame reconstructs a game from a snapshot, checking that the
// engine's invariants hold.
func ResumeGame(snap Snapshot) (*Game, error) {
	g := &Game{
		ruleset:     snap.Ruleset,
		players:     []protocol.PlayerInfo{},
		hands:       map[string][]deck.Card{},
		deck:        deck.Deck(append([]deck.Card{}, snap.Deck...)),
		pile:        append([]deck.Card{}, snap.Pile...),
		turnIdx:     snap.TurnIdx,
		pendingDraw: snap.PendingDraw,
		hasDrawn:    snap.HasDrawn,
		started:     snap.Started,
		gameOver:    snap.GameOver,
		winner:      snap.Winner,
		message:     snap.Message,
	}

	total := len(snap.Deck) + len(snap.Pile)
	for _, p := range snap.Players {
		if _, exists := g.hands[p.PlayerID]; exists {
			return nil, fmt.Errorf("duplicate player %q: %w", p.PlayerID, ErrBadSnapshot)
		}
		g.players = append(g.players, protocol.PlayerInfo{
			PlayerID:   p.PlayerID,
			Name:       p.Name,
			IsComputer: p.IsComputer,
		})
		g.hands[p.PlayerID] = append([]deck.Card{}, p.Hand...)
		total += len(p.Hand)
	}

	if snap.CurrentSuit != "" {
		suit, err := deck.ParseSuit(snap.CurrentSuit)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", err, ErrBadSnapshot)
		}
		g.setCurrentSuit(suit)
	}

	if snap.Started {
		if g.turnIdx < 0 || g.turnIdx >= len(g.players) {
			return nil, fmt.Errorf("turn index %d out of range: %w", g.turnIdx, ErrBadSnapshot)
		}
		if !g.suitSet && len(g.pile) > 0 {
			return nil, fmt.Errorf("started game has no current suit: %w", ErrBadSnapshot)
		}
		if total != g.ruleset.DeckTotal() {
			return nil, fmt.Errorf("card count %d, want %d: %w", total, g.ruleset.DeckTotal(), ErrBadSnapshot)
		}
	} else {
		g.turnIdx = -1
	}

	return g, nil
}
