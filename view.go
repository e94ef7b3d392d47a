package crazyeights

import (
	"github.com/ottoh/crazyeights/deck"
)

// Opponent is the restricted representation of another player: hand
// contents are hidden behind a count.
type Opponent struct {
	PlayerID string `json:"id"`
	Name     string `json:"name"`
	HandSize int    `json:"handSize"`
}

// PlayerView is the projection of a game safe to expose to one
// specific player. This asymmetric hiding is the engine's only
// concealment of hidden information.
type PlayerView struct {
	MyID           string      `json:"myId"`
	MyHand         []deck.Card `json:"myHand"`
	Opponents      []Opponent  `json:"opponents"`
	TopCard        *deck.Card  `json:"topCard"`
	CurrentSuit    string      `json:"currentSuit,omitempty"`
	Turn           string      `json:"turn,omitempty"`
	GameOver       bool        `json:"gameOver"`
	Winner         string      `json:"winner,omitempty"`
	WinnerName     string      `json:"winnerName,omitempty"`
	Message        string      `json:"message"`
	PlayerHasDrawn bool        `json:"playerHasDrawn"`
	PendingDraw    int         `json:"pendingDraw,omitempty"`
}

// StateForPlayer projects the game from playerID's perspective
func (g *Game) StateForPlayer(playerID string) (PlayerView, error) {
	hand, ok := g.hands[playerID]
	if !ok {
		return PlayerView{}, ErrNoSuchPlayer
	}

	view := PlayerView{
		MyID:     playerID,
		MyHand:   make([]deck.Card, len(hand)),
		GameOver: g.gameOver,
		Winner:   g.winner,
		Message:  g.message,
		// true only when it is also this viewer's turn
		PlayerHasDrawn: g.hasDrawn && g.isCurrentPlayer(playerID),
		PendingDraw:    g.pendingDraw,
	}
	copy(view.MyHand, hand)

	view.Opponents = []Opponent{}
	for _, p := range g.players {
		if p.PlayerID == playerID {
			continue
		}
		view.Opponents = append(view.Opponents, Opponent{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			HandSize: len(g.hands[p.PlayerID]),
		})
	}

	if top, ok := g.TopCard(); ok {
		c := top
		view.TopCard = &c
	}
	if g.suitSet {
		view.CurrentSuit = g.currentSuit.String()
	}
	if current, ok := g.CurrentPlayer(); ok {
		view.Turn = current.PlayerID
	}
	if g.winner != "" && g.winner != DrawnGame {
		view.WinnerName = g.playerName(g.winner)
	}

	return view, nil
}
