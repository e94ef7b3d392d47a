package crazyeights

import (
	"github.com/ottoh/crazyeights/deck"
	"github.com/ottoh/crazyeights/protocol"
)

// CardDescriptor names a card on the wire
type CardDescriptor struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// Card resolves the descriptor against the enumerations
func (d CardDescriptor) Card() (deck.Card, error) {
	return deck.ParseCard(d.Suit, d.Rank)
}

// InboundMessage is a message from a Player to a game room
type InboundMessage struct {
	PlayerID   string          `json:"playerID"`
	Command    protocol.Cmd    `json:"command"`
	Card       *CardDescriptor `json:"card,omitempty"`
	ChosenSuit string          `json:"chosenSuit,omitempty"`
}

// OutboundMessage is a message from a game room to a Player
type OutboundMessage struct {
	PlayerID string               `json:"playerID"`
	Command  protocol.Cmd         `json:"command"`
	State    *PlayerView          `json:"state,omitempty"`
	Message  string               `json:"message,omitempty"`
	Joiner   *protocol.PlayerInfo `json:"joiner,omitempty"`
	Error    string               `json:"error,omitempty"`
}
