package deck

import (
	"encoding/json"
	"fmt"
)

// Suit represents a suit in a deck of cards
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitNames = []string{"Hearts", "Diamonds", "Clubs", "Spades"}

func (s Suit) String() string {
	if s < Hearts || s > Spades {
		return "unknown"
	}
	return suitNames[s]
}

// Suits returns every suit in enumeration order
func Suits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

// ParseSuit converts a suit's wire name to a Suit
func ParseSuit(name string) (Suit, error) {
	for i, n := range suitNames {
		if n == name {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// Rank represents a rank in a deck of cards. Joker is only present
// when a ruleset asks for it.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	Joker
)

var rankNames = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King", "Ace", "Joker"}

func (r Rank) String() string {
	if r < Two || r > Joker {
		return "unknown"
	}
	return rankNames[r]
}

// ParseRank converts a rank's wire name to a Rank
func ParseRank(name string) (Rank, error) {
	for i, n := range rankNames {
		if n == name {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", name)
}

// Card represents a playing card. Cards compare by value.
// A Joker's suit is only a colour tag (Hearts = red, Spades = black).
type Card struct {
	suit Suit
	rank Rank
}

// NewCard constructs a card
func NewCard(suit Suit, rank Rank) (Card, error) {
	if suit < Hearts || suit > Spades {
		return Card{}, fmt.Errorf("invalid suit %d", suit)
	}
	if rank < Two || rank > Joker {
		return Card{}, fmt.Errorf("invalid rank %d", rank)
	}
	return Card{suit: suit, rank: rank}, nil
}

// ParseCard constructs a card from its wire names
func ParseCard(suitName, rankName string) (Card, error) {
	suit, err := ParseSuit(suitName)
	if err != nil {
		return Card{}, err
	}
	rank, err := ParseRank(rankName)
	if err != nil {
		return Card{}, err
	}
	return Card{suit: suit, rank: rank}, nil
}

// Suit returns a card's suit
func (c Card) Suit() Suit {
	return c.suit
}

// Rank returns a card's rank
func (c Card) Rank() Rank {
	return c.rank
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.rank, c.suit)
}

type cardJSON struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// MarshalJSON serializes a card as {"suit":"Hearts","rank":"8"}
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Suit: c.suit.String(), Rank: c.rank.String()})
}

// UnmarshalJSON restores a card from its wire form
func (c *Card) UnmarshalJSON(data []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	card, err := ParseCard(cj.Suit, cj.Rank)
	if err != nil {
		return err
	}
	*c = card
	return nil
}
