package deck

import (
	"errors"
	"math/rand"
	"time"
)

// ErrNotEnoughCards is returned by Deal when the deck cannot supply
// the requested number of cards.
var ErrNotEnoughCards = errors.New("not enough cards in the deck")

// Deck represents an ordered deck of cards. The last element is the top.
type Deck []Card

// standard ranks, suit-major rank-minor build order
var standardRanks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// New creates a full deck of 52 cards, plus two Jokers if withJokers
// is set (red tagged Hearts, black tagged Spades).
func New(withJokers bool) Deck {
	cards := Deck{}
	for _, suit := range Suits() {
		for _, rank := range standardRanks {
			cards = append(cards, Card{suit: suit, rank: rank})
		}
	}
	if withJokers {
		cards = append(cards, Card{suit: Hearts, rank: Joker})
		cards = append(cards, Card{suit: Spades, rank: Joker})
	}
	return cards
}

// Shuffle shuffles the deck in place. Valid on a partial deck.
func (d Deck) Shuffle() {
	for i := len(d) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Deal removes and returns n cards from the top of the deck
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(*d) {
		return nil, ErrNotEnoughCards
	}
	start := len(*d) - n
	dealt := make([]Card, n)
	copy(dealt, (*d)[start:])
	*d = (*d)[:start]
	return dealt, nil
}

// Size returns the number of cards left in the deck
func (d Deck) Size() int {
	return len(d)
}

// IsEmpty reports whether the deck has no cards left
func (d Deck) IsEmpty() bool {
	return len(d) == 0
}

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// Seed fixes the shuffle order, for tests
func Seed(seed int64) {
	rng = rand.New(rand.NewSource(seed))
}
