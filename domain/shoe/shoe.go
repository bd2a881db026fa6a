package shoe

import (
	"errors"
	"fmt"

	"github.com/luca-patrignani/croupier/domain/card"
)

// CardsPerDeck is the size of one standard deck.
const CardsPerDeck = 52

// ErrExhausted is returned when a deal is requested on an empty shoe.
var ErrExhausted = errors.New("shoe exhausted")

// Shoe is the shared pool of shuffled cards all deals are drawn from.
// It behaves as a stack: the last card of the shuffled order is dealt first.
// A Shoe is not safe for concurrent use; the engine serializes access.
type Shoe struct {
	cards []card.Card
	decks int
}

// New builds a shoe of decks standard decks and shuffles it once.
func New(decks int) (*Shoe, error) {
	seed, err := randomSeed()
	if err != nil {
		return nil, err
	}
	return NewSeeded(decks, seed)
}

// NewSeeded builds and shuffles a shoe with a fixed seed, so the dealing
// order can be reproduced.
func NewSeeded(decks int, seed [32]byte) (*Shoe, error) {
	if decks < 1 {
		return nil, fmt.Errorf("invalid number of decks %d", decks)
	}
	s := &Shoe{
		cards: make([]card.Card, 0, decks*CardsPerDeck),
		decks: decks,
	}
	for range decks {
		for _, suit := range card.Suits {
			for rank := uint8(1); rank <= card.King; rank++ {
				s.cards = append(s.cards, card.MustNew(suit, rank))
			}
		}
	}
	shuffle(s.cards, seed)
	return s, nil
}

// FromCards builds a shoe holding exactly cards, without shuffling.
// The last element is the first card dealt.
func FromCards(cards []card.Card) *Shoe {
	cp := make([]card.Card, len(cards))
	copy(cp, cards)
	return &Shoe{cards: cp, decks: (len(cards) + CardsPerDeck - 1) / CardsPerDeck}
}

// Deal removes and returns the top card.
func (s *Shoe) Deal() (card.Card, error) {
	n := len(s.cards)
	if n == 0 {
		return card.Card{}, ErrExhausted
	}
	c := s.cards[n-1]
	s.cards = s.cards[:n-1]
	return c, nil
}

// Remaining returns the number of cards still in the shoe.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Decks returns the deck multiplier the shoe was built with.
func (s *Shoe) Decks() int {
	return s.decks
}
