package card

import (
	"fmt"

	"github.com/paulhankin/poker"
)

// Card suit constants (0-3)
const (
	Club    = 0 // ♣
	Diamond = 1 // ♦
	Heart   = 2 // ♥
	Spade   = 3 // ♠
)

// Card rank constants for face cards and ace
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// Suits lists every suit in construction order.
var Suits = [4]uint8{Spade, Club, Heart, Diamond}

// wireSuits holds the suit names clients expect on the wire.
var wireSuits = [4]string{
	Club:    "Kreuz",
	Diamond: "Karo",
	Heart:   "Herz",
	Spade:   "Pik",
}

// Card represents a playing card with suit and rank.
type Card struct {
	suit uint8 // 0-3: clubs, diamonds, hearts, spades
	rank uint8 // 1-13: ace through king
}

// New creates a new Card with validation.
//
// Parameters:
//   - suit: 0-3 (Club, Diamond, Heart, Spade)
//   - rank: 1-13 (Ace=1, 2-10=face value, Jack=11, Queen=12, King=13)
//
// Returns the Card or an error if suit or rank is invalid.
func New(suit uint8, rank uint8) (Card, error) {
	if suit > 3 || rank == 0 || rank > 13 {
		return Card{}, fmt.Errorf("invalid card %d, %d", suit, rank)
	}
	return Card{suit: suit, rank: rank}, nil
}

// MustNew is like New but panics on invalid input. Meant for tables and tests.
func MustNew(suit uint8, rank uint8) Card {
	c, err := New(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// Suit returns the suit value of the Card (0-3: clubs, diamonds, hearts, spades).
func (c Card) Suit() uint8 {
	return c.suit
}

// Rank returns the rank value of the Card (1-13: ace through king).
func (c Card) Rank() uint8 {
	return c.rank
}

// SuitName returns the suit as sent in card notifications.
func (c Card) SuitName() string {
	if c.suit > 3 {
		return "?"
	}
	return wireSuits[c.suit]
}

// ParseSuit maps a wire suit name back to its constant.
func ParseSuit(name string) (uint8, error) {
	for s, n := range wireSuits {
		if n == name {
			return uint8(s), nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// BaseValue is the blackjack value of the card before any ace folding:
// ace counts 11, faces count 10.
func (c Card) BaseValue() int {
	switch {
	case c.rank == Ace:
		return 11
	case c.rank >= Jack:
		return 10
	default:
		return int(c.rank)
	}
}

// String returns the wire form "<suit> <rank>", e.g. "Herz 12".
func (c Card) String() string {
	return fmt.Sprintf("%s %d", c.SuitName(), c.rank)
}

// Pretty renders the card with the poker library's notation for log output.
func (c Card) Pretty() string {
	pc, err := poker.MakeCard(poker.Suit(c.suit), poker.Rank(c.rank))
	if err != nil {
		return "??"
	}
	return fmt.Sprint(pc)
}

// Pretties renders a hand for log output.
func Pretties(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Pretty()
	}
	return out
}
