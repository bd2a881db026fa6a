package shoe

import (
	"errors"
	"testing"

	"github.com/luca-patrignani/croupier/domain/card"
)

func TestNewShoe_Size(t *testing.T) {
	for _, decks := range []int{1, 4, 6} {
		s, err := New(decks)
		if err != nil {
			t.Fatal(err)
		}
		if s.Remaining() != decks*CardsPerDeck {
			t.Fatalf("expected %d cards, got %d", decks*CardsPerDeck, s.Remaining())
		}
		if s.Decks() != decks {
			t.Fatalf("expected %d decks, got %d", decks, s.Decks())
		}
	}
}

func TestNewShoe_InvalidDecks(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for zero decks")
	}
}

func TestDeal_EachCardOnceThenExhausted(t *testing.T) {
	const decks = 4
	s, err := New(decks)
	if err != nil {
		t.Fatal(err)
	}
	counts := make(map[card.Card]int)
	for i := 0; i < decks*CardsPerDeck; i++ {
		before := s.Remaining()
		c, err := s.Deal()
		if err != nil {
			t.Fatalf("deal %d: %v", i, err)
		}
		if s.Remaining() != before-1 {
			t.Fatalf("expected remaining %d, got %d", before-1, s.Remaining())
		}
		counts[c]++
	}
	if len(counts) != CardsPerDeck {
		t.Fatalf("expected %d distinct cards, got %d", CardsPerDeck, len(counts))
	}
	for c, n := range counts {
		if n != decks {
			t.Errorf("card %s dealt %d times, expected %d", c, n, decks)
		}
	}
	if _, err := s.Deal(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if s.Remaining() != 0 {
		t.Fatalf("expected empty shoe, got %d", s.Remaining())
	}
}

func TestNewSeeded_Reproducible(t *testing.T) {
	seed := [32]byte{1, 2, 3}
	a, err := NewSeeded(2, seed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSeeded(2, seed)
	if err != nil {
		t.Fatal(err)
	}
	for a.Remaining() > 0 {
		ca, _ := a.Deal()
		cb, _ := b.Deal()
		if ca != cb {
			t.Fatalf("expected identical order, got %s and %s", ca, cb)
		}
	}
}

func TestNewSeeded_Shuffles(t *testing.T) {
	s, err := NewSeeded(1, [32]byte{42})
	if err != nil {
		t.Fatal(err)
	}
	ordered := FromCards(nil)
	for _, suit := range card.Suits {
		for rank := uint8(1); rank <= card.King; rank++ {
			ordered.cards = append(ordered.cards, card.MustNew(suit, rank))
		}
	}
	same := 0
	for i := range s.cards {
		if s.cards[i] == ordered.cards[i] {
			same++
		}
	}
	if same == CardsPerDeck {
		t.Fatal("expected shuffled order to differ from construction order")
	}
}

func TestFromCards_DealsFromTheEnd(t *testing.T) {
	first := card.MustNew(card.Heart, 5)
	last := card.MustNew(card.Club, card.King)
	s := FromCards([]card.Card{first, last})
	c, err := s.Deal()
	if err != nil {
		t.Fatal(err)
	}
	if c != last {
		t.Fatalf("expected %s, got %s", last, c)
	}
	c, _ = s.Deal()
	if c != first {
		t.Fatalf("expected %s, got %s", first, c)
	}
}
