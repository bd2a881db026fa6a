package protocol

import (
	"context"
	"slices"
	"testing"

	"github.com/luca-patrignani/croupier/domain/blackjack"
	"github.com/luca-patrignani/croupier/domain/card"
	"github.com/luca-patrignani/croupier/domain/shoe"
)

var (
	registered = blackjack.Endpoint{Host: "10.1.1.1", Port: 6000}
	relay      = blackjack.Endpoint{Host: "10.1.1.2", Port: 7000}
)

func newDispatcher(ranks ...uint8) *Dispatcher {
	cards := make([]card.Card, len(ranks))
	for i, r := range ranks {
		cards[len(ranks)-1-i] = card.MustNew(card.Heart, r)
	}
	e := blackjack.NewEngine(shoe.FromCards(cards), blackjack.WithOpeningDeal(true))
	return NewDispatcher(e, nil)
}

func handle(d *Dispatcher, line string, from blackjack.Endpoint) []Delivery {
	return d.Handle(context.Background(), []byte(line), from)
}

func TestHandle_Addressing(t *testing.T) {
	d := newDispatcher(10, 5, 3)
	got := handle(d, "registerPlayer 10.1.1.1 6000 alice", registered)
	want := []Delivery{{To: registered, Text: "registration successful"}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = handle(d, "bet alice 20", relay)
	want = []Delivery{
		{To: registered, Text: "card Herz 10"},
		{To: registered, Text: "card Herz 5"},
		{To: relay, Text: "bet accepted"},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = handle(d, "hit alice", relay)
	want = []Delivery{
		{To: registered, Text: "card Herz 3"},
		{To: relay, Text: "action accepted"},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestHandle_Declines(t *testing.T) {
	d := newDispatcher()
	tests := []struct {
		line string
		want string
	}{
		{"bet bob 10", "bet declined unbekannter Spieler"},
		{"hit bob", "action declined unbekannter Spieler oder bereits gestanden"},
		{"stand bob", "action declined unbekannter Spieler"},
		{"split bob", "action declined unbekannter Spieler oder bereits gesplittet"},
		{"doubleDown bob", "action declined unbekannter Spieler oder bereits gestanden"},
		{"surrender bob", "action declined unbekannter Spieler"},
		{"registerCounter 10.1.1.1 6000 bob", "registration declined unbekannter Spielername"},
		{"removePlayer bob", "player not found"},
	}
	for _, tt := range tests {
		got := handle(d, tt.line, relay)
		want := []Delivery{{To: relay, Text: tt.want}}
		if !slices.Equal(got, want) {
			t.Errorf("%s: expected %v, got %v", tt.line, want, got)
		}
	}
}

func TestHandle_IgnoresUnknownAndMalformed(t *testing.T) {
	d := newDispatcher()
	for _, line := range []string{"", "fold alice", "bet alice", "bet alice x", "registerPlayer a b c"} {
		if got := handle(d, line, relay); len(got) != 0 {
			t.Fatalf("%q: expected no deliveries, got %v", line, got)
		}
	}
}

func TestHandle_ExhaustedShoeDropsMessage(t *testing.T) {
	d := newDispatcher(4)
	handle(d, "registerPlayer 10.1.1.1 6000 alice", registered)
	if got := handle(d, "bet alice 10", registered); len(got) != 0 {
		t.Fatalf("expected no deliveries, got %v", got)
	}
}

func TestHandle_CancelledContext(t *testing.T) {
	d := newDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := d.Handle(ctx, []byte("registerPlayer 10.1.1.1 6000 alice"), registered); got != nil {
		t.Fatalf("expected no deliveries, got %v", got)
	}
}

type panickyTable struct{ Table }

func (panickyTable) Hit(string) (blackjack.Outcome, error) { panic("boom") }

func TestHandle_RecoversPanic(t *testing.T) {
	d := NewDispatcher(panickyTable{}, nil)
	if got := handle(d, "hit alice", relay); got != nil {
		t.Fatalf("expected no deliveries, got %v", got)
	}
}

func TestHandle_HugeBetCannotDoubleNegative(t *testing.T) {
	cards := []card.Card{card.MustNew(card.Club, 9), card.MustNew(card.Club, 6), card.MustNew(card.Club, 5)}
	e := blackjack.NewEngine(shoe.FromCards(cards), blackjack.WithOpeningDeal(true))
	d := NewDispatcher(e, nil)
	handle(d, "registerPlayer 10.1.1.1 6000 alice", registered)
	got := handle(d, "bet alice 9223372036854775807", registered)
	if got[len(got)-1].Text != "bet accepted" {
		t.Fatalf("expected bet accepted, got %v", got)
	}
	got = handle(d, "doubleDown alice", registered)
	want := []Delivery{{To: registered, Text: "action declined nicht genug Karten für DoubleDown"}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	s, _ := e.Player("alice")
	if s.Bet < 0 || s.Standing || len(s.Primary) != 2 {
		t.Fatalf("expected untouched session, got %+v", s)
	}
}
