package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luca-patrignani/croupier/domain/blackjack"
	"github.com/luca-patrignani/croupier/domain/card"
	"github.com/luca-patrignani/croupier/domain/shoe"
	"github.com/luca-patrignani/croupier/ledger"
)

func newTable(t *testing.T) (*blackjack.Engine, *ledger.Journal) {
	t.Helper()
	j := ledger.NewJournal()
	cards := []card.Card{card.MustNew(card.Heart, 5), card.MustNew(card.Spade, card.Ace), card.MustNew(card.Club, card.King)}
	e := blackjack.NewEngine(shoe.FromCards(cards), blackjack.WithOpeningDeal(true), blackjack.WithRecorder(j))
	if _, err := e.RegisterPlayer("alice", blackjack.Endpoint{Host: "127.0.0.1", Port: 4000}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Bet("alice", 30); err != nil {
		t.Fatal(err)
	}
	return e, j
}

func get(t *testing.T, h http.Handler, path string, v any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if v != nil {
		if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
			t.Fatalf("%s: decoding: %v", path, err)
		}
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	e, j := newTable(t)
	var body map[string]string
	if code := get(t, NewRouter(e, j, nil), "/health", &body); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected ok, got %v", body)
	}
}

func TestPlayers(t *testing.T) {
	e, j := newTable(t)
	var body struct {
		Capacity int      `json:"capacity"`
		Seated   int      `json:"seated"`
		Players  []player `json:"players"`
	}
	if code := get(t, NewRouter(e, j, nil), "/players", &body); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body.Capacity != blackjack.TableCapacity || body.Seated != 1 {
		t.Fatalf("unexpected table %+v", body)
	}
	p := body.Players[0]
	if p.Name != "alice" || p.Bet != 30 {
		t.Fatalf("unexpected player %+v", p)
	}
	// King then Ace
	if p.PrimaryHand.Value != 21 || len(p.PrimaryHand.Cards) != 2 {
		t.Fatalf("expected two card 21, got %+v", p.PrimaryHand)
	}
}

func TestPlayer_NotFound(t *testing.T) {
	e, j := newTable(t)
	if code := get(t, NewRouter(e, j, nil), "/players/bob", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestPlayer(t *testing.T) {
	e, j := newTable(t)
	var p player
	if code := get(t, NewRouter(e, j, nil), "/players/alice", &p); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if p.PrimaryHand.Cards[0] != "Kreuz 13" || !p.PrimaryHand.Soft {
		t.Fatalf("unexpected hand %+v", p.PrimaryHand)
	}
	if p.SplitHand != nil {
		t.Fatal("expected no split hand")
	}
}

func TestShoe(t *testing.T) {
	e, j := newTable(t)
	var body map[string]int
	get(t, NewRouter(e, j, nil), "/shoe", &body)
	if body["remaining"] != 1 || body["decks"] != 1 {
		t.Fatalf("unexpected shoe %v", body)
	}
}

func TestLedger(t *testing.T) {
	e, j := newTable(t)
	var body struct {
		Length   int    `json:"length"`
		HeadHash string `json:"head_hash"`
		Valid    bool   `json:"valid"`
	}
	get(t, NewRouter(e, j, nil), "/ledger", &body)
	// genesis, registered, bet, two cards
	if body.Length != 5 || !body.Valid || body.HeadHash != j.Latest().Hash {
		t.Fatalf("unexpected ledger %+v", body)
	}

	if code := get(t, NewRouter(e, nil, nil), "/ledger", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 without a journal, got %d", code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	e, j := newTable(t)
	req := httptest.NewRequest(http.MethodPost, "/players", nil)
	rec := httptest.NewRecorder()
	NewRouter(e, j, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
