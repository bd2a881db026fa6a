// Package status serves a read-only HTTP view of the table.
package status

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/luca-patrignani/croupier/domain/blackjack"
	"github.com/luca-patrignani/croupier/domain/card"
	"github.com/luca-patrignani/croupier/ledger"
)

// Table is the engine view the status API reads.
type Table interface {
	Snapshot() blackjack.Snapshot
	Player(name string) (blackjack.Session, bool)
}

// Journal is the ledger view the status API reads.
type Journal interface {
	Len() int
	Latest() ledger.Block
	Verify() error
}

type hand struct {
	Cards []string `json:"cards"`
	Value int      `json:"value"`
	Soft  bool     `json:"soft"`
	Bust  bool     `json:"bust"`
}

type player struct {
	blackjack.Session
	PrimaryHand hand  `json:"primary_hand"`
	SplitHand   *hand `json:"split_hand,omitempty"`
}

func newHand(cards []card.Card) hand {
	h := hand{
		Cards: make([]string, len(cards)),
		Value: blackjack.Value(cards),
		Soft:  blackjack.IsSoft(cards),
		Bust:  blackjack.IsBust(cards),
	}
	for i, c := range cards {
		h.Cards[i] = c.String()
	}
	return h
}

func newPlayer(s blackjack.Session) player {
	p := player{Session: s, PrimaryHand: newHand(s.Primary)}
	if s.HasSplit {
		split := newHand(s.Split)
		p.SplitHand = &split
	}
	return p
}

type server struct {
	table   Table
	journal Journal
	logger  *slog.Logger
}

// NewRouter builds the status routes. journal may be nil.
func NewRouter(t Table, j Journal, logger *slog.Logger) *mux.Router {
	if logger == nil {
		logger = slog.Default()
	}
	s := &server{table: t, journal: j, logger: logger}
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/players", s.players).Methods(http.MethodGet)
	r.HandleFunc("/players/{name}", s.player).Methods(http.MethodGet)
	r.HandleFunc("/shoe", s.shoe).Methods(http.MethodGet)
	r.HandleFunc("/ledger", s.ledger).Methods(http.MethodGet)
	return r
}

func (s *server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encoding status response", "error", err)
	}
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) players(w http.ResponseWriter, r *http.Request) {
	snap := s.table.Snapshot()
	players := make([]player, len(snap.Sessions))
	for i, sess := range snap.Sessions {
		players[i] = newPlayer(sess)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"capacity": snap.Capacity,
		"seated":   len(snap.Sessions),
		"players":  players,
	})
}

func (s *server) player(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	sess, ok := s.table.Player(name)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "player not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, newPlayer(sess))
}

func (s *server) shoe(w http.ResponseWriter, r *http.Request) {
	snap := s.table.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]int{
		"remaining": snap.ShoeRemaining,
		"decks":     snap.Decks,
	})
}

func (s *server) ledger(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "ledger disabled"})
		return
	}
	resp := map[string]any{
		"length":    s.journal.Len(),
		"head_hash": s.journal.Latest().Hash,
		"valid":     true,
	}
	if err := s.journal.Verify(); err != nil {
		resp["valid"] = false
		resp["error"] = err.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}
