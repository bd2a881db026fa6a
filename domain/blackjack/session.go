package blackjack

import (
	"net"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/luca-patrignani/croupier/domain/card"
)

// Endpoint is a client address as given at registration. The engine treats
// it as opaque apart from identity.
type Endpoint struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// HandKind names one of the two hands a session can hold.
type HandKind string

const (
	PrimaryHand HandKind = "primary"
	SplitHand   HandKind = "split"
)

// Session is the state of one registered player.
type Session struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Endpoint     Endpoint    `json:"endpoint"`
	Bet          int         `json:"bet"`
	Primary      []card.Card `json:"-"`
	Split        []card.Card `json:"-"`
	Standing     bool        `json:"standing"`
	HasSplit     bool        `json:"has_split"`
	RegisteredAt time.Time   `json:"registered_at"`
}

// NewSession creates an empty session with a fresh identifier.
func NewSession(name string, ep Endpoint, now time.Time) *Session {
	return &Session{
		ID:           uuid.New(),
		Name:         name,
		Endpoint:     ep,
		RegisteredAt: now,
	}
}

// Hand returns the cards held in hand k.
func (s *Session) Hand(k HandKind) []card.Card {
	if k == SplitHand {
		return s.Split
	}
	return s.Primary
}

func (s *Session) addCard(k HandKind, c card.Card) {
	if k == SplitHand {
		s.Split = append(s.Split, c)
		return
	}
	s.Primary = append(s.Primary, c)
}

// canSplit reports a two card primary hand of equal rank.
func (s *Session) canSplit() bool {
	return len(s.Primary) == 2 && s.Primary[0].Rank() == s.Primary[1].Rank()
}

// clone returns a deep copy safe to hand outside the engine lock.
func (s *Session) clone() Session {
	cp := *s
	cp.Primary = slices.Clone(s.Primary)
	cp.Split = slices.Clone(s.Split)
	return cp
}
