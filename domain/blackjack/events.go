package blackjack

import "time"

// EventKind classifies an accepted state change.
type EventKind string

const (
	EventRegistered EventKind = "registered"
	EventBet        EventKind = "bet"
	EventCardDealt  EventKind = "card"
	EventStand      EventKind = "stand"
	EventSplit      EventKind = "split"
	EventDoubleDown EventKind = "double_down"
	EventBust       EventKind = "bust"
	EventSurrender  EventKind = "surrender"
	EventRemoved    EventKind = "removed"
)

// Event describes one accepted state change at the table.
type Event struct {
	Kind      EventKind `json:"kind"`
	Player    string    `json:"player"`
	SessionID string    `json:"session_id"`
	Bet       int       `json:"bet"`
	Hand      HandKind  `json:"hand,omitempty"`
	Cards     []string  `json:"cards,omitempty"`
	Value     int       `json:"value,omitempty"`
	Time      time.Time `json:"time"`
}

// Recorder receives every event the engine emits, after the command that
// caused it has completed.
type Recorder interface {
	Record(Event) error
}

type nopRecorder struct{}

func (nopRecorder) Record(Event) error { return nil }
