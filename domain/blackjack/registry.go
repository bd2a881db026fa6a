package blackjack

import (
	"maps"
	"slices"
)

// TableCapacity is the reference number of seats at the table.
const TableCapacity = 5

// Registry maps player names to sessions. It is not safe for concurrent
// use on its own; the Engine guards it.
type Registry struct {
	sessions map[string]*Session
	capacity int
}

// NewRegistry creates an empty registry with the given number of seats.
func NewRegistry(capacity int) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		capacity: capacity,
	}
}

// Lookup returns the session registered under name.
func (r *Registry) Lookup(name string) (*Session, bool) {
	s, ok := r.sessions[name]
	return s, ok
}

// Insert seats a new session. It fails with ErrRegistrationDeclined when the
// table is full and with ErrNameTaken when the name is already seated.
func (r *Registry) Insert(s *Session) error {
	if len(r.sessions) >= r.capacity {
		return ErrRegistrationDeclined
	}
	if _, ok := r.sessions[s.Name]; ok {
		return ErrNameTaken
	}
	r.sessions[s.Name] = s
	return nil
}

// Remove deletes the session for name. Removing an absent name is a no-op.
func (r *Registry) Remove(name string) {
	delete(r.sessions, name)
}

// Len returns the number of seated sessions.
func (r *Registry) Len() int {
	return len(r.sessions)
}

// Capacity returns the number of seats.
func (r *Registry) Capacity() int {
	return r.capacity
}

// Names returns the seated names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.sessions))
}
