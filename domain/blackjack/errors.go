package blackjack

import "errors"

var (
	// ErrRegistrationDeclined is returned when the table is full.
	ErrRegistrationDeclined = errors.New("registration declined: table full")
	// ErrNameTaken is returned when a name is already registered.
	ErrNameTaken = errors.New("registration declined: name already registered")
	// ErrUnknownPlayer is returned when no session exists for a name.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrInvalidState is returned when an action breaks the table rules.
	ErrInvalidState = errors.New("invalid state")
)
