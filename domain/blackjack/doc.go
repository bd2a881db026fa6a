// Package blackjack implements the dealer's authoritative game state for a
// connectionless blackjack table: hand evaluation, player sessions, the
// player registry and the engine that validates commands against them.
//
// # Core Types
//
// Session: the full mutable state of one registered player, keyed by name.
//
// Registry: the fixed-capacity set of sessions at the table.
//
// Engine: the state machine. It owns the Registry and the shared Shoe behind
// a single lock, so every command runs to completion before the next one and
// card draws are serialized.
//
// Outcome: the ordered messages a command produces. Acknowledgements target
// the sender of the command, card notices target the endpoint the player
// registered with.
//
// # Rules
//
// A session moves from registered to betting to active play. Split is allowed
// once, on a two card primary hand of equal rank. Double down doubles the bet,
// deals exactly one card and ends the turn. Surrender halves the bet and
// removes the session. Busting zeros the bet but keeps the session at the
// table.
package blackjack
