// Package ledger keeps a tamper evident journal of table events.
//
// # Core Components
//
// Journal: an append-only chain of blocks. Every block stores the SHA-256
// hash of its predecessor, so changing any recorded event breaks every
// later link.
//
// Block: one engine event together with its index, timestamp and hashes.
//
// # Usage
//
// A Journal is a blackjack.Recorder: pass it to the engine with
// blackjack.WithRecorder and every accepted state change is appended.
// Verify walks the chain and reports the first broken link. The journal
// lives in memory only.
package ledger
