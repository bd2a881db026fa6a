package ledger

import "github.com/luca-patrignani/croupier/domain/blackjack"

// Block is one entry of the journal.
type Block struct {
	Index     int             `json:"index"`
	Timestamp int64           `json:"timestamp"`
	PrevHash  string          `json:"prev_hash"`
	Hash      string          `json:"hash"`
	Event     blackjack.Event `json:"event"`
}

// EventGenesis marks the first block of a journal.
const EventGenesis blackjack.EventKind = "genesis"
