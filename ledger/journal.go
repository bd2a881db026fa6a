package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/luca-patrignani/croupier/domain/blackjack"
)

// Journal is an append-only hash chain of engine events. It implements
// blackjack.Recorder.
type Journal struct {
	mu     sync.RWMutex
	blocks []Block
	now    func() time.Time
}

// NewJournal creates a journal holding only the genesis block, whose
// previous hash is "0".
func NewJournal() *Journal {
	j := &Journal{now: time.Now}
	genesis := Block{
		Index:     0,
		Timestamp: j.now().UnixNano(),
		PrevHash:  "0",
		Event:     blackjack.Event{Kind: EventGenesis},
	}
	genesis.Hash = calculateHash(genesis)
	j.blocks = append(j.blocks, genesis)
	return j
}

// Record appends ev as a new block.
func (j *Journal) Record(ev blackjack.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	latest := j.blocks[len(j.blocks)-1]
	ts := ev.Time
	if ts.IsZero() {
		ts = j.now()
	}
	b := Block{
		Index:     latest.Index + 1,
		Timestamp: ts.UnixNano(),
		PrevHash:  latest.Hash,
		Event:     ev,
	}
	b.Hash = calculateHash(b)
	if err := validateBlock(b, latest); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	j.blocks = append(j.blocks, b)
	return nil
}

// Latest returns the head of the chain.
func (j *Journal) Latest() Block {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.blocks[len(j.blocks)-1]
}

// GetByIndex returns the block at index.
func (j *Journal) GetByIndex(index int) (Block, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if index < 0 || index >= len(j.blocks) {
		return Block{}, fmt.Errorf("index %d out of range [0, %d)", index, len(j.blocks))
	}
	return j.blocks[index], nil
}

// Len returns the number of blocks, genesis included.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.blocks)
}

// Verify checks the genesis block and every link of the chain.
func (j *Journal) Verify() error {
	j.mu.RLock()
	defer j.mu.RUnlock()

	genesis := j.blocks[0]
	if genesis.PrevHash != "0" || genesis.Index != 0 {
		return fmt.Errorf("invalid genesis block")
	}
	if genesis.Hash != calculateHash(genesis) {
		return fmt.Errorf("invalid genesis hash")
	}
	for i := 1; i < len(j.blocks); i++ {
		if err := validateBlock(j.blocks[i], j.blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}
	return nil
}

func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	expected := calculateHash(current)
	if current.Hash != expected {
		return fmt.Errorf("invalid hash: expected %s, got %s", expected, current.Hash)
	}
	return nil
}

// calculateHash hashes the header fields and the JSON encoded event.
func calculateHash(b Block) string {
	eventBytes, _ := json.Marshal(b.Event)
	data := fmt.Sprintf("%d%d%s%s", b.Index, b.Timestamp, b.PrevHash, eventBytes)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
