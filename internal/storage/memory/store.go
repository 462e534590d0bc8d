package memory

import (
	"context" // standard Go package for request-scoped context (timeouts, cancellation)
	"sync"    // standard Go package for concurrency primitives like Mutex

	interfaces "github.com/sheikh-saqib/ledger-bot/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/ledger-bot/internal/models"                // domain models: LedgerState
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// It keeps one ledger document and hands out copies of it.
type MemoryLedgerStore struct {
	mu    sync.Mutex         // mutex to protect state from concurrent access
	state models.LedgerState // the document
	saves int                // number of successful Save calls
}

// NewMemoryLedgerStore creates and returns a new MemoryLedgerStore holding the default state
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		state: models.NewLedgerState(),
	}
}

// Load returns a copy of the stored document.
func (m *MemoryLedgerStore) Load(ctx context.Context) (models.LedgerState, error) {

	m.mu.Lock()         // lock to prevent concurrent modification while reading
	defer m.mu.Unlock() // unlock automatically at the end

	return m.state.Clone(), nil // return the copy so external code can't modify internal state
}

// Save replaces the stored document with a copy of state.
func (m *MemoryLedgerStore) Save(ctx context.Context, state models.LedgerState) error {
	if err := ctx.Err(); err != nil { // a cancelled caller writes nothing
		return err
	}

	m.mu.Lock()         // lock to prevent concurrent reads while writing
	defer m.mu.Unlock() // unlock automatically at the end

	m.state = state.Clone() // keep our own copy so the caller can't modify it later
	m.state.Normalize()     // fill in defaults for a partially built document
	m.saves++               // count the write for tests
	return nil
}

// Saves reports how many times Save succeeded. Useful in tests.
func (m *MemoryLedgerStore) Saves() int {
	m.mu.Lock()         // lock to read the counter safely
	defer m.mu.Unlock() // unlock automatically at the end
	return m.saves
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
