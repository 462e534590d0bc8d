package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	interfaces "github.com/sheikh-saqib/ledger-bot/internal/interfaces"
	"github.com/sheikh-saqib/ledger-bot/internal/models"
)

// JSONLedgerStore keeps the ledger in a single JSON document on disk.
type JSONLedgerStore struct {
	mu   sync.Mutex
	path string
}

func NewJSONLedgerStore(path string) *JSONLedgerStore {
	return &JSONLedgerStore{path: path}
}

func (s *JSONLedgerStore) Path() string {
	return s.path
}

// Load reads the document, creating it with defaults when it does not exist.
func (s *JSONLedgerStore) Load(ctx context.Context) (models.LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		state := models.NewLedgerState()
		if err := s.write(state); err != nil {
			return state, err
		}
		return state, nil
	}
	if err != nil {
		return models.LedgerState{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.LedgerState{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	state, err := fromDocument(doc)
	if err != nil {
		return models.LedgerState{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return state, nil
}

// Save rewrites the whole document.
func (s *JSONLedgerStore) Save(ctx context.Context, state models.LedgerState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(state)
}

// write goes through a temp file and a rename so a crash never leaves a
// truncated document behind.
func (s *JSONLedgerStore) write(state models.LedgerState) error {
	data, err := json.MarshalIndent(toDocument(state), "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

var _ interfaces.LedgerStore = (*JSONLedgerStore)(nil)
