package storage

import (
	"context"
	"fmt"

	interfaces "github.com/sheikh-saqib/ledger-bot/internal/interfaces"
	"github.com/sheikh-saqib/ledger-bot/internal/storage/file"
	"github.com/sheikh-saqib/ledger-bot/internal/storage/memory"
	"github.com/sheikh-saqib/ledger-bot/internal/storage/postgres"
	"github.com/sheikh-saqib/ledger-bot/internal/storage/sqlite"
)

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and configures a LedgerStore backend.
type Options struct {
	Driver string
	Path   string // file and sqlite
	DSN    string // postgres
}

// Open builds the backend named by opts.Driver. The returned close func is
// never nil.
func Open(ctx context.Context, opts Options) (interfaces.LedgerStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case DriverFile, "":
		return file.NewJSONLedgerStore(opts.Path), noop, nil
	case DriverMemory:
		return memory.NewMemoryLedgerStore(), noop, nil
	case DriverSQLite:
		s, err := sqlite.NewSQLiteLedgerStore(opts.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite %s: %w", opts.Path, err)
		}
		return s, s.Close, nil
	case DriverPostgres:
		s, err := postgres.Open(ctx, opts.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
