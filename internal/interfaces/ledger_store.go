package interfaces

import (
	"context"

	"github.com/sheikh-saqib/ledger-bot/internal/models"
)

// LedgerStore persists the whole ledger document. Load on an empty backend
// creates and returns the default state; Save rewrites everything.
type LedgerStore interface {
	Load(ctx context.Context) (models.LedgerState, error)
	Save(ctx context.Context, state models.LedgerState) error
}
