package interfaces

import (
	"context"

	"github.com/sheikh-saqib/ledger-bot/internal/models"
)

type AddressLookup interface {
	Lookup(ctx context.Context, address string) (models.AddressReport, error)
}
