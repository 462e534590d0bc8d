package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddressReport is the normalized view of a TRON account lookup.
type AddressReport struct {
	Address        string
	QueriedAt      time.Time
	TRXBalance     decimal.Decimal
	USDTBalance    decimal.Decimal
	Energy         int64
	BandwidthUsed  int64
	BandwidthLimit int64
	CreatedAt      *time.Time
	LastActiveAt   *time.Time
}
