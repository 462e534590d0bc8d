package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicRecordAppended = "record.appended"
	TopicRecordEdited   = "record.edited"
	TopicLedgerReset    = "ledger.reset"
	TopicRateChanged    = "rate.changed"
	TopicAddressLookup  = "address.looked_up"
)

type RecordAppended struct {
	EventID    string          `json:"event_id"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
	Date       string          `json:"date"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type RecordEdited struct {
	EventID    string          `json:"event_id"`
	OldAmount  decimal.Decimal `json:"old_amount"`
	NewAmount  decimal.Decimal `json:"new_amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type LedgerReset struct {
	EventID        string    `json:"event_id"`
	RecordsRemoved int       `json:"records_removed"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type RateChanged struct {
	EventID    string          `json:"event_id"`
	OldRate    decimal.Decimal `json:"old_rate"`
	NewRate    decimal.Decimal `json:"new_rate"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type AddressLookedUp struct {
	EventID    string    `json:"event_id"`
	Address    string    `json:"address"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}
