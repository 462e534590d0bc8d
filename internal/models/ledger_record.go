package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

// Zone is the fixed UTC+8 zone every record and reply is expressed in.
var Zone = time.FixedZone("UTC+8", 8*60*60)

// Kind tells whether a record brought money in or took it out.
type Kind string

const (
	Income  Kind = "in"
	Expense Kind = "out"
)

// LedgerRecord is a single income or expense line of the ledger
type LedgerRecord struct {
	Time   time.Time       // when it was recorded, in Zone
	Date   string          // calendar day of Time, YYYY-MM-DD
	Amount decimal.Decimal // always in local currency
	Kind   Kind
	Note   string // the raw text the user sent
}

// NewLedgerRecord stamps a record with now converted to Zone.
func NewLedgerRecord(now time.Time, amount decimal.Decimal, kind Kind, note string) LedgerRecord {
	now = now.In(Zone)
	return LedgerRecord{
		Time:   now.Truncate(time.Second),
		Date:   now.Format(DateLayout),
		Amount: amount,
		Kind:   kind,
		Note:   note,
	}
}

// Today returns the calendar day of now in Zone.
func Today(now time.Time) string {
	return now.In(Zone).Format(DateLayout)
}
