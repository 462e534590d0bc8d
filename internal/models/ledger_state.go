package models

import "github.com/shopspring/decimal"

// DefaultRate is used whenever no positive rate has been stored yet.
var DefaultRate = decimal.RequireFromString("7.2")

// LedgerState is the whole persisted document.
type LedgerState struct {
	Records    []LedgerRecord
	Rate       decimal.Decimal // local currency per 1 USDT, always > 0
	CheckCount map[string]int  // address -> number of lookups
}

// NewLedgerState returns the state a fresh store starts with.
func NewLedgerState() LedgerState {
	return LedgerState{
		Records:    make([]LedgerRecord, 0),
		Rate:       DefaultRate,
		CheckCount: make(map[string]int),
	}
}

// Normalize fills in defaults for anything a backend left unset.
func (s *LedgerState) Normalize() {
	if s.Records == nil {
		s.Records = make([]LedgerRecord, 0)
	}
	if !s.Rate.IsPositive() {
		s.Rate = DefaultRate
	}
	if s.CheckCount == nil {
		s.CheckCount = make(map[string]int)
	}
}

// Clone returns a deep copy so callers can't mutate a store's internals.
func (s LedgerState) Clone() LedgerState {
	out := LedgerState{
		Records:    make([]LedgerRecord, len(s.Records)),
		Rate:       s.Rate,
		CheckCount: make(map[string]int, len(s.CheckCount)),
	}
	copy(out.Records, s.Records)
	for addr, n := range s.CheckCount {
		out.CheckCount[addr] = n
	}
	return out
}
