// Package command turns a chat message into a typed ledger command.
package command

import (
	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/shopspring/decimal"
)

// Command is one of the concrete command types below. The set is closed.
type Command interface {
	command()
}

// Unit is the currency an amount was typed in.
type Unit int

const (
	UnitLocal Unit = iota
	UnitStablecoin
)

func (u Unit) String() string {
	if u == UnitStablecoin {
		return "U"
	}
	return "CNY"
}

// RecordEntry is "+100" / "-46u".
type RecordEntry struct {
	Kind   models.Kind
	Amount decimal.Decimal // as typed, not converted
	Unit   Unit
	Raw    string
}

// QuerySummary is "查账" with an optional date.
type QuerySummary struct {
	Date string
}

// GetOrSetRate is "汇率" with an optional new value. A nil NewRate reads
// the current rate.
type GetOrSetRate struct {
	NewRate *decimal.Decimal
}

// LookupAddress is "查U <address>".
type LookupAddress struct {
	Address string
}

type Help struct{}

// EditRecord is "改 <old> to <new>", admin only.
type EditRecord struct {
	Old decimal.Decimal
	New decimal.Decimal
}

// Reset is "清零", admin only.
type Reset struct{}

func (RecordEntry) command()   {}
func (QuerySummary) command()  {}
func (GetOrSetRate) command()  {}
func (LookupAddress) command() {}
func (Help) command()          {}
func (EditRecord) command()    {}
func (Reset) command()         {}
