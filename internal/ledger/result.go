package ledger

import (
	"github.com/sheikh-saqib/ledger-bot/internal/command"
	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/shopspring/decimal"
)

// Result is the outcome of one command, ready to be rendered.
type Result interface {
	result()
}

// Recorded confirms a new ledger line.
type Recorded struct {
	Raw    string
	Record models.LedgerRecord
}

// NoRecords means the summary date has nothing recorded.
type NoRecords struct {
	Date string
}

// Summary totals one day. Local amounts are in local currency, the U
// amounts are the same totals divided by Rate.
type Summary struct {
	Date     string
	Count    int
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Net      decimal.Decimal
	IncomeU  decimal.Decimal
	ExpenseU decimal.Decimal
	NetU     decimal.Decimal
	Rate     decimal.Decimal
}

type RateCurrent struct {
	Rate decimal.Decimal
}

type RateUpdated struct {
	Rate decimal.Decimal
}

// RateInvalid is returned for a rate that parsed but is not positive.
type RateInvalid struct{}

type LookupSucceeded struct {
	Report models.AddressReport
	Count  int
}

// LookupFailed carries the adapter's error text. The lookup count was still
// incremented but is not reported.
type LookupFailed struct {
	Cause string
}

type HelpText struct{}

type Edited struct {
	Old decimal.Decimal
	New decimal.Decimal
}

type EditNotFound struct {
	Old decimal.Decimal
}

type ResetDone struct {
	Removed int
}

// Unauthorized is returned when a non-admin sends an admin command.
type Unauthorized struct{}

// Rejected wraps a parse error so it renders like any other result.
type Rejected struct {
	Err *command.ParseError
}

func (Recorded) result()        {}
func (NoRecords) result()       {}
func (Summary) result()         {}
func (RateCurrent) result()     {}
func (RateUpdated) result()     {}
func (RateInvalid) result()     {}
func (LookupSucceeded) result() {}
func (LookupFailed) result()    {}
func (HelpText) result()        {}
func (Edited) result()          {}
func (EditNotFound) result()    {}
func (ResetDone) result()       {}
func (Unauthorized) result()    {}
func (Rejected) result()        {}
