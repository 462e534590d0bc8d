package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/ledger-bot/internal/command"
	interfaces "github.com/sheikh-saqib/ledger-bot/internal/interfaces"
	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/sheikh-saqib/ledger-bot/internal/models/events"
	"github.com/shopspring/decimal"
)

// Caller identifies who sent a command.
type Caller struct {
	ID int64
}

// Ledger executes commands against a LedgerStore.
// Every load -> mutate -> save cycle runs under mu so concurrent commands
// never lose each other's writes. Network lookups run outside of it.
type Ledger struct {
	store     interfaces.LedgerStore
	lookup    interfaces.AddressLookup
	publisher interfaces.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
	adminID   int64

	mu sync.Mutex
}

type Option func(*Ledger)

func WithPublisher(p interfaces.EventPublisher) Option {
	return func(l *Ledger) { l.publisher = p }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithAdmin sets the only identity allowed to edit and reset. Zero disables
// admin commands.
func WithAdmin(id int64) Option {
	return func(l *Ledger) { l.adminID = id }
}

// NewLedger creates a Ledger. lookup may be nil, in which case address
// lookups fail with a user-visible message.
func NewLedger(store interfaces.LedgerStore, lookup interfaces.AddressLookup, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		lookup: lookup,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsAdmin reports whether c may run admin commands.
func (l *Ledger) IsAdmin(c Caller) bool {
	return l.adminID != 0 && c.ID == l.adminID
}

// Execute runs cmd. The only errors returned wrap ErrPersistence (or
// ErrUnknownCommand for a type outside the command set); everything the user
// did wrong comes back as a Result.
func (l *Ledger) Execute(ctx context.Context, caller Caller, cmd command.Command) (Result, error) {
	switch c := cmd.(type) {
	case command.RecordEntry:
		return l.recordEntry(ctx, c)
	case command.QuerySummary:
		return l.querySummary(ctx, c)
	case command.GetOrSetRate:
		return l.getOrSetRate(ctx, c)
	case command.LookupAddress:
		return l.lookupAddress(ctx, c)
	case command.Help:
		return HelpText{}, nil
	case command.EditRecord:
		if !l.IsAdmin(caller) {
			return Unauthorized{}, nil
		}
		return l.editRecord(ctx, c)
	case command.Reset:
		if !l.IsAdmin(caller) {
			return Unauthorized{}, nil
		}
		return l.reset(ctx)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

// update loads the state, hands it to fn and saves it if fn reports a
// change, all while holding mu. Once started the cycle runs to completion
// even if ctx is cancelled.
func (l *Ledger) update(ctx context.Context, fn func(state *models.LedgerState) bool) error {
	ctx = context.WithoutCancel(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	state, err := l.store.Load(ctx)
	if err != nil {
		return persistenceError("load", err)
	}
	state.Normalize()

	if !fn(&state) {
		return nil
	}

	if err := l.store.Save(ctx, state); err != nil {
		return persistenceError("save", err)
	}
	return nil
}

func (l *Ledger) recordEntry(ctx context.Context, c command.RecordEntry) (Result, error) {
	var rec models.LedgerRecord

	err := l.update(ctx, func(state *models.LedgerState) bool {
		amount := c.Amount
		if c.Unit == command.UnitStablecoin {
			amount = amount.Mul(state.Rate)
		}
		rec = models.NewLedgerRecord(l.now(), amount, c.Kind, c.Raw)
		state.Records = append(state.Records, rec)
		return true
	})
	if err != nil {
		return nil, err
	}

	l.publish(ctx, events.TopicRecordAppended, events.RecordAppended{
		EventID:    uuid.NewString(),
		Kind:       string(rec.Kind),
		Amount:     rec.Amount,
		Note:       rec.Note,
		Date:       rec.Date,
		OccurredAt: rec.Time,
	})

	return Recorded{Raw: c.Raw, Record: rec}, nil
}

// querySummary totals one day and converts with the rate in effect now,
// not the rates the records were entered at.
func (l *Ledger) querySummary(ctx context.Context, c command.QuerySummary) (Result, error) {
	var (
		sum   Summary
		found bool
	)

	err := l.update(ctx, func(state *models.LedgerState) bool {
		sum = Summary{
			Date:    c.Date,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Rate:    state.Rate,
		}
		for _, r := range state.Records {
			if r.Date != c.Date {
				continue
			}
			found = true
			sum.Count++
			switch r.Kind {
			case models.Income:
				sum.Income = sum.Income.Add(r.Amount)
			case models.Expense:
				sum.Expense = sum.Expense.Add(r.Amount)
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return NoRecords{Date: c.Date}, nil
	}

	sum.Net = sum.Income.Sub(sum.Expense)
	sum.IncomeU = sum.Income.Div(sum.Rate)
	sum.ExpenseU = sum.Expense.Div(sum.Rate)
	sum.NetU = sum.Net.Div(sum.Rate)
	return sum, nil
}

func (l *Ledger) getOrSetRate(ctx context.Context, c command.GetOrSetRate) (Result, error) {
	if c.NewRate != nil && !c.NewRate.IsPositive() {
		return RateInvalid{}, nil
	}

	var oldRate decimal.Decimal

	err := l.update(ctx, func(state *models.LedgerState) bool {
		oldRate = state.Rate
		if c.NewRate == nil {
			return false
		}
		state.Rate = *c.NewRate
		return true
	})
	if err != nil {
		return nil, err
	}

	if c.NewRate == nil {
		return RateCurrent{Rate: oldRate}, nil
	}

	l.publish(ctx, events.TopicRateChanged, events.RateChanged{
		EventID:    uuid.NewString(),
		OldRate:    oldRate,
		NewRate:    *c.NewRate,
		OccurredAt: l.now().In(models.Zone),
	})

	return RateUpdated{Rate: *c.NewRate}, nil
}

// lookupAddress counts the query before calling out, so the count survives
// a failed lookup.
func (l *Ledger) lookupAddress(ctx context.Context, c command.LookupAddress) (Result, error) {
	var count int

	err := l.update(ctx, func(state *models.LedgerState) bool {
		count = state.CheckCount[c.Address] + 1
		state.CheckCount[c.Address] = count
		return true
	})
	if err != nil {
		return nil, err
	}

	l.publish(ctx, events.TopicAddressLookup, events.AddressLookedUp{
		EventID:    uuid.NewString(),
		Address:    c.Address,
		Count:      count,
		OccurredAt: l.now().In(models.Zone),
	})

	if l.lookup == nil {
		return LookupFailed{Cause: "address lookup is not configured"}, nil
	}

	report, err := l.lookup.Lookup(ctx, c.Address)
	if err != nil {
		l.logger.Warn("address lookup failed", "address", c.Address, "error", err)
		return LookupFailed{Cause: err.Error()}, nil
	}

	return LookupSucceeded{Report: report, Count: count}, nil
}

// editRecord changes the most recent record whose amount equals c.Old.
func (l *Ledger) editRecord(ctx context.Context, c command.EditRecord) (Result, error) {
	var found bool

	err := l.update(ctx, func(state *models.LedgerState) bool {
		for i := len(state.Records) - 1; i >= 0; i-- {
			if state.Records[i].Amount.Equal(c.Old) {
				state.Records[i].Amount = c.New
				found = true
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return EditNotFound{Old: c.Old}, nil
	}

	l.publish(ctx, events.TopicRecordEdited, events.RecordEdited{
		EventID:    uuid.NewString(),
		OldAmount:  c.Old,
		NewAmount:  c.New,
		OccurredAt: l.now().In(models.Zone),
	})

	return Edited{Old: c.Old, New: c.New}, nil
}

// reset drops every record. The rate and lookup counts stay.
func (l *Ledger) reset(ctx context.Context) (Result, error) {
	var removed int

	err := l.update(ctx, func(state *models.LedgerState) bool {
		removed = len(state.Records)
		state.Records = make([]models.LedgerRecord, 0)
		return true
	})
	if err != nil {
		return nil, err
	}

	l.publish(ctx, events.TopicLedgerReset, events.LedgerReset{
		EventID:        uuid.NewString(),
		RecordsRemoved: removed,
		OccurredAt:     l.now().In(models.Zone),
	})

	return ResetDone{Removed: removed}, nil
}

// publish is best effort; the ledger is already saved when it runs.
func (l *Ledger) publish(ctx context.Context, topic string, event any) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(ctx, topic, event); err != nil {
		l.logger.Warn("publish event failed", "topic", topic, "error", err)
	}
}

// Records returns a snapshot of every stored record.
func (l *Ledger) Records(ctx context.Context) ([]models.LedgerRecord, error) {
	var out []models.LedgerRecord
	err := l.update(ctx, func(state *models.LedgerState) bool {
		out = state.Records
		return false
	})
	return out, err
}
