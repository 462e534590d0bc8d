package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	interfaces "github.com/sheikh-saqib/ledger-bot/internal/interfaces"
	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/shopspring/decimal"
)

type SQLiteLedgerStore struct {
	db *sql.DB
}

// NewSQLiteLedgerStore opens (or creates) the database at path and makes
// sure the schema exists.
func NewSQLiteLedgerStore(path string) (*SQLiteLedgerStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// one connection keeps writers from tripping over SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteLedgerStore{db: db}, nil
}

func (s *SQLiteLedgerStore) Load(ctx context.Context) (models.LedgerState, error) {
	state := models.NewLedgerState()

	var rate string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = 'rate'`).Scan(&rate)
	if err != nil && err != sql.ErrNoRows {
		return state, err
	}
	if err == nil {
		if state.Rate, err = decimal.NewFromString(rate); err != nil {
			return state, fmt.Errorf("rate %q: %w", rate, err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT time, date, amount, type, note FROM records ORDER BY seq`)
	if err != nil {
		return state, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ts   string
			rec  models.LedgerRecord
			kind string
		)
		if err := rows.Scan(&ts, &rec.Date, &rec.Amount, &kind, &rec.Note); err != nil {
			return state, err
		}
		if rec.Time, err = time.ParseInLocation(models.TimeLayout, ts, models.Zone); err != nil {
			return state, fmt.Errorf("record time %q: %w", ts, err)
		}
		rec.Kind = models.Kind(kind)
		state.Records = append(state.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return state, err
	}

	counts, err := s.db.QueryContext(ctx, `SELECT address, count FROM check_counts`)
	if err != nil {
		return state, err
	}
	defer counts.Close()

	for counts.Next() {
		var (
			addr string
			n    int
		)
		if err := counts.Scan(&addr, &n); err != nil {
			return state, err
		}
		state.CheckCount[addr] = n
	}
	if err := counts.Err(); err != nil {
		return state, err
	}

	state.Normalize()
	return state, nil
}

// Save replaces every table's content inside one transaction.
func (s *SQLiteLedgerStore) Save(ctx context.Context, state models.LedgerState) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM check_counts`); err != nil {
		return err
	}

	for i, r := range state.Records {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO records (seq, time, date, amount, type, note)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i+1, r.Time.In(models.Zone).Format(models.TimeLayout), r.Date, r.Amount.String(), string(r.Kind), r.Note,
		)
		if err != nil {
			return err
		}
	}

	for addr, n := range state.CheckCount {
		if _, err = tx.ExecContext(ctx, `INSERT INTO check_counts (address, count) VALUES (?, ?)`, addr, n); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES ('rate', ?)`, state.Rate.String())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteLedgerStore) Close() error {
	return s.db.Close()
}

var _ interfaces.LedgerStore = (*SQLiteLedgerStore)(nil)
