package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	interfaces "github.com/sheikh-saqib/ledger-bot/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/ledger-bot/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_records (
	seq INTEGER PRIMARY KEY,
	recorded_at TIMESTAMPTZ NOT NULL,
	date TEXT NOT NULL,
	amount NUMERIC NOT NULL,
	type TEXT NOT NULL,
	note TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS ledger_settings (
	key TEXT PRIMARY KEY,
	value NUMERIC NOT NULL
);
CREATE TABLE IF NOT EXISTS check_counts (
	address TEXT PRIMARY KEY,
	count INTEGER NOT NULL
);
INSERT INTO ledger_settings (key, value) VALUES ('rate', 7.2) ON CONFLICT (key) DO NOTHING;
`

type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

// Open connects with the lib/pq driver and creates the tables if needed.
func Open(ctx context.Context, dsn string) (*PostgresLedgerStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	store := NewPostgresLedgerStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (p *PostgresLedgerStore) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, schema)
	return err
}

func (p *PostgresLedgerStore) Load(ctx context.Context) (models.LedgerState, error) {
	state := models.NewLedgerState()

	const rateQuery = `SELECT value FROM ledger_settings WHERE key = 'rate'`
	err := p.db.QueryRowContext(ctx, rateQuery).Scan(&state.Rate)
	if err != nil && err != sql.ErrNoRows {
		return state, err
	}

	const recordsQuery = `SELECT recorded_at, date, amount, type, note FROM ledger_records ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, recordsQuery)
	if err != nil {
		return state, err
	}

	defer rows.Close()

	for rows.Next() {
		var (
			rec  models.LedgerRecord
			ts   time.Time
			kind string
		)
		if err := rows.Scan(&ts, &rec.Date, &rec.Amount, &kind, &rec.Note); err != nil {
			return state, err
		}
		rec.Time = ts.In(models.Zone)
		rec.Kind = models.Kind(kind)
		state.Records = append(state.Records, rec)
	}

	if err := rows.Err(); err != nil {
		return state, err
	}

	const countsQuery = `SELECT address, count FROM check_counts`

	counts, err := p.db.QueryContext(ctx, countsQuery)
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

func (p *PostgresLedgerStore) Save(ctx context.Context, state models.LedgerState) error {

	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	if _, err = dbTx.ExecContext(ctx, `DELETE FROM ledger_records`); err != nil {
		return err
	}
	if _, err = dbTx.ExecContext(ctx, `DELETE FROM check_counts`); err != nil {
		return err
	}

	const insertRecord = `INSERT INTO ledger_records (seq, recorded_at, date, amount, type, note)
	VALUES ($1,$2,$3,$4,$5,$6)`

	for i, r := range state.Records {
		_, err = dbTx.ExecContext(ctx, insertRecord, i+1, r.Time, r.Date, r.Amount, string(r.Kind), r.Note)
		if err != nil {
			return err
		}
	}

	const insertCount = `INSERT INTO check_counts (address, count) VALUES ($1,$2)`

	for addr, n := range state.CheckCount {
		if _, err = dbTx.ExecContext(ctx, insertCount, addr, n); err != nil {
			return err
		}
	}

	const upsertRate = `INSERT INTO ledger_settings (key, value) VALUES ('rate', $1)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err = dbTx.ExecContext(ctx, upsertRate, state.Rate); err != nil {
		return err
	}

	err = dbTx.Commit()
	return err
}

func (p *PostgresLedgerStore) Close() error {
	return p.db.Close()
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
