package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteLedgerStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := NewSQLiteLedgerStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func TestSQLiteDefaults(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	state, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Records)
	assert.True(t, state.Rate.Equal(models.DefaultRate))
	assert.Empty(t, state.CheckCount)
}

func TestSQLiteSaveRewritesEverything(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 20, 1, 2, 3, 0, time.UTC)

	state := models.NewLedgerState()
	state.Rate = decimal.RequireFromString("7.1")
	for _, amt := range []string{"1", "2.5", "3"} {
		state.Records = append(state.Records, models.NewLedgerRecord(now, decimal.RequireFromString(amt), models.Income, "+"+amt))
	}
	state.CheckCount["a"] = 1
	state.CheckCount["b"] = 4
	require.NoError(t, s.Save(ctx, state))

	state.Records = state.Records[:1]
	delete(state.CheckCount, "a")
	require.NoError(t, s.Save(ctx, state))
	require.NoError(t, s.Close())

	// reopen to make sure it really hit the disk
	s2, err := NewSQLiteLedgerStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	got, err := s2.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "+1", got.Records[0].Note)
	assert.Equal(t, "2024-05-20 09:02:03", got.Records[0].Time.Format(models.TimeLayout))
	assert.True(t, got.Rate.Equal(decimal.RequireFromString("7.1")))
	assert.Equal(t, map[string]int{"b": 4}, got.CheckCount)
}

func TestSQLiteKeepsOrder(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 20, 1, 2, 3, 0, time.UTC)

	state := models.NewLedgerState()
	for i := 0; i < 20; i++ {
		state.Records = append(state.Records, models.NewLedgerRecord(now, decimal.NewFromInt(int64(i)), models.Expense, "-"))
	}
	require.NoError(t, s.Save(ctx, state))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Records, 20)
	for i, r := range got.Records {
		assert.True(t, r.Amount.Equal(decimal.NewFromInt(int64(i))))
	}
}
