package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *JSONLedgerStore {
	t.Helper()
	return NewJSONLedgerStore(filepath.Join(t.TempDir(), "nested", "data.json"))
}

func TestLoadCreatesDefaults(t *testing.T) {
	s := newTestStore(t)

	state, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Records)
	assert.True(t, state.Rate.Equal(models.DefaultRate))
	assert.Empty(t, state.CheckCount)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{}, raw["records"])
	assert.Equal(t, 7.2, raw["rate"])
	assert.Equal(t, map[string]any{}, raw["check_count"])
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2024, 5, 20, 1, 2, 3, 0, time.UTC)
	state := models.NewLedgerState()
	state.Rate = decimal.RequireFromString("7.35")
	state.Records = append(state.Records,
		models.NewLedgerRecord(now, decimal.RequireFromString("100"), models.Income, "+100"),
		models.NewLedgerRecord(now, decimal.RequireFromString("73.5"), models.Expense, "-10u 午饭"),
	)
	state.CheckCount["TAbc"] = 3

	require.NoError(t, s.Save(ctx, state))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Records, 2)
	assert.True(t, got.Rate.Equal(state.Rate))
	assert.Equal(t, 3, got.CheckCount["TAbc"])
	assert.Equal(t, "2024-05-20 09:02:03", got.Records[1].Time.Format(models.TimeLayout))
	assert.Equal(t, "2024-05-20", got.Records[1].Date)
	assert.True(t, got.Records[1].Amount.Equal(decimal.RequireFromString("73.5")))
	assert.Equal(t, models.Expense, got.Records[1].Kind)
	assert.Equal(t, "-10u 午饭", got.Records[1].Note)

	// the document keeps the original field names and plain numbers
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var raw struct {
		Records []map[string]any `json:"records"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]any{
		"time":   "2024-05-20 09:02:03",
		"date":   "2024-05-20",
		"amount": 73.5,
		"type":   "out",
		"note":   "-10u 午饭",
	}, raw.Records[1])
}

func TestLoadExistingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	doc := `{
  "records": [
    {"time": "2024-01-02 10:00:00", "date": "2024-01-02", "amount": 144.0, "type": "in", "note": "+20u"}
  ],
  "rate": 7.2,
  "check_count": {"TAbc": 2}
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	state, err := NewJSONLedgerStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Records, 1)
	assert.True(t, state.Records[0].Amount.Equal(decimal.NewFromInt(144)))
	assert.Equal(t, 2, state.CheckCount["TAbc"])
}

func TestLoadMissingRateUsesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"records": []}`), 0o600))

	state, err := NewJSONLedgerStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Rate.Equal(models.DefaultRate))
	assert.NotNil(t, state.CheckCount)
}

func TestLoadCorruptDocument(t *testing.T) {
	for _, doc := range []string{
		`{"records": [`,
		`{"records": [{"time": "yesterday", "date": "2024-01-02", "amount": 1, "type": "in", "note": ""}]}`,
		`{"records": [{"time": "2024-01-02 10:00:00", "date": "2024-01-02", "amount": 1, "type": "sideways", "note": ""}]}`,
	} {
		path := filepath.Join(t.TempDir(), "data.json")
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		_, err := NewJSONLedgerStore(path).Load(context.Background())
		assert.Error(t, err, doc)
	}
}
