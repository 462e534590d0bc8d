package tron

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var queriedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

const accountJSON = `{
	"balance": 12345678,
	"trc20token_balances": [
		{"symbol": "BTT", "balance": "99"},
		{"symbol": "USDT", "balance": "2500000"}
	],
	"energy": 320,
	"bandwidth": 600,
	"netUsed": 45,
	"create_time": 1600000000000,
	"latest_opration_time": 1700000000000
}`

type captured struct {
	mu     sync.Mutex
	path   string
	query  url.Values
	header http.Header
}

func (c *captured) get() (string, url.Values, http.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path, c.query, c.header
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	seen := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.mu.Lock()
		seen.path, seen.query, seen.header = r.URL.Path, r.URL.Query(), r.Header.Clone()
		seen.mu.Unlock()
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func newTestClient(srv *httptest.Server, opts ...Option) *Client {
	opts = append([]Option{WithClock(func() time.Time { return queriedAt })}, opts...)
	return NewClient(srv.URL, opts...)
}

func TestLookup(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK, accountJSON)
	c := newTestClient(srv, WithAPIKey("secret"))

	r, err := c.Lookup(context.Background(), "TAbc")
	require.NoError(t, err)

	path, query, header := seen.get()
	assert.Equal(t, "/api/account", path)
	assert.Equal(t, "TAbc", query.Get("address"))
	assert.Equal(t, "secret", header.Get("TRON-PRO-API-KEY"))

	assert.Equal(t, "TAbc", r.Address)
	assert.Equal(t, "2024-06-01 20:00:00", r.QueriedAt.Format(models.TimeLayout))
	assert.Equal(t, "12.345678", r.TRXBalance.StringFixed(6))
	assert.Equal(t, "2.500000", r.USDTBalance.StringFixed(6))
	assert.Equal(t, int64(320), r.Energy)
	assert.Equal(t, int64(45), r.BandwidthUsed)
	assert.Equal(t, int64(600), r.BandwidthLimit)
	require.NotNil(t, r.CreatedAt)
	assert.Equal(t, "2020/09/13 20:26:40", r.CreatedAt.Format("2006/01/02 15:04:05"))
	require.NotNil(t, r.LastActiveAt)
	assert.Equal(t, "2023/11/15 06:13:20", r.LastActiveAt.Format("2006/01/02 15:04:05"))
}

func TestLookupOptionalFieldsMissing(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"balance": 0}`)

	r, err := newTestClient(srv).Lookup(context.Background(), "TAbc")
	require.NoError(t, err)
	assert.True(t, r.TRXBalance.IsZero())
	assert.True(t, r.USDTBalance.IsZero())
	assert.Zero(t, r.Energy)
	assert.Nil(t, r.CreatedAt)
	assert.Nil(t, r.LastActiveAt)
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		cause  string
	}{
		{"status", http.StatusServiceUnavailable, `{}`, "unexpected status 503 Service Unavailable"},
		{"malformed", http.StatusOK, `{"balance":`, "malformed response"},
		{"missing balance", http.StatusOK, `{"energy": 1}`, "missing field balance"},
		{"bad balance", http.StatusOK, `{"balance": "lots"}`, "bad balance"},
		{"bad usdt", http.StatusOK, `{"balance": 1, "trc20token_balances": [{"symbol": "USDT", "balance": null}]}`, "bad USDT balance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)

			_, err := newTestClient(srv).Lookup(context.Background(), "TAbc")
			var lerr *LookupError
			require.True(t, errors.As(err, &lerr))
			assert.Contains(t, lerr.Error(), tt.cause)
		})
	}
}

func TestLookupTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestClient(srv, WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	_, err := c.Lookup(context.Background(), "TAbc")

	var lerr *LookupError
	require.ErrorAs(t, err, &lerr)
	assert.NotEmpty(t, lerr.Cause)
	assert.NotNil(t, errors.Unwrap(lerr))
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.http.Timeout)

	c = NewClient("http://example.test/")
	assert.Equal(t, "http://example.test", c.baseURL)
}
