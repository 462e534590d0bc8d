// Package tron queries a Tronscan compatible API for account balances.
package tron

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	interfaces "github.com/sheikh-saqib/ledger-bot/internal/interfaces"
	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://apilist.tronscanapi.com"
	DefaultTimeout = 10 * time.Second
)

// balances are integers with 6 implied decimals
var sunPerUnit = decimal.New(1, 6)

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Client)

// WithAPIKey sends the key as TRON-PRO-API-KEY.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient returns a client for baseURL, DefaultBaseURL when empty.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the account and normalizes it. Every failure is a
// *LookupError.
func (c *Client) Lookup(ctx context.Context, address string) (models.AddressReport, error) {
	var jobj any
	if err := c.get(ctx, "/api/account?address="+url.QueryEscape(address), &jobj); err != nil {
		return models.AddressReport{}, err
	}

	report := models.AddressReport{
		Address:   address,
		QueriedAt: c.now().In(models.Zone),
	}

	raw, err := jsonpath.Get("$.balance", jobj)
	if err != nil {
		return report, lookupError(err, "missing field balance")
	}
	sun, err := toDecimal(raw)
	if err != nil {
		return report, lookupError(err, fmt.Sprintf("bad balance: %v", err))
	}
	report.TRXBalance = sun.Div(sunPerUnit)

	report.USDTBalance, err = usdtBalance(jobj)
	if err != nil {
		return report, lookupError(err, fmt.Sprintf("bad USDT balance: %v", err))
	}

	report.Energy = optionalInt(jobj, "$.energy")
	report.BandwidthLimit = optionalInt(jobj, "$.bandwidth")
	report.BandwidthUsed = optionalInt(jobj, "$.netUsed")
	report.CreatedAt = optionalTime(jobj, "$.create_time")
	report.LastActiveAt = optionalTime(jobj, "$.latest_opration_time")

	return report, nil
}

// get performs the GET and decodes the JSON body into data, keeping numbers
// as json.Number.
func (c *Client) get(ctx context.Context, path string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return lookupError(err, "")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("TRON-PRO-API-KEY", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return lookupError(err, "")
	}
	defer resp.Body.Close()

	c.logger.Debug("tron api", "method", req.Method, "path", req.URL.Path, "status", resp.Status)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return lookupError(nil, fmt.Sprintf("unexpected status %s", resp.Status))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(data); err != nil {
		return lookupError(err, fmt.Sprintf("malformed response: %v", err))
	}
	return nil
}

// usdtBalance scans trc20token_balances for the USDT entry, 0 if absent.
func usdtBalance(jobj any) (decimal.Decimal, error) {
	raw, err := jsonpath.Get("$.trc20token_balances", jobj)
	if err != nil {
		return decimal.Zero, nil
	}
	tokens, ok := raw.([]any)
	if !ok {
		return decimal.Zero, nil
	}
	for _, t := range tokens {
		token, ok := t.(map[string]any)
		if !ok || token["symbol"] != "USDT" {
			continue
		}
		amount, err := toDecimal(token["balance"])
		if err != nil {
			return decimal.Zero, err
		}
		return amount.Div(sunPerUnit), nil
	}
	return decimal.Zero, nil
}

func optionalInt(jobj any, path string) int64 {
	raw, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0
	}
	d, err := toDecimal(raw)
	if err != nil {
		return 0
	}
	return d.IntPart()
}

// optionalTime reads an epoch-millisecond field; zero or missing is nil.
func optionalTime(jobj any, path string) *time.Time {
	ms := optionalInt(jobj, path)
	if ms == 0 {
		return nil
	}
	t := time.UnixMilli(ms).In(models.Zone)
	return &t
}

// toDecimal accepts the shapes the API has been seen to use for numbers.
func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(n))
	case nil:
		return decimal.Zero, fmt.Errorf("null value")
	default:
		return decimal.Zero, fmt.Errorf("unexpected %T", v)
	}
}

var _ interfaces.AddressLookup = (*Client)(nil)
