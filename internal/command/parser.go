package command

import (
	"errors"
	"strings"
	"time"

	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/shopspring/decimal"
)

const (
	summaryKeyword = "查账"
	rateKeyword    = "汇率"
	lookupKeyword  = "查U"
	editKeyword    = "改"
	resetKeyword   = "清零"
)

// Limits on numbers typed into chat.
var (
	maxNumber     = decimal.New(1, 15)
	maxFracDigits = int32(8)

	errOutOfRange = errors.New("number out of range")
)

// Parser parses messages. Now supplies "today" for summaries without a
// date; nil means time.Now.
type Parser struct {
	Now func() time.Time
}

// Parse uses the wall clock.
func Parse(text string) (Command, error) {
	return Parser{}.Parse(text)
}

// Parse returns (nil, nil) when text is not a command at all. Keywords are
// tried in a fixed order and matched case-sensitively.
func (p Parser) Parse(text string) (Command, error) {
	text = strings.TrimSpace(text)
	parts := strings.Fields(text)

	switch {
	case strings.HasPrefix(text, summaryKeyword):
		if len(parts) > 1 {
			return QuerySummary{Date: parts[1]}, nil
		}
		return QuerySummary{Date: models.Today(p.now())}, nil

	case strings.HasPrefix(text, rateKeyword):
		if len(parts) != 2 {
			return GetOrSetRate{}, nil
		}
		rate, err := parseNumber(parts[1])
		if err != nil {
			return nil, newParseError(BadRate)
		}
		return GetOrSetRate{NewRate: &rate}, nil

	case strings.HasPrefix(text, lookupKeyword):
		if len(parts) != 2 {
			return nil, newParseError(BadLookup)
		}
		return LookupAddress{Address: parts[1]}, nil

	case strings.HasPrefix(text, "+"), strings.HasPrefix(text, "-"):
		return parseEntry(text)

	case len(parts) > 0 && parts[0] == editKeyword:
		return parseEdit(parts)

	case text == resetKeyword:
		return Reset{}, nil

	case text == "/help" || text == "help":
		return Help{}, nil
	}

	return nil, nil
}

func (p Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// parseEntry handles "+188", "-46", "+20u note". A "u" anywhere in the
// message, note included, switches the unit to USDT.
func parseEntry(text string) (Command, error) {
	kind := models.Income
	if text[0] == '-' {
		kind = models.Expense
	}

	fields := strings.Fields(text[1:])
	if len(fields) == 0 {
		return nil, newParseError(BadAmount)
	}

	token := strings.NewReplacer("u", "", "U", "").Replace(fields[0])
	amount, err := parseNumber(token)
	if err != nil || amount.IsNegative() {
		return nil, newParseError(BadAmount)
	}

	unit := UnitLocal
	if strings.ContainsAny(text, "uU") {
		unit = UnitStablecoin
	}

	return RecordEntry{Kind: kind, Amount: amount, Unit: unit, Raw: text}, nil
}

// parseEdit expects exactly "改 <old> to <new>".
func parseEdit(parts []string) (Command, error) {
	if len(parts) != 4 || parts[2] != "to" {
		return nil, newParseError(BadEdit)
	}
	oldAmount, err := parseNumber(parts[1])
	if err != nil || oldAmount.IsNegative() {
		return nil, newParseError(BadEdit)
	}
	newAmount, err := parseNumber(parts[3])
	if err != nil || newAmount.IsNegative() {
		return nil, newParseError(BadEdit)
	}
	return EditRecord{Old: oldAmount, New: newAmount}, nil
}

// parseNumber accepts plain decimal notation only: no exponent, at most
// maxFracDigits decimals and an absolute value below maxNumber.
func parseNumber(s string) (decimal.Decimal, error) {
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, errOutOfRange
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.Exponent() < -maxFracDigits || d.Abs().GreaterThanOrEqual(maxNumber) {
		return decimal.Zero, errOutOfRange
	}
	return d, nil
}
