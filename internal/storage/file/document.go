package file

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/shopspring/decimal"
)

// document mirrors data.json as the original bot wrote it.
type document struct {
	Records    []recordDoc    `json:"records"`
	Rate       json.Number    `json:"rate"`
	CheckCount map[string]int `json:"check_count"`
}

type recordDoc struct {
	Time   string      `json:"time"`
	Date   string      `json:"date"`
	Amount json.Number `json:"amount"`
	Type   string      `json:"type"`
	Note   string      `json:"note"`
}

func toDocument(state models.LedgerState) document {
	doc := document{
		Records:    make([]recordDoc, 0, len(state.Records)),
		Rate:       json.Number(state.Rate.String()),
		CheckCount: state.CheckCount,
	}
	if doc.CheckCount == nil {
		doc.CheckCount = map[string]int{}
	}
	for _, r := range state.Records {
		doc.Records = append(doc.Records, recordDoc{
			Time:   r.Time.In(models.Zone).Format(models.TimeLayout),
			Date:   r.Date,
			Amount: json.Number(r.Amount.String()),
			Type:   string(r.Kind),
			Note:   r.Note,
		})
	}
	return doc
}

func fromDocument(doc document) (models.LedgerState, error) {
	state := models.NewLedgerState()

	if doc.Rate != "" {
		rate, err := decimal.NewFromString(doc.Rate.String())
		if err != nil {
			return state, fmt.Errorf("rate %q: %w", doc.Rate, err)
		}
		state.Rate = rate
	}

	for addr, n := range doc.CheckCount {
		state.CheckCount[addr] = n
	}

	for i, rd := range doc.Records {
		amount, err := decimal.NewFromString(rd.Amount.String())
		if err != nil {
			return state, fmt.Errorf("record %d amount %q: %w", i, rd.Amount, err)
		}
		ts, err := time.ParseInLocation(models.TimeLayout, rd.Time, models.Zone)
		if err != nil {
			return state, fmt.Errorf("record %d time: %w", i, err)
		}
		kind := models.Kind(rd.Type)
		if kind != models.Income && kind != models.Expense {
			return state, fmt.Errorf("record %d: unknown type %q", i, rd.Type)
		}
		state.Records = append(state.Records, models.LedgerRecord{
			Time:   ts,
			Date:   rd.Date,
			Amount: amount,
			Kind:   kind,
			Note:   rd.Note,
		})
	}

	state.Normalize()
	return state, nil
}
