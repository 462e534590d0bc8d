package reply

import (
	"testing"
	"time"

	"github.com/sheikh-saqib/ledger-bot/internal/command"
	"github.com/sheikh-saqib/ledger-bot/internal/ledger"
	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRenderSummary(t *testing.T) {
	rate := dec("7.2")
	s := ledger.Summary{
		Date:     "2024-05-20",
		Income:   dec("100"),
		Expense:  dec("150"),
		Net:      dec("-50"),
		IncomeU:  dec("100").Div(rate),
		ExpenseU: dec("150").Div(rate),
		NetU:     dec("-50").Div(rate),
		Rate:     rate,
	}

	want := "📅 2024-05-20 账单汇总\n\n" +
		"入账：100.00 元 | 13.89U\n" +
		"支出：150.00 元 | 20.83U\n" +
		"净额：-50.00 元 | -6.94U\n" +
		"汇率：7.20"
	assert.Equal(t, want, Render(s))
}

func TestRenderSimpleResults(t *testing.T) {
	tests := []struct {
		res  ledger.Result
		want string
	}{
		{ledger.Recorded{Raw: "+100u 饭钱"}, "✅ 已记录：+100u 饭钱"},
		{ledger.NoRecords{Date: "2024-01-01"}, "📅 2024-01-01 没有记录。"},
		{ledger.RateCurrent{Rate: dec("7.5")}, "当前汇率：7.50"},
		{ledger.RateUpdated{Rate: dec("7.256")}, "✅ 汇率已更新为 7.26"},
		{ledger.RateInvalid{}, "❌ 格式错误，应为：汇率 7.25"},
		{ledger.LookupFailed{Cause: "timeout"}, "❌ 查询失败：timeout"},
		{ledger.Edited{Old: dec("12"), New: dec("13")}, "✅ 已修改：12.00 → 13.00"},
		{ledger.EditNotFound{Old: dec("12")}, "❌ 未找到金额为 12.00 的记录。"},
		{ledger.ResetDone{Removed: 4}, "✅ 账单已清零。"},
		{ledger.Unauthorized{}, "⛔️ 仅管理员可执行此操作。"},
		{ledger.Rejected{Err: &command.ParseError{Kind: command.BadAmount}}, "❌ 无法识别金额。"},
		{ledger.Rejected{Err: &command.ParseError{Kind: command.BadRate}}, "❌ 格式错误，应为：汇率 7.25"},
		{ledger.Rejected{Err: &command.ParseError{Kind: command.BadLookup}}, "❌ 格式错误，应为：查U 地址"},
		{ledger.Rejected{Err: &command.ParseError{Kind: command.BadEdit}}, "❌ 格式错误，应为：改 12 to 13"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Render(tt.res))
	}
}

func TestRenderHelp(t *testing.T) {
	out := Render(ledger.HelpText{})
	assert.Contains(t, out, "📘 可用指令：")
	assert.Contains(t, out, "查U 地址 ：查询TRON地址余额")
	assert.Contains(t, out, "改 12 to 13 ：修改账单（管理员）")
}

func TestRenderLookup(t *testing.T) {
	created := time.Date(2020, 9, 13, 12, 26, 40, 0, time.UTC)
	res := ledger.LookupSucceeded{
		Report: models.AddressReport{
			Address:        "TAbc",
			QueriedAt:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			TRXBalance:     dec("12.345678"),
			USDTBalance:    dec("2.5"),
			Energy:         320,
			BandwidthUsed:  45,
			BandwidthLimit: 600,
			CreatedAt:      &created,
		},
		Count: 3,
	}

	want := "📄查询地址：TAbc\n" +
		"⏱查询时间：2024-06-01 20:00:00\n" +
		"🪬查询结果：该地址已激活\n\n" +
		"🪫TRX余额：12.345678\n" +
		"💵USDT余额：2.500000\n" +
		"🔋能量：320\n" +
		"🌐带宽：45/600\n" +
		"⏰创建时间：2020/09/13 20:26:40" +
		"\n\n被查次数：3"
	assert.Equal(t, want, Render(res))
}

type bogus struct{ ledger.Result }

func TestRenderUnknownPanics(t *testing.T) {
	assert.Panics(t, func() { Render(bogus{}) })
}
