// Package reply renders ledger results as chat messages.
package reply

import (
	"fmt"
	"strings"

	"github.com/sheikh-saqib/ledger-bot/internal/command"
	"github.com/sheikh-saqib/ledger-bot/internal/ledger"
	"github.com/sheikh-saqib/ledger-bot/internal/models"
	"github.com/shopspring/decimal"
)

const (
	reportTimeLayout = "2006/01/02 15:04:05"

	// SystemError is sent when the ledger could not be read or written.
	SystemError = "❌ 系统错误，请稍后再试。"
)

const helpText = "📘 可用指令：\n" +
	"+188 / -46 ：记录收支（默认人民币，带u为USDT）\n" +
	"查账 / 查账 YYYY-MM-DD ：查看账单\n" +
	"改 12 to 13 ：修改账单（管理员）\n" +
	"清零 ：清除账单（管理员）\n" +
	"查U 地址 ：查询TRON地址余额\n" +
	"汇率 / 汇率 X.XX ：查看或修改汇率"

// Render turns a result into reply text. Passing a type this package does
// not know is a bug and panics.
func Render(res ledger.Result) string {
	switch r := res.(type) {
	case ledger.Recorded:
		return "✅ 已记录：" + r.Raw
	case ledger.NoRecords:
		return fmt.Sprintf("📅 %s 没有记录。", r.Date)
	case ledger.Summary:
		return summary(r)
	case ledger.RateCurrent:
		return "当前汇率：" + money(r.Rate)
	case ledger.RateUpdated:
		return "✅ 汇率已更新为 " + money(r.Rate)
	case ledger.RateInvalid:
		return rejected(command.BadRate)
	case ledger.LookupSucceeded:
		return addressReport(r.Report) + fmt.Sprintf("\n\n被查次数：%d", r.Count)
	case ledger.LookupFailed:
		return "❌ 查询失败：" + r.Cause
	case ledger.HelpText:
		return helpText
	case ledger.Edited:
		return fmt.Sprintf("✅ 已修改：%s → %s", money(r.Old), money(r.New))
	case ledger.EditNotFound:
		return fmt.Sprintf("❌ 未找到金额为 %s 的记录。", money(r.Old))
	case ledger.ResetDone:
		return "✅ 账单已清零。"
	case ledger.Unauthorized:
		return "⛔️ 仅管理员可执行此操作。"
	case ledger.Rejected:
		return rejected(r.Err.Kind)
	default:
		panic(fmt.Sprintf("reply: cannot render %T", res))
	}
}

func rejected(kind command.ErrorKind) string {
	switch kind {
	case command.BadRate:
		return "❌ 格式错误，应为：汇率 7.25"
	case command.BadLookup:
		return "❌ 格式错误，应为：查U 地址"
	case command.BadEdit:
		return "❌ 格式错误，应为：改 12 to 13"
	default:
		return "❌ 无法识别金额。"
	}
}

func summary(s ledger.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s 账单汇总\n\n", s.Date)
	fmt.Fprintf(&b, "入账：%s 元 | %sU\n", money(s.Income), money(s.IncomeU))
	fmt.Fprintf(&b, "支出：%s 元 | %sU\n", money(s.Expense), money(s.ExpenseU))
	fmt.Fprintf(&b, "净额：%s 元 | %sU\n", money(s.Net), money(s.NetU))
	fmt.Fprintf(&b, "汇率：%s", money(s.Rate))
	return b.String()
}

func addressReport(r models.AddressReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄查询地址：%s\n", r.Address)
	fmt.Fprintf(&b, "⏱查询时间：%s\n", r.QueriedAt.In(models.Zone).Format(models.TimeLayout))
	b.WriteString("🪬查询结果：该地址已激活\n\n")
	fmt.Fprintf(&b, "🪫TRX余额：%s\n", r.TRXBalance.StringFixed(6))
	fmt.Fprintf(&b, "💵USDT余额：%s\n", r.USDTBalance.StringFixed(6))
	fmt.Fprintf(&b, "🔋能量：%d\n", r.Energy)
	fmt.Fprintf(&b, "🌐带宽：%d/%d", r.BandwidthUsed, r.BandwidthLimit)
	if r.CreatedAt != nil {
		fmt.Fprintf(&b, "\n⏰创建时间：%s", r.CreatedAt.In(models.Zone).Format(reportTimeLayout))
	}
	if r.LastActiveAt != nil {
		fmt.Fprintf(&b, "\n⏰最后活跃：%s", r.LastActiveAt.In(models.Zone).Format(reportTimeLayout))
	}
	return b.String()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
