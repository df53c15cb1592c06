package report

import (
	"fmt"
	"strings"

	"alpha-sparrow/internal/domain"
)

// coinTableHeader opens the three-column coin/price/change table used by
// the live update, movers, and prediction reports.
const coinTableHeader = "┌────────┬────────────┬─────────┐\n" +
	"│ Coin   │ Price      │ Change% │\n" +
	"├────────┼────────────┼─────────┤\n"

const coinTableFooter = "└────────┴────────────┴─────────┘"

func coinTable(rows []domain.TickerRow) string {
	var b strings.Builder
	b.WriteString(coinTableHeader)
	for _, r := range rows {
		fmt.Fprintf(&b, "│ %-6s │ $%-10.2f │ %6.2f%% │\n", domain.BaseSymbol(r.Pair), r.LastPrice, r.ChangePct24h)
	}
	b.WriteString(coinTableFooter)
	return b.String()
}

// center pads s to width with spaces, extra space going to the right.
func center(s string, width int) string {
	gap := width - len([]rune(s))
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
