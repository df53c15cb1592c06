package report

import (
	"fmt"
	"strings"

	"alpha-sparrow/internal/domain"
)

// DailySummary renders the trailing-window report from recorder output.
// An empty summaries slice means the log had no records in the window.
// Instruments with zero present samples render as N/A rows.
func DailySummary(summaries []domain.InstrumentSummary, windowHours int) string {
	if len(summaries) == 0 {
		return "No data available for daily summary."
	}

	var b strings.Builder
	b.WriteString("┌──────┬────────┬────────┬────────┬────────┬──────────┐\n")
	b.WriteString("│ Coin │ Start  │ End    │ High   │ Low    │ % Change │\n")
	b.WriteString("├──────┼────────┼────────┼────────┼────────┼──────────┤\n")
	for _, s := range summaries {
		if s.Available {
			fmt.Fprintf(&b, "│ %-4s │ %6.2f │ %6.2f │ %6.2f │ %6.2f │ %8.2f%% │\n",
				s.Symbol, s.Start, s.End, s.High, s.Low, s.ChangePct)
		} else {
			fmt.Fprintf(&b, "│ %-4s │ %6s │ %6s │ %6s │ %6s │ %8s │\n",
				s.Symbol, "N/A", "N/A", "N/A", "N/A", "N/A")
		}
	}
	b.WriteString("└──────┴────────┴────────┴────────┴────────┴──────────┘")

	header := fmt.Sprintf("Daily Summary Report (Last %d Hours)", windowHours)
	return "<b>" + header + "</b>\n<pre>" + b.String() + "</pre>"
}
