package report

import (
	"fmt"
	"strconv"
	"strings"

	"alpha-sparrow/internal/domain"
)

// SentimentBox renders the fear & greed index box. A nil reading renders
// the unavailable placeholder.
func SentimentBox(reading *domain.SentimentReading) string {
	if reading == nil {
		return "<b>Fear & Greed Index</b>\nData unavailable."
	}

	line := strings.Repeat("─", 33)
	var b strings.Builder
	fmt.Fprintf(&b, "┌%s┐\n", line)
	fmt.Fprintf(&b, "│ %s │\n", center("Fear & Greed Index", 33))
	fmt.Fprintf(&b, "├%s┤\n", line)
	fmt.Fprintf(&b, "│ Sentiment: %-16s │\n", reading.Classification)
	fmt.Fprintf(&b, "│ Index:     %s │\n", center(strconv.Itoa(reading.Value), 16))
	fmt.Fprintf(&b, "└%s┘\n", line)
	return "<pre>" + b.String() + "</pre>"
}

// RiskMeter renders the risk box plus the appended live top-five table.
// Either input may be missing independently; both degrade to N/A.
func RiskMeter(reading *domain.SentimentReading, rows []domain.TickerRow) string {
	riskLevel := "N/A"
	value := "N/A"
	if reading != nil {
		riskLevel = ClassifyRisk(reading.Value)
		value = strconv.Itoa(reading.Value)
	}

	line := strings.Repeat("─", 29)
	var b strings.Builder
	fmt.Fprintf(&b, "┌%s┐\n", line)
	fmt.Fprintf(&b, "│ %s │\n", center("Risk Meter", 29))
	fmt.Fprintf(&b, "├%s┤\n", line)
	fmt.Fprintf(&b, "│ Risk Level: %-10s │\n", riskLevel)
	fmt.Fprintf(&b, "│ F&G Index:  %s │\n", center(value, 10))
	fmt.Fprintf(&b, "└%s┘\n", line)

	return "<pre>" + b.String() + "</pre>\n<b>Live Signal</b>\n" + TopByChange(rows)
}
