package report

import (
	"fmt"
	"strings"

	"alpha-sparrow/internal/domain"
)

// Top5Live renders the periodic live table for the watchlist. Instruments
// whose fetch failed get an explicit N/A row.
func Top5Live(quotes map[string]*domain.Quote, watchlist []string) string {
	var b strings.Builder
	b.WriteString(coinTableHeader)
	for _, symbol := range watchlist {
		if q := quotes[symbol]; q != nil {
			fmt.Fprintf(&b, "│ %-6s │ $%-10.2f │ %6.2f%% │\n", symbol, q.Price, q.ChangePct24h)
		} else {
			fmt.Fprintf(&b, "│ %-6s │ %-10s │ %6s │\n", symbol, "N/A", "N/A")
		}
	}
	b.WriteString(coinTableFooter)
	return "<b>Top 5 Coins Live Update</b>\n<pre>" + b.String() + "</pre>"
}

// Trends renders the per-instrument 24h change lines.
func Trends(quotes map[string]*domain.Quote, watchlist []string) string {
	var b strings.Builder
	b.WriteString("<b>Market Trends (Binance Data)</b>\n\n")
	for _, symbol := range watchlist {
		if q := quotes[symbol]; q != nil {
			fmt.Fprintf(&b, "%s: %.2f%%\n", symbol, q.ChangePct24h)
		} else {
			fmt.Fprintf(&b, "%s: N/A\n", symbol)
		}
	}
	return b.String()
}

// News renders the linked news digest.
func News(items []domain.NewsItem) string {
	if len(items) == 0 {
		return "No news available at the moment."
	}
	var b strings.Builder
	b.WriteString("<b>Latest Crypto News</b>\n\n")
	for _, item := range items {
		url := item.URL
		if url == "" {
			url = "#"
		}
		fmt.Fprintf(&b, "- <a href='%s'>%s</a>\n\n", url, item.Title)
	}
	return b.String()
}

// GoodMorning is the daily 07:00 UTC channel greeting.
func GoodMorning() string {
	return "<b>Good Morning!</b>\n" +
		"\"Every morning is a new opportunity in crypto! Stay curious and trade smart.\""
}
