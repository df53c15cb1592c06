package report

import (
	"sort"
	"strings"

	"alpha-sparrow/internal/domain"
)

const moversLimit = 5

// RankMovers filters the batch snapshot to settlement-currency pairs and
// returns the top gainers (sorted descending by 24h change) and top losers
// (sorted ascending), at most five of each. Stable sorts keep ties in
// input order. With fewer than five pairs both slices hold what exists.
func RankMovers(rows []domain.TickerRow) (gainers, losers []domain.TickerRow) {
	pairs := settlementPairs(rows)

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].ChangePct24h < pairs[j].ChangePct24h
	})

	n := len(pairs)
	losers = append(losers, pairs[:min(moversLimit, n)]...)

	// The top slice is ascending after the first pass; re-sort it
	// descending rather than assuming it is already ordered.
	gainers = append(gainers, pairs[max(0, n-moversLimit):]...)
	sort.SliceStable(gainers, func(i, j int) bool {
		return gainers[i].ChangePct24h > gainers[j].ChangePct24h
	})
	return gainers, losers
}

// RankByChange returns up to five settlement pairs sorted descending by 24h
// change, the original channel's "prediction" table.
func RankByChange(rows []domain.TickerRow) []domain.TickerRow {
	pairs := settlementPairs(rows)
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].ChangePct24h > pairs[j].ChangePct24h
	})
	return pairs[:min(moversLimit, len(pairs))]
}

// TopMovers renders the gainers and losers tables. A nil snapshot renders
// the error placeholder rather than an empty report.
func TopMovers(rows []domain.TickerRow) string {
	if len(rows) == 0 {
		return "Error fetching gainers/losers data."
	}
	gainers, losers := RankMovers(rows)
	return "<b>Top 5 Gainers</b>\n<pre>" + coinTable(gainers) + "</pre>\n" +
		"<b>Top 5 Losers</b>\n<pre>" + coinTable(losers) + "</pre>"
}

// TopByChange renders the descending top-five table.
func TopByChange(rows []domain.TickerRow) string {
	if len(rows) == 0 {
		return "Error fetching prediction data."
	}
	return "<pre>" + coinTable(RankByChange(rows)) + "</pre>"
}

func settlementPairs(rows []domain.TickerRow) []domain.TickerRow {
	pairs := make([]domain.TickerRow, 0, len(rows))
	for _, r := range rows {
		if strings.HasSuffix(r.Pair, domain.SettlementCurrency) {
			pairs = append(pairs, r)
		}
	}
	return pairs
}
