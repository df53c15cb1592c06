package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// SettlementCurrency is the quote currency every tracked pair trades against.
const SettlementCurrency = "USDT"

// MissingMarker is the explicit on-disk value for an absent price sample.
// It is distinct from zero and from omission: a failed fetch is recorded.
const MissingMarker = "N/A"

// DefaultWatchlist is the fixed set of instruments tracked by the channel
// jobs when WATCHLIST is not configured.
var DefaultWatchlist = []string{"BTC", "ETH", "BNB", "ADA", "XRP"}

// Pair returns the exchange pair symbol for an instrument, e.g. BTC -> BTCUSDT.
func Pair(symbol string) string {
	return strings.ToUpper(symbol) + SettlementCurrency
}

// BaseSymbol strips the settlement suffix from a pair symbol, e.g. BTCUSDT -> BTC.
func BaseSymbol(pair string) string {
	return strings.TrimSuffix(pair, SettlementCurrency)
}

// Quote is one fully-populated observation of an instrument. A failed fetch
// yields no Quote at all, never a partially filled one.
type Quote struct {
	Symbol       string    `json:"symbol"`
	Price        float64   `json:"price"`
	ChangePct24h float64   `json:"change_pct_24h"`
	ObservedAt   time.Time `json:"observed_at"`
}

// TickerRow is one row of the full exchange 24h ticker snapshot. Pair keeps
// the raw exchange symbol; callers filter and sort client-side.
type TickerRow struct {
	Pair         string  `json:"pair"`
	LastPrice    float64 `json:"last_price"`
	ChangePct24h float64 `json:"change_pct_24h"`
}

// SentimentReading is one fetch of the fear & greed index.
type SentimentReading struct {
	Value          int       `json:"value"`
	Classification string    `json:"classification"`
	ObservedAt     time.Time `json:"observed_at"`
}

type NewsItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// PricePoint is a recorded price sample or the missing marker. It marshals
// to a bare number, or to "N/A" when the sample is missing, matching the
// append-only log layout.
type PricePoint struct {
	Price   float64
	Missing bool
}

func Sample(price float64) PricePoint { return PricePoint{Price: price} }

func MissingSample() PricePoint { return PricePoint{Missing: true} }

func (p PricePoint) MarshalJSON() ([]byte, error) {
	if p.Missing {
		return json.Marshal(MissingMarker)
	}
	return json.Marshal(p.Price)
}

func (p *PricePoint) UnmarshalJSON(data []byte) error {
	var price float64
	if err := json.Unmarshal(data, &price); err == nil {
		*p = PricePoint{Price: price}
		return nil
	}
	// Anything non-numeric ("N/A", null, junk) reads back as missing.
	*p = PricePoint{Missing: true}
	return nil
}

// TimeSeriesRecord is one appended snapshot of the watchlist. Records are
// immutable once written and totally ordered by timestamp (single writer).
type TimeSeriesRecord struct {
	Timestamp time.Time             `json:"timestamp"`
	Data      map[string]PricePoint `json:"data"`
}

// InstrumentSummary is the trailing-window aggregate for one instrument.
// Available is false when the instrument had zero present samples in the
// window; the numeric fields are meaningless in that case.
type InstrumentSummary struct {
	Symbol    string  `json:"symbol"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	ChangePct float64 `json:"change_pct"`
	Available bool    `json:"available"`
}
