// Package report turns market data into the channel's formatted messages.
// Everything in it is a pure function: missing inputs render as explicit
// placeholders, never as errors.
package report

import (
	"fmt"

	"alpha-sparrow/internal/domain"
)

const (
	SignalStrongBuy  = "Strong Buy"
	SignalStrongSell = "Strong Sell"
	SignalHold       = "Hold"
)

const (
	RiskHigh   = "High Risk"
	RiskMedium = "Medium Risk"
	RiskLow    = "Low Risk"
)

// ClassifySignal maps a 24h percent change to a trading signal. The ±2
// boundary itself is a Hold.
func ClassifySignal(changePct float64) string {
	switch {
	case changePct > 2:
		return SignalStrongBuy
	case changePct < -2:
		return SignalStrongSell
	default:
		return SignalHold
	}
}

// ClassifyRisk maps a fear & greed value to a risk level. Note the
// boundaries differ from the signal thresholds: 25 is already Medium,
// 50 is already Low.
func ClassifyRisk(value int) string {
	switch {
	case value < 25:
		return RiskHigh
	case value < 50:
		return RiskMedium
	default:
		return RiskLow
	}
}

var signalEmoji = map[string]string{
	SignalStrongBuy:  "📈",
	SignalStrongSell: "📉",
	SignalHold:       "🔄",
}

// Signal renders the live trading signal line for one instrument.
func Signal(symbol string, quote *domain.Quote) string {
	if quote == nil {
		return fmt.Sprintf("Data unavailable for %s signal.", symbol)
	}
	label := ClassifySignal(quote.ChangePct24h)
	return fmt.Sprintf("%s Signal: %s %s (Change: %.2f%%)", quote.Symbol, signalEmoji[label], label, quote.ChangePct24h)
}
