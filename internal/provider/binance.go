package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"alpha-sparrow/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const binanceBaseURL = "https://api.binance.com/api/v3"

// fetchTimeout bounds every upstream call. Providers make a single attempt;
// retry policy, if any, belongs to the caller.
const fetchTimeout = 5 * time.Second

// BinanceProvider fetches spot prices and 24h ticker data from the Binance
// public API.
type BinanceProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewBinanceProvider creates a provider with built-in rate limiting.
// A 20-token bucket refilled every 3s keeps the channel jobs well inside
// the public API weight limits.
func NewBinanceProvider(tracer trace.Tracer) *BinanceProvider {
	return &BinanceProvider{
		client:  &http.Client{Timeout: fetchTimeout},
		baseURL: binanceBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(20, 3*time.Second),
	}
}

// FetchPrice fetches the live spot price for one instrument, e.g. "BTC".
func (p *BinanceProvider) FetchPrice(ctx context.Context, symbol string) (float64, error) {
	_, span := p.tracer.Start(ctx, "binance.fetch-price")
	defer span.End()

	const op = "binance fetch price"
	url := fmt.Sprintf("%s/ticker/price?symbol=%s", p.baseURL, domain.Pair(symbol))

	body, err := p.doRequest(ctx, op, url)
	if err != nil {
		return 0, err
	}

	var raw struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return 0, newError(MalformedResponse, op, err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(raw.Price), 64)
	if err != nil {
		return 0, newError(MalformedResponse, op, fmt.Errorf("parse price %q: %w", raw.Price, err))
	}
	return price, nil
}

// FetchTicker fetches the 24h ticker for one instrument and returns a fully
// populated quote.
func (p *BinanceProvider) FetchTicker(ctx context.Context, symbol string) (*domain.Quote, error) {
	_, span := p.tracer.Start(ctx, "binance.fetch-ticker")
	defer span.End()

	const op = "binance fetch ticker"
	url := fmt.Sprintf("%s/ticker/24hr?symbol=%s", p.baseURL, domain.Pair(symbol))

	body, err := p.doRequest(ctx, op, url)
	if err != nil {
		return nil, err
	}

	var raw tickerPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, newError(MalformedResponse, op, err)
	}
	price, change, err := raw.parse()
	if err != nil {
		return nil, newError(MalformedResponse, op, err)
	}

	return &domain.Quote{
		Symbol:       strings.ToUpper(symbol),
		Price:        price,
		ChangePct24h: change,
		ObservedAt:   time.Now().UTC(),
	}, nil
}

// FetchAllTickers fetches the full 24h ticker snapshot for every pair on the
// exchange. Rows with an unparseable price or change are dropped; callers
// filter to the settlement currency and sort client-side.
func (p *BinanceProvider) FetchAllTickers(ctx context.Context) ([]domain.TickerRow, error) {
	_, span := p.tracer.Start(ctx, "binance.fetch-all-tickers")
	defer span.End()

	const op = "binance fetch all tickers"
	url := p.baseURL + "/ticker/24hr"

	body, err := p.doRequest(ctx, op, url)
	if err != nil {
		return nil, err
	}

	var raw []tickerPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, newError(MalformedResponse, op, err)
	}

	rows := make([]domain.TickerRow, 0, len(raw))
	for _, t := range raw {
		price, change, err := t.parse()
		if err != nil {
			continue
		}
		rows = append(rows, domain.TickerRow{
			Pair:         t.Symbol,
			LastPrice:    price,
			ChangePct24h: change,
		})
	}
	return rows, nil
}

type tickerPayload struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
}

func (t tickerPayload) parse() (price, change float64, err error) {
	price, err = strconv.ParseFloat(strings.TrimSpace(t.LastPrice), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lastPrice %q: %w", t.LastPrice, err)
	}
	change, err = strconv.ParseFloat(strings.TrimSpace(t.PriceChangePercent), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse priceChangePercent %q: %w", t.PriceChangePercent, err)
	}
	return price, change, nil
}

func (p *BinanceProvider) doRequest(ctx context.Context, op, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, classifyTransport(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newError(Unreachable, op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, classifyTransport(op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		// Binance answers 400 for unknown symbols.
		body, _ := io.ReadAll(resp.Body)
		return nil, newError(NotFound, op, fmt.Errorf("binance API error %d: %s", resp.StatusCode, string(body)))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, newError(Unreachable, op, fmt.Errorf("binance API error %d: %s", resp.StatusCode, string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(op, err)
	}
	return body, nil
}
