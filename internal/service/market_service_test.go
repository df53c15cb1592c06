package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"alpha-sparrow/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

type stubTickers struct {
	quote    *domain.Quote
	rows     []domain.TickerRow
	err      error
	calls    int
	allCalls int
}

func (s *stubTickers) FetchTicker(_ context.Context, symbol string) (*domain.Quote, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	q := *s.quote
	q.Symbol = symbol
	return &q, nil
}

func (s *stubTickers) FetchAllTickers(_ context.Context) ([]domain.TickerRow, error) {
	s.allCalls++
	return s.rows, s.err
}

type stubSentiment struct {
	reading *domain.SentimentReading
	err     error
}

func (s *stubSentiment) FetchLatest(_ context.Context) (*domain.SentimentReading, error) {
	return s.reading, s.err
}

type stubNews struct {
	items []domain.NewsItem
	err   error
}

func (s *stubNews) FetchNews(_ context.Context, _ int) ([]domain.NewsItem, error) {
	return s.items, s.err
}

type fakeRedis struct {
	store map[string][]byte
	sets  int
	gets  int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: map[string][]byte{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.sets++
	f.store[key] = value.([]byte)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.gets++
	data, ok := f.store[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(data), nil)
}

var testTracer = otel.Tracer("market-service-test")

func TestGetQuoteCachesResult(t *testing.T) {
	tickers := &stubTickers{quote: &domain.Quote{Price: 97000.5, ChangePct24h: 1.2}}
	cache := newFakeRedis()
	svc := NewMarketService(testTracer, tickers, nil, nil, cache, []string{"BTC"})

	first, err := svc.GetQuote(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Price != 97000.5 {
		t.Errorf("expected price 97000.5, got %v", first.Price)
	}

	second, err := svc.GetQuote(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Price != first.Price {
		t.Errorf("cached quote mismatch: %v vs %v", second.Price, first.Price)
	}
	if tickers.calls != 1 {
		t.Errorf("expected a single upstream fetch, got %d", tickers.calls)
	}
	if cache.sets != 1 {
		t.Errorf("expected one cache write, got %d", cache.sets)
	}
}

func TestGetQuoteWithoutRedis(t *testing.T) {
	tickers := &stubTickers{quote: &domain.Quote{Price: 42}}
	svc := NewMarketService(testTracer, tickers, nil, nil, nil, []string{"BTC"})

	quote, err := svc.GetQuote(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Price != 42 {
		t.Errorf("expected price 42, got %v", quote.Price)
	}
}

func TestGetQuoteUpstreamError(t *testing.T) {
	tickers := &stubTickers{err: errors.New("exchange down")}
	svc := NewMarketService(testTracer, tickers, nil, nil, newFakeRedis(), []string{"BTC"})

	if _, err := svc.GetQuote(context.Background(), "BTC"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestGetQuotesDegradesPerInstrument(t *testing.T) {
	tickers := &stubTickers{err: errors.New("exchange down")}
	svc := NewMarketService(testTracer, tickers, nil, nil, nil, []string{"BTC", "ETH"})

	quotes := svc.GetQuotes(context.Background())
	if len(quotes) != 0 {
		t.Fatalf("expected no quotes, got %d", len(quotes))
	}

	tickers.err = nil
	tickers.quote = &domain.Quote{Price: 10}
	quotes = svc.GetQuotes(context.Background())
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes["ETH"].Symbol != "ETH" {
		t.Errorf("expected ETH quote, got %+v", quotes["ETH"])
	}
}

func TestGetQuoteIgnoresCorruptCacheEntry(t *testing.T) {
	tickers := &stubTickers{quote: &domain.Quote{Price: 55}}
	cache := newFakeRedis()
	cache.store["price:BTC"] = []byte("{not json")
	svc := NewMarketService(testTracer, tickers, nil, nil, cache, []string{"BTC"})

	quote, err := svc.GetQuote(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Price != 55 {
		t.Errorf("expected fresh quote, got %v", quote.Price)
	}
	if tickers.calls != 1 {
		t.Errorf("expected upstream fetch, got %d calls", tickers.calls)
	}
}

func TestCachedQuoteRoundTrip(t *testing.T) {
	tickers := &stubTickers{quote: &domain.Quote{Price: 1.5, ChangePct24h: -3.25}}
	cache := newFakeRedis()
	svc := NewMarketService(testTracer, tickers, nil, nil, cache, []string{"ADA"})

	if _, err := svc.GetQuote(context.Background(), "ADA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var stored domain.Quote
	if err := json.Unmarshal(cache.store["price:ADA"], &stored); err != nil {
		t.Fatalf("cached payload is not valid JSON: %v", err)
	}
	if stored.ChangePct24h != -3.25 {
		t.Errorf("expected change -3.25, got %v", stored.ChangePct24h)
	}
}

func TestSentimentAndNewsPassThrough(t *testing.T) {
	sentiment := &stubSentiment{reading: &domain.SentimentReading{Value: 60, Classification: "Greed"}}
	news := &stubNews{items: []domain.NewsItem{{Title: "headline", URL: "https://example.com/a"}}}
	svc := NewMarketService(testTracer, &stubTickers{}, sentiment, news, nil, nil)

	reading, err := svc.Sentiment(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Value != 60 {
		t.Errorf("expected value 60, got %d", reading.Value)
	}

	items, err := svc.LatestNews(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "headline" {
		t.Errorf("unexpected news items: %+v", items)
	}
}
