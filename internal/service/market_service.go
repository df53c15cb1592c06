package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"alpha-sparrow/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const quoteCacheTTL = 90 * time.Second

// TickerProvider is the slice of the market data client the service needs.
type TickerProvider interface {
	FetchTicker(ctx context.Context, symbol string) (*domain.Quote, error)
	FetchAllTickers(ctx context.Context) ([]domain.TickerRow, error)
}

type SentimentProvider interface {
	FetchLatest(ctx context.Context) (*domain.SentimentReading, error)
}

type NewsProvider interface {
	FetchNews(ctx context.Context, limit int) ([]domain.NewsItem, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// MarketService orchestrates market data fetching and short-lived caching
// for the channel jobs, the bot commands, and the HTTP API.
type MarketService struct {
	tracer    trace.Tracer
	tickers   TickerProvider
	sentiment SentimentProvider
	news      NewsProvider
	redis     RedisClient
	watchlist []string
}

func NewMarketService(
	tracer trace.Tracer,
	tickers TickerProvider,
	sentiment SentimentProvider,
	news NewsProvider,
	redisClient RedisClient,
	watchlist []string,
) *MarketService {
	return &MarketService{
		tracer:    tracer,
		tickers:   tickers,
		sentiment: sentiment,
		news:      news,
		redis:     redisClient,
		watchlist: watchlist,
	}
}

// Watchlist returns the tracked instruments, fixed at startup.
func (s *MarketService) Watchlist() []string {
	return s.watchlist
}

// GetQuote returns a fresh or recently cached quote for one instrument.
func (s *MarketService) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	_, span := s.tracer.Start(ctx, "market-service.get-quote")
	defer span.End()

	if s.redis != nil {
		cached, err := s.getQuoteCache(ctx, symbol)
		if err != nil {
			log.Printf("redis cache read error: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	quote, err := s.tickers.FetchTicker(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("get quote for %s: %w", symbol, err)
	}
	if s.redis != nil {
		if err := s.setQuoteCache(ctx, quote); err != nil {
			log.Printf("redis cache write error for %s: %v", symbol, err)
		}
	}
	return quote, nil
}

// GetQuotes returns quotes for the whole watchlist. A failed instrument is
// simply absent from the map; formatters render its placeholder row. The
// per-instrument failures never propagate.
func (s *MarketService) GetQuotes(ctx context.Context) map[string]*domain.Quote {
	_, span := s.tracer.Start(ctx, "market-service.get-quotes")
	defer span.End()

	quotes := make(map[string]*domain.Quote, len(s.watchlist))
	for _, symbol := range s.watchlist {
		quote, err := s.GetQuote(ctx, symbol)
		if err != nil {
			log.Printf("quote for %s unavailable: %v", symbol, err)
			continue
		}
		quotes[symbol] = quote
	}
	return quotes
}

// AllTickers returns the full exchange 24h snapshot, uncached.
func (s *MarketService) AllTickers(ctx context.Context) ([]domain.TickerRow, error) {
	_, span := s.tracer.Start(ctx, "market-service.all-tickers")
	defer span.End()

	return s.tickers.FetchAllTickers(ctx)
}

// Sentiment returns the latest fear & greed reading.
func (s *MarketService) Sentiment(ctx context.Context) (*domain.SentimentReading, error) {
	_, span := s.tracer.Start(ctx, "market-service.sentiment")
	defer span.End()

	return s.sentiment.FetchLatest(ctx)
}

// LatestNews returns up to limit recent news items.
func (s *MarketService) LatestNews(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	_, span := s.tracer.Start(ctx, "market-service.latest-news")
	defer span.End()

	return s.news.FetchNews(ctx, limit)
}

func (s *MarketService) setQuoteCache(ctx context.Context, quote *domain.Quote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, "price:"+quote.Symbol, data, quoteCacheTTL).Err()
}

func (s *MarketService) getQuoteCache(ctx context.Context, symbol string) (*domain.Quote, error) {
	data, err := s.redis.Get(ctx, "price:"+symbol).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var quote domain.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
