package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestBinance(rt roundTripFunc) *BinanceProvider {
	p := NewBinanceProvider(trace.NewNoopTracerProvider().Tracer("test"))
	p.baseURL = "https://example.com"
	p.client = &http.Client{Transport: rt}
	return p
}

func TestBinanceFetchPrice(t *testing.T) {
	p := newTestBinance(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/ticker/price" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if req.URL.Query().Get("symbol") != "BTCUSDT" {
			t.Fatalf("unexpected symbol: %s", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `{"symbol":"BTCUSDT","price":"97123.45000000"}`), nil
	})

	price, err := p.FetchPrice(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 97123.45 {
		t.Fatalf("unexpected price: %v", price)
	}
}

func TestBinanceFetchPriceNotFound(t *testing.T) {
	p := newTestBinance(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"code":-1121,"msg":"Invalid symbol."}`), nil
	})

	_, err := p.FetchPrice(context.Background(), "NOPE")
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, ok := KindOf(err); !ok || kind != NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestBinanceFetchPriceMalformed(t *testing.T) {
	p := newTestBinance(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"symbol":"BTCUSDT","price":"not-a-number"}`), nil
	})

	_, err := p.FetchPrice(context.Background(), "BTC")
	if kind, ok := KindOf(err); !ok || kind != MalformedResponse {
		t.Fatalf("expected MalformedResponse, got %v", err)
	}
}

func TestBinanceFetchPriceUnreachable(t *testing.T) {
	p := newTestBinance(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := p.FetchPrice(context.Background(), "BTC")
	if kind, ok := KindOf(err); !ok || kind != Unreachable {
		t.Fatalf("expected Unreachable, got %v", err)
	}
}

func TestBinanceFetchPriceTimeout(t *testing.T) {
	p := newTestBinance(func(req *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})

	_, err := p.FetchPrice(context.Background(), "BTC")
	if kind, ok := KindOf(err); !ok || kind != Timeout {
		t.Fatalf("expected Timeout, got %v", err)
	}
}

func TestBinanceFetchTicker(t *testing.T) {
	p := newTestBinance(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/ticker/24hr" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		body := `{"symbol":"ETHUSDT","lastPrice":"3500.10","priceChangePercent":"-2.75"}`
		return jsonResponse(http.StatusOK, body), nil
	})

	quote, err := p.FetchTicker(context.Background(), "eth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Symbol != "ETH" || quote.Price != 3500.10 || quote.ChangePct24h != -2.75 {
		t.Fatalf("unexpected quote: %+v", quote)
	}
	if quote.ObservedAt.IsZero() {
		t.Fatal("expected observed_at to be set")
	}
}

func TestBinanceFetchAllTickersSkipsBadRows(t *testing.T) {
	p := newTestBinance(func(req *http.Request) (*http.Response, error) {
		if req.URL.RawQuery != "" {
			t.Fatalf("batch fetch must not pass a symbol: %s", req.URL.RawQuery)
		}
		body := `[
			{"symbol":"BTCUSDT","lastPrice":"97000","priceChangePercent":"3.5"},
			{"symbol":"BADUSDT","lastPrice":"","priceChangePercent":"1.0"},
			{"symbol":"ETHBTC","lastPrice":"0.05","priceChangePercent":"-1.2"}
		]`
		return jsonResponse(http.StatusOK, body), nil
	})

	rows, err := p.FetchAllTickers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].Pair != "BTCUSDT" || rows[1].Pair != "ETHBTC" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
