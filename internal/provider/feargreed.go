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

const fearGreedBaseURL = "https://api.alternative.me"

// FearGreedProvider fetches the crypto fear & greed index from alternative.me.
type FearGreedProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewFearGreedProvider(tracer trace.Tracer) *FearGreedProvider {
	return &FearGreedProvider{
		client:  &http.Client{Timeout: fetchTimeout},
		baseURL: fearGreedBaseURL,
		tracer:  tracer,
	}
}

// FetchLatest returns the most recent sentiment reading.
func (p *FearGreedProvider) FetchLatest(ctx context.Context) (*domain.SentimentReading, error) {
	_, span := p.tracer.Start(ctx, "feargreed.fetch-latest")
	defer span.End()

	const op = "fear & greed fetch"
	url := strings.TrimRight(p.baseURL, "/") + "/fng/?limit=1"

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

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, newError(Unreachable, op, fmt.Errorf("fear & greed API error %d: %s", resp.StatusCode, string(body)))
	}

	var payload struct {
		Data []struct {
			Value          string `json:"value"`
			Classification string `json:"value_classification"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, newError(MalformedResponse, op, err)
	}
	if len(payload.Data) == 0 {
		return nil, newError(MalformedResponse, op, fmt.Errorf("response has no rows"))
	}

	row := payload.Data[0]
	value, err := strconv.Atoi(strings.TrimSpace(row.Value))
	if err != nil {
		return nil, newError(MalformedResponse, op, fmt.Errorf("parse value %q: %w", row.Value, err))
	}

	return &domain.SentimentReading{
		Value:          value,
		Classification: row.Classification,
		ObservedAt:     time.Now().UTC(),
	}, nil
}
