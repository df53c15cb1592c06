package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"alpha-sparrow/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const cryptopanicBaseURL = "https://cryptopanic.com/api/v1"

// CryptopanicProvider fetches the public crypto news feed.
type CryptopanicProvider struct {
	client    *http.Client
	baseURL   string
	authToken string
	tracer    trace.Tracer
}

func NewCryptopanicProvider(tracer trace.Tracer, authToken string) *CryptopanicProvider {
	return &CryptopanicProvider{
		client:    &http.Client{Timeout: fetchTimeout},
		baseURL:   cryptopanicBaseURL,
		authToken: authToken,
		tracer:    tracer,
	}
}

// FetchNews returns up to limit recent news items, newest first as served
// by the feed.
func (p *CryptopanicProvider) FetchNews(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	_, span := p.tracer.Start(ctx, "cryptopanic.fetch-news")
	defer span.End()

	const op = "cryptopanic fetch news"
	if limit <= 0 {
		limit = 3
	}

	endpoint := fmt.Sprintf("%s/posts/?auth_token=%s&public=true", p.baseURL, url.QueryEscape(p.authToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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
		return nil, newError(Unreachable, op, fmt.Errorf("cryptopanic API error %d: %s", resp.StatusCode, string(body)))
	}

	var payload struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			PublishedAt string `json:"published_at"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, newError(MalformedResponse, op, err)
	}

	items := make([]domain.NewsItem, 0, limit)
	for _, row := range payload.Results {
		if len(items) >= limit {
			break
		}
		title := strings.TrimSpace(row.Title)
		if title == "" {
			continue
		}
		item := domain.NewsItem{Title: title, URL: strings.TrimSpace(row.URL)}
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(row.PublishedAt)); err == nil {
			item.PublishedAt = t.UTC()
		}
		items = append(items, item)
	}
	return items, nil
}
