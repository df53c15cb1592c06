package recorder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"alpha-sparrow/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type stubFetcher struct {
	prices map[string]float64
	calls  int
}

func (f *stubFetcher) FetchPrice(ctx context.Context, symbol string) (float64, error) {
	f.calls++
	price, ok := f.prices[symbol]
	if !ok {
		return 0, fmt.Errorf("no price for %s", symbol)
	}
	return price, nil
}

func newTestRecorder(t *testing.T, fetcher *stubFetcher, watchlist []string) *Recorder {
	t.Helper()
	return New(testTracer, fetcher, NewStore(t.TempDir()), watchlist)
}

func TestAppendSnapshotThenSummarize(t *testing.T) {
	fetcher := &stubFetcher{prices: map[string]float64{"BTC": 97000, "ETH": 3500}}
	rec := newTestRecorder(t, fetcher, []string{"BTC", "ETH"})

	if _, err := rec.AppendSnapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summaries := rec.Summarize(time.Hour)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	btc := summaries[0]
	if !btc.Available || btc.Start != 97000 || btc.End != 97000 || btc.High != 97000 || btc.Low != 97000 {
		t.Fatalf("fresh append must be both start and end: %+v", btc)
	}
	if btc.ChangePct != 0 {
		t.Fatalf("single sample has zero change, got %v", btc.ChangePct)
	}
}

func TestAppendSnapshotStoresMissingSentinel(t *testing.T) {
	fetcher := &stubFetcher{prices: map[string]float64{"BTC": 97000}}
	rec := newTestRecorder(t, fetcher, []string{"BTC", "ETH"})

	snapshot, err := rec.AppendSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snapshot.Data["ETH"].Missing {
		t.Fatalf("failed fetch must store the missing marker: %+v", snapshot.Data)
	}
	if snapshot.Data["BTC"].Missing {
		t.Fatalf("other instruments must be unaffected: %+v", snapshot.Data)
	}

	summaries := rec.Summarize(time.Hour)
	if summaries[0].Symbol != "BTC" || !summaries[0].Available {
		t.Fatalf("BTC should be available: %+v", summaries[0])
	}
	if summaries[1].Symbol != "ETH" || summaries[1].Available {
		t.Fatalf("ETH should be unavailable: %+v", summaries[1])
	}
}

func TestSummarizeAggregates(t *testing.T) {
	store := NewStore(t.TempDir())
	rec := New(testTracer, &stubFetcher{}, store, []string{"BTC"})

	now := time.Now().UTC()
	prices := []float64{100, 140, 90, 120}
	for i, p := range prices {
		err := store.AppendRecord(domain.TimeSeriesRecord{
			Timestamp: now.Add(time.Duration(i-4) * time.Minute),
			Data:      map[string]domain.PricePoint{"BTC": domain.Sample(p)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	summaries := rec.Summarize(time.Hour)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	s := summaries[0]
	if s.Start != 100 || s.End != 120 || s.High != 140 || s.Low != 90 {
		t.Fatalf("unexpected aggregate: %+v", s)
	}
	if s.ChangePct != 20 {
		t.Fatalf("expected 20%% change, got %v", s.ChangePct)
	}
}

func TestSummarizeWindowFiltering(t *testing.T) {
	store := NewStore(t.TempDir())
	rec := New(testTracer, &stubFetcher{}, store, []string{"BTC"})

	now := time.Now().UTC()
	old := domain.TimeSeriesRecord{
		Timestamp: now.Add(-10 * time.Hour),
		Data:      map[string]domain.PricePoint{"BTC": domain.Sample(50)},
	}
	fresh := domain.TimeSeriesRecord{
		Timestamp: now.Add(-time.Minute),
		Data:      map[string]domain.PricePoint{"BTC": domain.Sample(100)},
	}
	_ = store.AppendRecord(old)
	_ = store.AppendRecord(fresh)

	summaries := rec.Summarize(9 * time.Hour)
	if summaries[0].Start != 100 {
		t.Fatalf("out-of-window record must be ignored: %+v", summaries[0])
	}

	if got := rec.Summarize(time.Second); got != nil {
		t.Fatalf("empty window must return nil, got %+v", got)
	}
}

func TestRecordsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	_ = store.AppendRecord(domain.TimeSeriesRecord{
		Timestamp: time.Now().UTC(),
		Data:      map[string]domain.PricePoint{"BTC": domain.Sample(1)},
	})

	reopened := NewStore(dir)
	if len(reopened.Records()) != 1 {
		t.Fatal("log must be durable across store instances")
	}
}

func TestCorruptLogReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, priceLogFile), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := NewStore(dir)
	if got := store.Records(); got != nil {
		t.Fatalf("corrupt log must read as empty, got %+v", got)
	}

	// And appending afterwards starts a fresh, valid log.
	if err := store.AppendRecord(domain.TimeSeriesRecord{Timestamp: time.Now().UTC()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.Records()) != 1 {
		t.Fatal("append after corruption should produce one record")
	}
}

func TestLogFileLayout(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	rec := New(testTracer, &stubFetcher{prices: map[string]float64{"BTC": 97000.5}}, store, []string{"BTC", "ETH"})

	if _, err := rec.AppendSnapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, priceLogFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"BTC": 97000.5`) {
		t.Fatalf("expected numeric sample on disk: %s", text)
	}
	if !strings.Contains(text, `"ETH": "N/A"`) {
		t.Fatalf("expected the N/A marker on disk: %s", text)
	}
}

func TestRiskLogAndMorningMarker(t *testing.T) {
	store := NewStore(t.TempDir())
	rec := New(testTracer, &stubFetcher{}, store, nil)

	if err := rec.RecordRisk("risk one"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rec.RecordRisk("risk two"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := store.RiskEntries()
	if len(entries) != 2 || entries[1].RiskMessage != "risk two" {
		t.Fatalf("unexpected risk log: %+v", entries)
	}

	if err := rec.MarkMorning("gm 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rec.MarkMorning("gm 2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, ok := store.LastMorning()
	if !ok || entry.Message != "gm 2" {
		t.Fatalf("morning marker must be overwritten, got %+v ok=%v", entry, ok)
	}
}
