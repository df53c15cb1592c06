package recorder

import (
	"context"
	"log"
	"time"

	"alpha-sparrow/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// PriceFetcher is the slice of the market data client the recorder needs.
type PriceFetcher interface {
	FetchPrice(ctx context.Context, symbol string) (float64, error)
}

// Recorder appends watchlist snapshots to the durable log and projects
// trailing-window summaries from it. Summaries are computed from the log
// alone, so a process restart mid-window changes nothing.
type Recorder struct {
	tracer    trace.Tracer
	fetcher   PriceFetcher
	store     *Store
	watchlist []string
	now       func() time.Time
}

func New(tracer trace.Tracer, fetcher PriceFetcher, store *Store, watchlist []string) *Recorder {
	return &Recorder{
		tracer:    tracer,
		fetcher:   fetcher,
		store:     store,
		watchlist: watchlist,
		now:       time.Now,
	}
}

// AppendSnapshot fetches the current price for every watched instrument and
// appends one record. A failed fetch stores the missing marker for that
// instrument; other instruments are unaffected.
func (r *Recorder) AppendSnapshot(ctx context.Context) (domain.TimeSeriesRecord, error) {
	_, span := r.tracer.Start(ctx, "recorder.append-snapshot")
	defer span.End()

	rec := domain.TimeSeriesRecord{
		Timestamp: r.now().UTC(),
		Data:      make(map[string]domain.PricePoint, len(r.watchlist)),
	}
	for _, symbol := range r.watchlist {
		price, err := r.fetcher.FetchPrice(ctx, symbol)
		if err != nil {
			log.Printf("recorder: price fetch for %s failed, storing missing: %v", symbol, err)
			rec.Data[symbol] = domain.MissingSample()
			continue
		}
		rec.Data[symbol] = domain.Sample(price)
	}

	if err := r.store.AppendRecord(rec); err != nil {
		// Best-effort persistence: the record is dropped, not retried.
		return rec, err
	}
	return rec, nil
}

// Summarize scans the log and aggregates records whose timestamp falls
// within the trailing window. It returns nil when the window holds no
// records at all; otherwise one entry per watched instrument, unavailable
// when that instrument had zero present samples.
func (r *Recorder) Summarize(window time.Duration) []domain.InstrumentSummary {
	cutoff := r.now().UTC().Add(-window)

	var recent []domain.TimeSeriesRecord
	for _, rec := range r.store.Records() {
		if !rec.Timestamp.Before(cutoff) {
			recent = append(recent, rec)
		}
	}
	if len(recent) == 0 {
		return nil
	}

	summaries := make([]domain.InstrumentSummary, 0, len(r.watchlist))
	for _, symbol := range r.watchlist {
		var prices []float64
		for _, rec := range recent {
			if p, ok := rec.Data[symbol]; ok && !p.Missing {
				prices = append(prices, p.Price)
			}
		}
		if len(prices) == 0 {
			summaries = append(summaries, domain.InstrumentSummary{Symbol: symbol})
			continue
		}

		s := domain.InstrumentSummary{
			Symbol:    symbol,
			Start:     prices[0],
			End:       prices[len(prices)-1],
			High:      prices[0],
			Low:       prices[0],
			Available: true,
		}
		for _, p := range prices {
			if p > s.High {
				s.High = p
			}
			if p < s.Low {
				s.Low = p
			}
		}
		if s.Start != 0 {
			s.ChangePct = (s.End - s.Start) / s.Start * 100
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// RecordRisk appends a published risk-meter message to its log.
func (r *Recorder) RecordRisk(message string) error {
	return r.store.AppendRisk(RiskEntry{Timestamp: r.now().UTC(), RiskMessage: message})
}

// RiskEntries returns every recorded risk-meter message, oldest first.
func (r *Recorder) RiskEntries() []RiskEntry {
	return r.store.RiskEntries()
}

// MarkMorning overwrites the last good-morning marker.
func (r *Recorder) MarkMorning(message string) error {
	return r.store.WriteMorning(MorningEntry{Message: message, Timestamp: r.now().UTC()})
}
