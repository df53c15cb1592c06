package job

import (
	"context"
	"fmt"
	"time"

	"alpha-sparrow/internal/config"
	"alpha-sparrow/internal/recorder"
	"alpha-sparrow/internal/report"
	"alpha-sparrow/internal/service"
)

// Publisher delivers a formatted report to the channel.
type Publisher interface {
	Publish(ctx context.Context, text string) error
}

// Deps carries everything the scheduled jobs need.
type Deps struct {
	Market    *service.MarketService
	Recorder  *recorder.Recorder
	Publisher Publisher
	Config    *config.Config
}

// RegisterAll wires the full channel schedule onto the scheduler.
func RegisterAll(s *Scheduler, deps Deps) {
	cfg := deps.Config

	s.Register(&Job{
		Name:    "top5-update",
		Cadence: Every(time.Duration(cfg.Top5IntervalMins) * time.Minute),
		Run: func(ctx context.Context) error {
			quotes := deps.Market.GetQuotes(ctx)
			return deps.Publisher.Publish(ctx, report.Top5Live(quotes, deps.Market.Watchlist()))
		},
	})

	s.Register(&Job{
		Name:    "crypto-news",
		Cadence: Every(time.Duration(cfg.NewsIntervalMins) * time.Minute),
		Run: func(ctx context.Context) error {
			items, err := deps.Market.LatestNews(ctx, 3)
			if err != nil {
				return fmt.Errorf("fetch news: %w", err)
			}
			return deps.Publisher.Publish(ctx, report.News(items))
		},
	})

	s.Register(&Job{
		Name:    "record-snapshot",
		Cadence: Every(time.Duration(cfg.RecordIntervalMins) * time.Minute),
		Run: func(ctx context.Context) error {
			_, err := deps.Recorder.AppendSnapshot(ctx)
			return err
		},
	})

	s.Register(&Job{
		Name:    "risk-meter",
		Cadence: Every(time.Duration(cfg.RiskIntervalMins) * time.Minute),
		Run: func(ctx context.Context) error {
			reading, err := deps.Market.Sentiment(ctx)
			if err != nil {
				reading = nil
			}
			rows, err := deps.Market.AllTickers(ctx)
			if err != nil {
				rows = nil
			}
			message := report.RiskMeter(reading, rows)
			if err := deps.Publisher.Publish(ctx, message); err != nil {
				return err
			}
			if reading != nil {
				return deps.Recorder.RecordRisk(
					fmt.Sprintf("Risk Level: %s (Index: %d)", report.ClassifyRisk(reading.Value), reading.Value))
			}
			return nil
		},
	})

	s.Register(&Job{
		Name:    "daily-summary",
		Cadence: DailyAt(cfg.SummaryHourUTC, 0),
		Run: func(ctx context.Context) error {
			window := time.Duration(cfg.SummaryWindowHours) * time.Hour
			summaries := deps.Recorder.Summarize(window)
			return deps.Publisher.Publish(ctx, report.DailySummary(summaries, cfg.SummaryWindowHours))
		},
	})

	s.Register(&Job{
		Name:    "good-morning",
		Cadence: DailyAt(cfg.MorningHourUTC, 0),
		Run: func(ctx context.Context) error {
			message := report.GoodMorning()
			if err := deps.Publisher.Publish(ctx, message); err != nil {
				return err
			}
			return deps.Recorder.MarkMorning(message)
		},
	})

	s.Register(&Job{
		Name:    "top-movers",
		Cadence: DailyAt(cfg.MoversHourUTC, 0),
		Run: func(ctx context.Context) error {
			rows, err := deps.Market.AllTickers(ctx)
			if err != nil {
				rows = nil
			}
			return deps.Publisher.Publish(ctx, report.TopMovers(rows))
		},
	})

	s.Register(&Job{
		Name:    "fear-greed",
		Cadence: DailyAt(cfg.FearGreedHourUTC, 0),
		Run: func(ctx context.Context) error {
			reading, err := deps.Market.Sentiment(ctx)
			if err != nil {
				reading = nil
			}
			return deps.Publisher.Publish(ctx, report.SentimentBox(reading))
		},
	})
}
