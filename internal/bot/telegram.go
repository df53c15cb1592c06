package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"alpha-sparrow/internal/config"
	"alpha-sparrow/internal/recorder"
	"alpha-sparrow/internal/report"
	"alpha-sparrow/internal/service"

	tele "gopkg.in/telebot.v3"
)

// Publisher delivers a formatted report somewhere users can read it.
type Publisher interface {
	Publish(ctx context.Context, text string) error
}

// TelegramPublisher sends formatted reports to the configured channel.
type TelegramPublisher struct {
	bot     *tele.Bot
	channel tele.ChatID
}

func (p *TelegramPublisher) Publish(_ context.Context, text string) error {
	_, err := p.bot.Send(p.channel, text, tele.ModeHTML)
	if err != nil {
		return fmt.Errorf("publish to channel %d: %w", p.channel, err)
	}
	return nil
}

// LogPublisher stands in for Telegram when no bot token is configured, so
// the scheduled pipeline keeps producing reports locally.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, text string) error {
	log.Printf("channel report:\n%s", text)
	return nil
}

// Start creates the Telegram bot, registers the interactive commands and
// begins long polling. Without a token it returns a LogPublisher instead.
func Start(cfg *config.Config, market *service.MarketService, rec *recorder.Recorder, portfolios *PortfolioStore) Publisher {
	if cfg.TelegramBotToken == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return LogPublisher{}
	}
	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	registerCommands(b, cfg, market, rec, portfolios)

	if cfg.AdminChatID != 0 {
		if _, err := b.Send(tele.ChatID(cfg.AdminChatID), "bot online"); err != nil {
			log.Printf("could not notify admin chat: %v", err)
		}
	}

	log.Println("Telegram bot started")
	go b.Start()

	return &TelegramPublisher{bot: b, channel: tele.ChatID(cfg.ChannelChatID)}
}

func registerCommands(b *tele.Bot, cfg *config.Config, market *service.MarketService, rec *recorder.Recorder, portfolios *PortfolioStore) {
	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/start", func(c tele.Context) error {
		return c.Send(welcomeText, tele.ModeHTML)
	})

	b.Handle("/menu", func(c tele.Context) error {
		return c.Send(menuText, tele.ModeHTML)
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /price BTC\nTracked: %s", strings.Join(market.Watchlist(), ", ")))
		}
		symbol := strings.ToUpper(args[0])
		quote, err := market.GetQuote(context.Background(), symbol)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching price for %s: %v", symbol, err))
		}
		msg := fmt.Sprintf("%s\nPrice: $%.2f\n24h Change: %.2f%%", symbol, quote.Price, quote.ChangePct24h)
		return c.Send(msg)
	})

	b.Handle("/signal", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /signal BTC\nTracked: %s", strings.Join(market.Watchlist(), ", ")))
		}
		symbol := strings.ToUpper(args[0])
		quote, err := market.GetQuote(context.Background(), symbol)
		if err != nil {
			quote = nil
		}
		return c.Send(report.Signal(symbol, quote), tele.ModeHTML)
	})

	b.Handle("/trends", func(c tele.Context) error {
		quotes := market.GetQuotes(context.Background())
		return c.Send(report.Trends(quotes, market.Watchlist()), tele.ModeHTML)
	})

	b.Handle("/movers", func(c tele.Context) error {
		rows, err := market.AllTickers(context.Background())
		if err != nil {
			rows = nil
		}
		return c.Send(report.TopMovers(rows), tele.ModeHTML)
	})

	b.Handle("/news", func(c tele.Context) error {
		items, err := market.LatestNews(context.Background(), 3)
		if err != nil {
			items = nil
		}
		return c.Send(report.News(items), tele.ModeHTML)
	})

	b.Handle("/summary", func(c tele.Context) error {
		window := time.Duration(cfg.SummaryWindowHours) * time.Hour
		summaries := rec.Summarize(window)
		return c.Send(report.DailySummary(summaries, cfg.SummaryWindowHours), tele.ModeHTML)
	})

	b.Handle("/portfolio", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(portfolios.Get(context.Background(), c.Chat().ID), tele.ModeHTML)
		}
		text := strings.Join(args, " ")
		if err := portfolios.Set(context.Background(), c.Chat().ID, text); err != nil {
			return c.Send(fmt.Sprintf("Could not save portfolio: %v", err))
		}
		return c.Send("Portfolio updated.")
	})

	b.Handle("/basics", func(c tele.Context) error {
		return c.Send(basicsText, tele.ModeHTML)
	})

	b.Handle("/strategies", func(c tele.Context) error {
		return c.Send(strategiesText, tele.ModeHTML)
	})

	b.Handle("/scams", func(c tele.Context) error {
		return c.Send(scamsText, tele.ModeHTML)
	})

	b.Handle("/about", func(c tele.Context) error {
		return c.Send(aboutText, tele.ModeHTML)
	})
}
