package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken  string
	ChannelChatID     int64
	AdminChatID       int64
	CryptopanicAPIKey string
	RedisURL          string
	DataDir           string
	Watchlist         []string

	Top5IntervalMins   int
	NewsIntervalMins   int
	RecordIntervalMins int
	RiskIntervalMins   int
	SummaryHourUTC     int
	MorningHourUTC     int
	MoversHourUTC      int
	FearGreedHourUTC   int
	SummaryWindowHours int
}

// Defaults returns a config with every tunable at its built-in value and
// no credentials set.
func Defaults() *Config {
	return &Config{
		RedisURL:           "localhost:6379",
		DataDir:            "data",
		Watchlist:          []string{"BTC", "ETH", "BNB", "ADA", "XRP"},
		Top5IntervalMins:   30,
		NewsIntervalMins:   60,
		RecordIntervalMins: 30,
		RiskIntervalMins:   15,
		SummaryHourUTC:     21,
		MorningHourUTC:     7,
		MoversHourUTC:      10,
		FearGreedHourUTC:   18,
		SummaryWindowHours: 9,
	}
}

func Load() *Config {
	cfg := Defaults()

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, channel publishing disabled")
	}

	cfg.ChannelChatID = parseChatID("CHANNEL_CHAT_ID")
	cfg.AdminChatID = parseChatID("ADMIN_CHAT_ID")

	cfg.CryptopanicAPIKey = os.Getenv("CRYPTOPANIC_API_KEY")
	if cfg.CryptopanicAPIKey == "" {
		log.Println("Warning: CRYPTOPANIC_API_KEY not set, news reports will be empty")
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	} else {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
	}

	if v := strings.TrimSpace(os.Getenv("DATA_DIR")); v != "" {
		cfg.DataDir = v
	}

	if v := strings.TrimSpace(os.Getenv("WATCHLIST")); v != "" {
		var symbols []string
		for _, s := range strings.Split(v, ",") {
			s = strings.ToUpper(strings.TrimSpace(s))
			if s != "" {
				symbols = append(symbols, s)
			}
		}
		if len(symbols) > 0 {
			cfg.Watchlist = symbols
		}
	}

	readMins := func(key string, dst *int) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*dst = n
			}
		}
	}
	readMins("TOP5_INTERVAL_MINS", &cfg.Top5IntervalMins)
	readMins("NEWS_INTERVAL_MINS", &cfg.NewsIntervalMins)
	readMins("RECORD_INTERVAL_MINS", &cfg.RecordIntervalMins)
	readMins("RISK_INTERVAL_MINS", &cfg.RiskIntervalMins)
	readMins("SUMMARY_WINDOW_HOURS", &cfg.SummaryWindowHours)

	readHour := func(key string, dst *int) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 23 {
				*dst = n
			}
		}
	}
	readHour("SUMMARY_HOUR_UTC", &cfg.SummaryHourUTC)
	readHour("MORNING_HOUR_UTC", &cfg.MorningHourUTC)
	readHour("MOVERS_HOUR_UTC", &cfg.MoversHourUTC)
	readHour("FEARGREED_HOUR_UTC", &cfg.FearGreedHourUTC)

	return cfg
}

func parseChatID(key string) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Warning: %s=%q is not a valid chat id", key, v)
		return 0
	}
	return id
}
