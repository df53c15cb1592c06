package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alpha-sparrow/internal/bot"
	"alpha-sparrow/internal/cache"
	"alpha-sparrow/internal/config"
	"alpha-sparrow/internal/handler"
	"alpha-sparrow/internal/job"
	"alpha-sparrow/internal/provider"
	"alpha-sparrow/internal/recorder"
	"alpha-sparrow/internal/service"
	"alpha-sparrow/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "alpha-sparrow/docs"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initRedisFunc  = cache.InitRedis
	initTracerFunc = tracing.InitTracer

	newBinanceProviderFunc = func(tracer trace.Tracer) *provider.BinanceProvider {
		return provider.NewBinanceProvider(tracer)
	}
	newFearGreedProviderFunc = func(tracer trace.Tracer) *provider.FearGreedProvider {
		return provider.NewFearGreedProvider(tracer)
	}
	newCryptopanicProviderFunc = func(tracer trace.Tracer, apiKey string) *provider.CryptopanicProvider {
		return provider.NewCryptopanicProvider(tracer, apiKey)
	}

	startBotFunc           = bot.Start
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// A nil *redis.Client assigned straight into an interface parameter would
// make the interface non-nil, defeating the cache-disabled guards downstream.
// These helpers keep an absent Redis an untyped nil all the way through.
func quoteCacheClient(client *redis.Client) service.RedisClient {
	if client == nil {
		return nil
	}
	return client
}

func portfolioCacheClient(client *redis.Client) bot.RedisClient {
	if client == nil {
		return nil
	}
	return client
}

// @title           Alpha Sparrow API
// @version         1.0
// @description     Crypto market reports, scheduled channel updates and trailing summaries.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Providers and market service
	binance := newBinanceProviderFunc(tracer)
	fearGreed := newFearGreedProviderFunc(tracer)
	cryptopanic := newCryptopanicProviderFunc(tracer, cfg.CryptopanicAPIKey)
	market := service.NewMarketService(tracer, binance, fearGreed, cryptopanic, quoteCacheClient(cache.Client), cfg.Watchlist)

	// Snapshot recorder over the flat-file log
	store := recorder.NewStore(cfg.DataDir)
	rec := recorder.New(tracer, binance, store, cfg.Watchlist)

	// Telegram bot and channel publisher
	portfolios := bot.NewPortfolioStore(portfolioCacheClient(cache.Client))
	publisher := startBotFunc(cfg, market, rec, portfolios)

	// Scheduled channel jobs
	scheduler := job.NewScheduler(tracer)
	job.RegisterAll(scheduler, job.Deps{
		Market:    market,
		Recorder:  rec,
		Publisher: publisher,
		Config:    cfg,
	})
	scheduler.Start()

	// HTTP API
	h := handler.New(tracer, market, rec, scheduler)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("alpha-sparrow"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	scheduler.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
