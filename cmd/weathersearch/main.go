package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-search/internal/adapter/console"
	httpadapter "github.com/couchcryptid/weather-search/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-search/internal/adapter/kafka"
	"github.com/couchcryptid/weather-search/internal/adapter/openweather"
	redisadapter "github.com/couchcryptid/weather-search/internal/adapter/redis"
	"github.com/couchcryptid/weather-search/internal/adapter/transport"
	"github.com/couchcryptid/weather-search/internal/config"
	"github.com/couchcryptid/weather-search/internal/domain"
	"github.com/couchcryptid/weather-search/internal/observability"
	"github.com/couchcryptid/weather-search/internal/recent"
	"github.com/couchcryptid/weather-search/internal/search"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := transport.NewClient(cfg.WeatherTimeout, metrics, logger)
	endpoint := domain.WeatherEndpoint{BaseURL: cfg.WeatherBaseURL, APIKey: cfg.WeatherAPIKey}
	gateway := openweather.NewGateway(client, endpoint, cfg.WeatherIconBaseURL, logger)

	// Recent searches: memory always, Redis and Kafka when configured.
	memory := recent.NewMemoryStore(cfg.RecentSearchesLimit)
	sinks := []recent.Sink{memory}
	var lister recent.Lister = memory
	var closers []io.Closer

	if cfg.RedisURL != "" {
		rdb, err := redisadapter.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		closers = append(closers, rdb)
		store := redisadapter.NewStore(rdb, cfg.RedisRecentKey, cfg.RecentSearchesLimit, logger)
		sinks = append(sinks, store)
		lister = store
		logger.Info("redis recent searches enabled", "key", cfg.RedisRecentKey)
	}
	if len(cfg.KafkaBrokers) > 0 {
		writer := kafkaadapter.NewWriter(cfg, logger)
		closers = append(closers, writer)
		sinks = append(sinks, writer)
		logger.Info("kafka recent searches enabled", "topic", cfg.KafkaRecentTopic)
	}

	recorder := recent.NewRecorder(logger, metrics, sinks...)
	renderer := console.NewRenderer(os.Stdout, logger)

	controller := search.New(gateway, logger, metrics,
		search.WithDebounce(cfg.SearchDebounce),
		search.WithQueryTransformer(search.CountrySuffix(cfg.WeatherCountryCode)),
		search.WithObservers(renderer, recorder),
	)

	srv := httpadapter.NewServer(cfg.HTTPAddr, controller, lister, gateway, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := recorder.Run(ctx); err != nil {
			logger.Error("recent search recorder error", "error", err)
		}
	}()

	go func() {
		if err := controller.Run(ctx); err != nil {
			logger.Error("search controller error", "error", err)
		}
	}()

	// Each stdin line replaces the current query.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			controller.SubmitQuery(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			logger.Warn("stdin read error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Error("close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
