//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/weather-search/internal/adapter/kafka"
	"github.com/couchcryptid/weather-search/internal/adapter/openweather"
	"github.com/couchcryptid/weather-search/internal/adapter/redis"
	"github.com/couchcryptid/weather-search/internal/adapter/transport"
	"github.com/couchcryptid/weather-search/internal/config"
	"github.com/couchcryptid/weather-search/internal/domain"
	"github.com/couchcryptid/weather-search/internal/observability"
	"github.com/couchcryptid/weather-search/internal/recent"
	"github.com/couchcryptid/weather-search/internal/search"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flowTopic = "test-flow-recent-searches"

// TestSearchFlow drives a query from SubmitQuery through the weather API to
// both recent search sinks.
func TestSearchFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, flowTopic)
	rdb, err := redis.NewClient(ctx, startRedis(ctx, t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Sydney" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id": 2147714, "name": "Sydney", "weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}], "main": {"temp": 16.44, "feels_like": 15.47, "temp_min": 15.22, "temp_max": 17.43, "humidity": 51}, "wind": {"speed": 5.14}}`))
	}))
	t.Cleanup(api.Close)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaRecentTopic: flowTopic}
	metrics := observability.NewMetricsForTesting()
	logger := discardLogger()

	client := transport.NewClient(5*time.Second, metrics, logger)
	gateway := openweather.NewGateway(client, domain.WeatherEndpoint{BaseURL: api.URL, APIKey: "k"}, "https://openweathermap.org/img/w", logger)

	store := redis.NewStore(rdb, "flow:recent", 10, logger)
	writer := kafka.NewWriter(cfg, logger)
	t.Cleanup(func() { _ = writer.Close() })
	recorder := recent.NewRecorder(logger, metrics, store, writer)

	ctl := search.New(gateway, logger, metrics,
		search.WithDebounce(50*time.Millisecond),
		search.WithObservers(recorder))

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() { _ = recorder.Run(runCtx) }()
	go func() { _ = ctl.Run(runCtx) }()

	ctl.SubmitQuery("Atlantis")
	ctl.SubmitQuery("Sydney")

	require.Eventually(t, func() bool {
		list, err := store.List(ctx, 0)
		return err == nil && len(list) == 1
	}, 30*time.Second, 50*time.Millisecond)

	list, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Sydney", list[0].CityName)
	assert.Equal(t, "2147714", list[0].ID)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       flowTopic,
		GroupID:     fmt.Sprintf("flow-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	got := readPublished(ctx, t, consumer)
	assert.Equal(t, "2147714", got.Key)
	assert.Equal(t, "Sydney", got.Search.CityName)

	w, ok := ctl.State().Weather()
	require.True(t, ok)
	assert.Equal(t, "Clear", *w.Title)
}
