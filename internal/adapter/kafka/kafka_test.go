package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/weather-search/internal/config"
	"github.com/couchcryptid/weather-search/internal/domain"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	searchedAt := time.Date(2026, 7, 14, 9, 30, 0, 0, time.UTC)
	rs := domain.RecentSearch{ID: "2147714", CityName: "Sydney", SearchedAt: searchedAt}

	msg, err := serializeToMessage(rs, "evt-1")
	require.NoError(t, err)

	assert.Equal(t, []byte("2147714"), msg.Key)
	assert.JSONEq(t, `{"id":"2147714","city_name":"Sydney","searched_at":"2026-07-14T09:30:00Z"}`, string(msg.Value))
	assert.Equal(t, []kafkago.Header{
		{Key: "event_id", Value: []byte("evt-1")},
		{Key: "searched_at", Value: []byte(searchedAt.Format(time.RFC3339))},
	}, msg.Headers)
}

func TestNewEventID_IsUUID(t *testing.T) {
	_, err := uuid.Parse(newEventID())
	assert.NoError(t, err)
}

func TestNewWriter_UsesConfig(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"broker-1:9092", "broker-2:9092"}, KafkaRecentTopic: "recent-searches"}

	w := NewWriter(cfg, nil)

	assert.Equal(t, "recent-searches", w.writer.Topic)
	assert.Equal(t, "kafka", w.Name())
	assert.IsType(t, &kafkago.Hash{}, w.writer.Balancer)
	require.NoError(t, w.Close())
}
