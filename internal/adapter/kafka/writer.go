// Package kafka publishes recent searches to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-search/internal/config"
	"github.com/couchcryptid/weather-search/internal/domain"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// newEventID is swapped in tests.
var newEventID = uuid.NewString

// Writer produces one message per recent search.
// It implements recent.Sink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured recent searches topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaRecentTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Record publishes rs keyed by city id, so repeat searches for a city land on
// the same partition.
func (w *Writer) Record(ctx context.Context, rs domain.RecentSearch) error {
	msg, err := serializeToMessage(rs, newEventID())
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish recent search: %w", err)
	}
	w.logger.Debug("recent search published", "city_id", rs.ID, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func serializeToMessage(rs domain.RecentSearch, eventID string) (kafkago.Message, error) {
	data, err := json.Marshal(rs)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize recent search: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rs.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "searched_at", Value: []byte(rs.SearchedAt.Format(time.RFC3339))},
		},
	}, nil
}
