// Package recent remembers the cities a user successfully looked up.
package recent

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/weather-search/internal/domain"
	"github.com/couchcryptid/weather-search/internal/observability"
	"github.com/couchcryptid/weather-search/internal/search"
)

const defaultQueueSize = 64

// Sink persists recent searches somewhere.
type Sink interface {
	Name() string
	Record(ctx context.Context, rs domain.RecentSearch) error
}

// Lister returns stored searches, most recent first.
type Lister interface {
	List(ctx context.Context, limit int) ([]domain.RecentSearch, error)
}

// Recorder observes search states and forwards every successful lookup to its
// sinks. OnStateChange never blocks: when the queue is full the search is
// dropped.
type Recorder struct {
	sinks   []Sink
	queue   chan domain.RecentSearch
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewRecorder creates a Recorder writing to the given sinks.
func NewRecorder(logger *slog.Logger, metrics *observability.Metrics, sinks ...Sink) *Recorder {
	return &Recorder{
		sinks:   sinks,
		queue:   make(chan domain.RecentSearch, defaultQueueSize),
		logger:  logger,
		metrics: metrics,
	}
}

var _ search.Observer = (*Recorder)(nil)

func (r *Recorder) OnStateChange(s search.State) {
	w, ok := s.Weather()
	if !ok {
		return
	}

	rs := domain.NewRecentSearch(w)
	select {
	case r.queue <- rs:
	default:
		r.logger.Warn("recent search queue full, dropping", "city_id", rs.ID)
		for _, sink := range r.sinks {
			r.metrics.RecentSearchWrites.WithLabelValues(sink.Name(), "dropped").Inc()
		}
	}
}

// Run writes queued searches until ctx is cancelled.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case rs := <-r.queue:
			r.write(ctx, rs)
		}
	}
}

func (r *Recorder) write(ctx context.Context, rs domain.RecentSearch) {
	for _, sink := range r.sinks {
		if err := sink.Record(ctx, rs); err != nil {
			r.logger.Error("record recent search failed", "sink", sink.Name(), "city_id", rs.ID, "error", err)
			r.metrics.RecentSearchWrites.WithLabelValues(sink.Name(), "error").Inc()
			continue
		}
		r.metrics.RecentSearchWrites.WithLabelValues(sink.Name(), "success").Inc()
	}
}
