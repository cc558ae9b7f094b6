// Package search turns a stream of raw query edits into weather lookups and
// publishes the resulting states to observers.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-search/internal/domain"
	"github.com/couchcryptid/weather-search/internal/observability"
	"github.com/jonboulle/clockwork"
)

// DefaultDebounce is how long the query must stay unchanged before it is looked up.
const DefaultDebounce = 500 * time.Millisecond

// Fetcher looks up the current weather for a query.
type Fetcher interface {
	FetchWeather(ctx context.Context, query string) (domain.CityWeather, error)
}

// Observer receives every state transition, in order, from the controller loop.
// Implementations must not block for long and must not call back into the
// controller's Run loop.
type Observer interface {
	OnStateChange(s State)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(s State)

func (f ObserverFunc) OnStateChange(s State) { f(s) }

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock driving the debounce timer.
func WithClock(c clockwork.Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.debounce = d
		}
	}
}

// WithQueryTransformer sets the rewrite applied to queries before fetching.
func WithQueryTransformer(t QueryTransformer) Option {
	return func(ctl *Controller) {
		if t != nil {
			ctl.transformer = t
		}
	}
}

// WithObservers registers observers notified on every transition.
func WithObservers(obs ...Observer) Option {
	return func(ctl *Controller) { ctl.observers = append(ctl.observers, obs...) }
}

type fetchResult struct {
	generation uint64
	query      string
	weather    domain.CityWeather
	err        error
}

// Controller debounces query edits, drops repeats, and keeps only the latest
// lookup visible. Run is the single writer of the state.
type Controller struct {
	fetcher     Fetcher
	transformer QueryTransformer
	observers   []Observer
	clock       clockwork.Clock
	debounce    time.Duration
	logger      *slog.Logger
	metrics     *observability.Metrics

	mu       sync.Mutex
	pending  string
	deadline time.Time // when pending's quiet period ends
	timer    clockwork.Timer

	stateMu sync.RWMutex
	state   State

	results chan fetchResult
	running atomic.Bool

	// Owned by the Run goroutine.
	last        string
	hasLast     bool
	generation  uint64
	cancelFetch context.CancelFunc
}

// New creates a Controller in the Idle state.
func New(fetcher Fetcher, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Controller {
	c := &Controller{
		fetcher:     fetcher,
		transformer: Identity,
		clock:       clockwork.NewRealClock(),
		debounce:    DefaultDebounce,
		logger:      logger,
		metrics:     metrics,
		state:       idleState(),
		results:     make(chan fetchResult),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.timer = c.clock.NewTimer(c.debounce)
	c.timer.Stop()
	return c
}

// SubmitQuery records raw as the latest query and restarts the debounce window.
// It never blocks on the network.
func (c *Controller) SubmitQuery(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = raw
	c.deadline = c.clock.Now().Add(c.debounce)
	if !c.timer.Stop() {
		select {
		case <-c.timer.Chan():
		default:
		}
	}
	c.timer.Reset(c.debounce)
}

// State returns the current state.
func (c *Controller) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// CheckReadiness returns nil while Run is active.
func (c *Controller) CheckReadiness(_ context.Context) error {
	if !c.running.Load() {
		return errors.New("search controller is not running")
	}
	return nil
}

// Run processes debounced queries and fetch results until ctx is cancelled.
// Any outstanding fetch is cancelled on return.
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return errors.New("search controller already running")
	}
	c.logger.Info("search controller started", "debounce", c.debounce)
	c.metrics.ControllerRunning.Set(1)
	defer func() {
		c.cancelOutstanding()
		c.metrics.ControllerRunning.Set(0)
		c.running.Store(false)
	}()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("search controller stopping", "reason", ctx.Err())
			return nil
		case <-c.timer.Chan():
			c.process(ctx)
		case r := <-c.results:
			c.complete(r)
		}
	}
}

// process handles one debounce fire. A fire that raced with a newer
// SubmitQuery is ignored; the rearmed timer fires again for that query.
func (c *Controller) process(ctx context.Context) {
	c.mu.Lock()
	raw := c.pending
	early := c.clock.Now().Before(c.deadline)
	c.mu.Unlock()

	if early {
		return
	}

	query := strings.TrimSpace(raw)
	if c.hasLast && query == c.last {
		c.metrics.DuplicateQueries.Inc()
		c.logger.Debug("duplicate query skipped", "query", query)
		return
	}
	c.last, c.hasLast = query, true

	c.cancelOutstanding()
	c.generation++

	if query == "" {
		c.setState(idleState())
		return
	}

	query = c.transformer.TransformQuery(query)
	c.setState(loadingState())

	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel
	go c.fetch(ctx, fetchCtx, c.generation, query)
}

func (c *Controller) fetch(runCtx, fetchCtx context.Context, generation uint64, query string) {
	w, err := c.fetcher.FetchWeather(fetchCtx, query)
	select {
	case c.results <- fetchResult{generation: generation, query: query, weather: w, err: err}:
	case <-runCtx.Done():
	}
}

func (c *Controller) complete(r fetchResult) {
	if r.generation != c.generation {
		c.metrics.SupersededFetches.Inc()
		c.logger.Debug("superseded result discarded", "query", r.query)
		return
	}
	c.cancelOutstanding()

	if r.err != nil {
		ne := domain.AsNetworkError(r.err)
		c.logger.Info("weather lookup failed", "query", r.query, "kind", ne.Kind.String(), "error", r.err)
		c.setState(failureState(ne))
		return
	}
	c.setState(successState(r.weather))
}

func (c *Controller) cancelOutstanding() {
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
}

func (c *Controller) setState(s State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()

	c.metrics.StateTransitions.WithLabelValues(s.Phase().String()).Inc()
	c.logger.Debug("search state changed", "phase", s.Phase().String())
	for _, o := range c.observers {
		o.OnStateChange(s)
	}
}
