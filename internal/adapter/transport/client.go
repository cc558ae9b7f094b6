// Package transport executes weather API requests and classifies every failure
// into a domain.NetworkError.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/weather-search/internal/domain"
	"github.com/couchcryptid/weather-search/internal/observability"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// Decoder turns a 2xx response body into T.
type Decoder[T any] func(body []byte) (T, error)

// doer is satisfied by *http.Client.
type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs single GET requests. It holds no per-request state and never
// retries.
type Client struct {
	httpClient doer
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a transport client whose requests fail with KindTimeout
// once timeout elapses.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute fetches r and decodes the body with decode. Decode failures are
// reported as KindJSONDecoding carrying the decoder's error.
func Execute[T any](ctx context.Context, c *Client, r domain.Resource, decode Decoder[T]) (T, error) {
	var zero T

	body, err := c.fetch(ctx, r)
	if err != nil {
		return zero, err
	}

	v, err := decode(body)
	if err != nil {
		c.observe("json_decoding_error")
		return zero, domain.NewNetworkError(domain.KindJSONDecoding, err)
	}
	c.observe("success")
	return v, nil
}

// DecodeJSON is a Decoder for any JSON-shaped T.
func DecodeJSON[T any](body []byte) (T, error) {
	var v T
	err := json.Unmarshal(body, &v)
	return v, err
}

// fetch performs the GET and returns the body of a 2xx response. Connectivity
// is classified before status, and status before any decoding by the caller.
func (c *Client) fetch(ctx context.Context, r domain.Resource) ([]byte, error) {
	u, err := r.URL()
	if err != nil {
		return nil, c.fail(domain.NewNetworkError(domain.KindUnknown, err), r)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, c.fail(domain.NewNetworkError(domain.KindUnknown, withoutURL(err)), r)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.fail(classifyTransportError(err), r)
	}
	if resp == nil {
		return nil, c.fail(domain.NewNetworkError(domain.KindNoDataFound, nil), r)
	}
	defer resp.Body.Close()

	if kind, ok := classifyStatus(resp.StatusCode); !ok {
		// Drain so the connection can be reused; the body is never decoded.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, c.fail(domain.NewNetworkError(kind, nil), r, "status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.fail(classifyTransportError(err), r)
	}
	return body, nil
}

func (c *Client) fail(ne *domain.NetworkError, r domain.Resource, attrs ...any) error {
	c.observe(ne.Kind.String())
	args := append([]any{"kind", ne.Kind.String(), "url", r.BaseURL()}, attrs...)
	if ne.Cause != nil {
		args = append(args, "error", ne.Cause)
	}
	c.logger.Debug("weather request failed", args...)
	return ne
}

func (c *Client) observe(outcome string) {
	c.metrics.FetchRequests.WithLabelValues(outcome).Inc()
}
