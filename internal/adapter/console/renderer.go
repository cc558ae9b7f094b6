// Package console prints search states as text lines.
package console

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/couchcryptid/weather-search/internal/search"
)

// Renderer writes one line per search state transition. Idle prints nothing.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer, logger *slog.Logger) *Renderer {
	return &Renderer{out: out, logger: logger}
}

var _ search.Observer = (*Renderer)(nil)

func (r *Renderer) OnStateChange(s search.State) {
	line := Line(s)
	if line == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := fmt.Fprintln(r.out, line); err != nil {
		r.logger.Warn("render search state failed", "error", err)
	}
}

// Line renders s as a single line of text.
func Line(s search.State) string {
	switch s.Phase() {
	case search.PhaseLoading:
		return "Searching..."
	case search.PhaseSuccess:
		w, _ := s.Weather()
		v := NewWeatherView(w)
		line := v.CityName
		if v.Summary != "" {
			line += " - " + v.Summary
		}
		return fmt.Sprintf("%s: %s (%s) | min %s max %s | humidity %s | wind %s",
			line, v.AverageTemperature, v.FeelsLike, v.MinTemperature, v.MaxTemperature, v.Humidity, v.WindSpeed)
	case search.PhaseFailure:
		e := NewErrorView(s.Err().Kind)
		return e.Title + " " + e.Message
	default:
		return ""
	}
}
