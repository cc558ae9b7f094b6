package domain

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

type clockRef struct{ clockwork.Clock }

var searchClock atomic.Pointer[clockRef]

func init() {
	SetClock(nil)
}

// SetClock replaces the time source that stamps recent searches; nil restores
// the real clock. Safe to call while searches are being recorded.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	searchClock.Store(&clockRef{c})
}

func now() time.Time {
	return searchClock.Load().Now()
}
