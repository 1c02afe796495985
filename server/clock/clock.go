// Package clock abstracts time.Ticker so the PLI cadence can be driven
// deterministically in tests instead of by wall-clock sleeps.
package clock

import "time"

// Clock constructs Tickers and reports the current time.
type Clock interface {
	NewTicker(d time.Duration) Ticker
	Now() time.Time
}

// Ticker mirrors the subset of time.Ticker the PLI worker needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// New returns a Clock backed by the real wall clock.
func New() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(d)}
}

func (realClock) Now() time.Time {
	return time.Now()
}

type realTicker struct {
	ticker *time.Ticker
}

func (t *realTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *realTicker) Stop() {
	t.ticker.Stop()
}

var _ Ticker = &realTicker{}
