package clock

import (
	"fmt"
	"sync"
	"time"
)

// Mock is a Clock whose time only advances when told to, for deterministic
// tests of time-driven workers such as the PLI ticker.
type Mock struct {
	mu      sync.RWMutex
	now     time.Time
	tickers map[*mockTicker]struct{}
}

var _ Clock = &Mock{}

// NewMock returns a Mock clock starting at the zero time.
func NewMock() *Mock {
	return &Mock{
		tickers: map[*mockTicker]struct{}{},
	}
}

// Now implements Clock.
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.now
}

// NewTicker implements Clock.
func (m *Mock) NewTicker(d time.Duration) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &mockTicker{c: make(chan time.Time, 1), d: d, start: m.now}
	m.tickers[t] = struct{}{}

	return t
}

// Add advances the mock clock by d, firing any ticker whose interval has
// elapsed one or more times since the last Add.
func (m *Mock) Add(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		panic(fmt.Sprintf("clock: cannot move backwards by %s", d))
	}

	m.now = m.now.Add(d)

	for t := range m.tickers {
		t.fireDue(m.now)
	}

	return m.now
}

type mockTicker struct {
	mu      sync.Mutex
	c       chan time.Time
	d       time.Duration
	start   time.Time
	stopped bool
}

func (t *mockTicker) C() <-chan time.Time {
	return t.c
}

func (t *mockTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
}

func (t *mockTicker) fireDue(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for next := t.start.Add(t.d); !next.After(now) && !t.stopped; next = next.Add(t.d) {
		select {
		case t.c <- next:
		default:
		}

		t.start = next
	}
}
