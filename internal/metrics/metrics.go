package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ClientStats counts traffic issued by the API client.
type ClientStats struct {
	Requests     Counter
	Failures     Counter
	Unauthorized Counter

	slowest atomic.Int64
}

// Observe records the duration of a finished request.
func (s *ClientStats) Observe(d time.Duration) {
	for {
		cur := s.slowest.Load()
		if int64(d) <= cur || s.slowest.CompareAndSwap(cur, int64(d)) {
			return
		}
	}
}

type Snapshot struct {
	Requests     uint64
	Failures     uint64
	Unauthorized uint64
	Slowest      time.Duration
}

func (s *ClientStats) Snapshot() Snapshot {
	return Snapshot{
		Requests:     s.Requests.Load(),
		Failures:     s.Failures.Load(),
		Unauthorized: s.Unauthorized.Load(),
		Slowest:      time.Duration(s.slowest.Load()),
	}
}
