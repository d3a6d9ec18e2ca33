// Package metrics provides the in-process counters the matching core
// exposes through introspection: total throughput and fill-latency
// percentiles. Both wrap prometheus instrument types, the same way the
// teacher's metrics package wraps prometheus.Counter/Histogram behind a
// small typed API — but registered against a private registry owned by the
// caller rather than the global default one, since there is no metrics HTTP
// endpoint in this module; only the raw accessor methods are exercised.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ThroughputCounter is a monotonic event count plus a start time, giving a
// rate = count / elapsed_seconds reading that is 0 until elapsed > 0.
type ThroughputCounter struct {
	mu      sync.Mutex
	start   time.Time
	count   uint64
	counter prometheus.Counter
}

// NewThroughputCounter registers a prometheus.Counter named name against reg
// and returns a ThroughputCounter backed by it. reg may be nil, in which case
// the prometheus-visible side is skipped and only the in-process count/rate
// accessors work.
func NewThroughputCounter(reg *prometheus.Registry, name, help string) *ThroughputCounter {
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	if reg != nil {
		reg.MustRegister(c)
	}
	return &ThroughputCounter{start: time.Now(), counter: c}
}

// Increment records n events (n defaults to 1 via IncrementOne).
func (t *ThroughputCounter) Increment(n uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count += n
	t.counter.Add(float64(n))
}

// IncrementOne records a single event.
func (t *ThroughputCounter) IncrementOne() { t.Increment(1) }

// Count returns the total recorded so far.
func (t *ThroughputCounter) Count() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// PerSecond returns count / elapsed_seconds since construction, or 0 if no
// time has elapsed yet.
func (t *ThroughputCounter) PerSecond() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed := time.Since(t.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(t.count) / elapsed
}

// LatencyHistogram stores append-only raw samples, sorting a private copy on
// read for percentile queries — acceptable for operator-triggered
// inspection, not for the hot matching path.
type LatencyHistogram struct {
	mu        sync.Mutex
	samples   []time.Duration
	histogram prometheus.Histogram
}

// NewLatencyHistogram registers a prometheus.Histogram named name against
// reg (may be nil) and returns a LatencyHistogram backed by it.
func NewLatencyHistogram(reg *prometheus.Registry, name, help string, buckets []float64) *LatencyHistogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets})
	if reg != nil {
		reg.MustRegister(h)
	}
	return &LatencyHistogram{histogram: h}
}

// Add records one latency sample.
func (l *LatencyHistogram) Add(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.samples = append(l.samples, d)
	l.histogram.Observe(d.Seconds())
}

// Reset discards every recorded sample.
func (l *LatencyHistogram) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.samples = nil
}

func (l *LatencyHistogram) sortedCopy() []time.Duration {
	cp := make([]time.Duration, len(l.samples))
	copy(cp, l.samples)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	return cp
}

// Min returns the smallest recorded sample, or 0 if none.
func (l *LatencyHistogram) Min() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.samples) == 0 {
		return 0
	}
	return l.sortedCopy()[0]
}

// Max returns the largest recorded sample, or 0 if none.
func (l *LatencyHistogram) Max() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.samples) == 0 {
		return 0
	}
	s := l.sortedCopy()
	return s[len(s)-1]
}

// Average returns the mean of all recorded samples, or 0 if none.
func (l *LatencyHistogram) Average() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range l.samples {
		total += s
	}
	return total / time.Duration(len(l.samples))
}

// Percentile returns the sample at rank p (0..100) of the sorted samples, or
// 0 if none have been recorded.
func (l *LatencyHistogram) Percentile(p float64) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.samples) == 0 {
		return 0
	}
	s := l.sortedCopy()
	idx := int(p / 100 * float64(len(s)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s) {
		idx = len(s) - 1
	}
	return s[idx]
}

// Count returns the number of recorded samples.
func (l *LatencyHistogram) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.samples)
}
