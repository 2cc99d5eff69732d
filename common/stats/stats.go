// Package stats provides a minimal metrics interface backed by go-metrics.
// Wrapping go-metrics keeps the dependency out of callers and gives us a
// receiver that can be passed down a call tree and scoped at each level.
//
// Original license: github.com/rcrowley/go-metrics/blob/master/LICENSE
package stats

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rcrowley/go-metrics"
)

// StatsReceiver is a registry handle scoped to some namespace. Hierarchical
// names use '/' as the separator; variadic name elements have '/' replaced by
// "_SLASH_" rather than failing, since counter names are sometimes built from
// dynamic strings.
type StatsReceiver interface {
	// Scope returns a receiver that namespaces all elements with the given args.
	//
	//   statsReceiver.Scope("foo", "bar").Counter("baz")  // is equivalent to
	//   statsReceiver.Counter("foo", "bar", "baz")
	//
	Scope(scope ...string) StatsReceiver

	// Counter provides an event counter.
	Counter(name ...string) Counter

	// Gauge holds an int64 value that can be set arbitrarily.
	Gauge(name ...string) Gauge

	// Latency provides a histogram of callsite latencies, recorded via
	// stat.Latency("foo_ms").Time().Stop().
	Latency(name ...string) Latency

	// Render marshals the current metrics as JSON.
	Render(pretty bool) []byte
}

type Counter interface {
	Inc(delta int64)
	Count() int64
}

type Gauge interface {
	Update(value int64)
	Value() int64
}

type Latency interface {
	Time() StopTimer
	RecordDuration(d time.Duration)
}

// StopTimer records the elapsed time into its Latency when stopped.
type StopTimer interface {
	Stop()
}

// DefaultStatsReceiver returns a receiver over a fresh go-metrics registry.
func DefaultStatsReceiver() StatsReceiver {
	return &defaultStatsReceiver{registry: metrics.NewRegistry()}
}

// NilStatsReceiver returns a receiver that throws away all recordings.
func NilStatsReceiver(scope ...string) StatsReceiver {
	return nilStatsReceiver{}
}

type defaultStatsReceiver struct {
	registry metrics.Registry
	scope    []string
}

func (s *defaultStatsReceiver) Scope(scope ...string) StatsReceiver {
	return &defaultStatsReceiver{registry: s.registry, scope: s.scoped(scope...)}
}

func (s *defaultStatsReceiver) scoped(name ...string) []string {
	scoped := append([]string{}, s.scope...)
	for _, elem := range name {
		scoped = append(scoped, strings.Replace(elem, "/", "_SLASH_", -1))
	}
	return scoped
}

func (s *defaultStatsReceiver) name(name ...string) string {
	return strings.Join(s.scoped(name...), "/")
}

func (s *defaultStatsReceiver) Counter(name ...string) Counter {
	return s.registry.GetOrRegister(s.name(name...), metrics.NewCounter).(metrics.Counter)
}

func (s *defaultStatsReceiver) Gauge(name ...string) Gauge {
	g := s.registry.GetOrRegister(s.name(name...), metrics.NewGauge).(metrics.Gauge)
	return metricGauge{g}
}

func (s *defaultStatsReceiver) Latency(name ...string) Latency {
	h := s.registry.GetOrRegister(s.name(name...), func() metrics.Histogram {
		return metrics.NewHistogram(metrics.NewExpDecaySample(1028, 0.015))
	}).(metrics.Histogram)
	return &metricLatency{hist: h}
}

func (s *defaultStatsReceiver) Render(pretty bool) []byte {
	snapshot := map[string]interface{}{}
	s.registry.Each(func(name string, metric interface{}) {
		switch m := metric.(type) {
		case metrics.Counter:
			snapshot[name] = m.Count()
		case metrics.Gauge:
			snapshot[name] = m.Value()
		case metrics.Histogram:
			h := m.Snapshot()
			snapshot[name] = map[string]interface{}{
				"count": h.Count(),
				"mean":  h.Mean(),
				"max":   h.Max(),
				"p50":   h.Percentile(0.5),
				"p95":   h.Percentile(0.95),
				"p99":   h.Percentile(0.99),
			}
		}
	})
	var b []byte
	if pretty {
		b, _ = json.MarshalIndent(snapshot, "", "  ")
	} else {
		b, _ = json.Marshal(snapshot)
	}
	return b
}

type metricGauge struct {
	metrics.Gauge
}

func (g metricGauge) Value() int64 {
	return g.Gauge.Value()
}

type metricLatency struct {
	hist metrics.Histogram
}

func (l *metricLatency) Time() StopTimer {
	return &stopTimer{latency: l, start: time.Now()}
}

func (l *metricLatency) RecordDuration(d time.Duration) {
	l.hist.Update(int64(d / time.Millisecond))
}

type stopTimer struct {
	latency *metricLatency
	start   time.Time
}

func (t *stopTimer) Stop() {
	t.latency.RecordDuration(time.Since(t.start))
}

type nilStatsReceiver struct{}

func (s nilStatsReceiver) Scope(scope ...string) StatsReceiver { return s }
func (s nilStatsReceiver) Counter(name ...string) Counter      { return nilCounter{} }
func (s nilStatsReceiver) Gauge(name ...string) Gauge          { return nilGauge{} }
func (s nilStatsReceiver) Latency(name ...string) Latency      { return nilLatency{} }
func (s nilStatsReceiver) Render(pretty bool) []byte           { return []byte("{}") }

type nilCounter struct{}

func (c nilCounter) Inc(delta int64) {}
func (c nilCounter) Count() int64    { return 0 }

type nilGauge struct{}

func (g nilGauge) Update(value int64) {}
func (g nilGauge) Value() int64       { return 0 }

type nilLatency struct{}

func (l nilLatency) Time() StopTimer                { return nilStopTimer{} }
func (l nilLatency) RecordDuration(d time.Duration) {}

type nilStopTimer struct{}

func (t nilStopTimer) Stop() {}
