package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// TraceMetrics accumulates counters for one full-image trace. Counters are
// atomic because scan-lines are rendered from multiple goroutines.
type TraceMetrics struct {
	PrimaryRays int64
	ShadowRays  int64
	Hits        int64
	Duration    time.Duration
}

var onceMetrics sync.Once
var metricsState = &traceMetricsState{}

type traceMetricsState struct {
	primaryRays atomic.Int64
	shadowRays  atomic.Int64
	hits        atomic.Int64
	started     time.Time
	duration    time.Duration
}

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState.started = time.Now()
	})
	return nil
}

// MetricsTraceBegin resets all counters for a new image.
func MetricsTraceBegin() {
	metricsState.primaryRays.Store(0)
	metricsState.shadowRays.Store(0)
	metricsState.hits.Store(0)
	metricsState.started = time.Now()
	metricsState.duration = 0
}

func MetricsTraceEnd() {
	metricsState.duration = time.Since(metricsState.started)
}

func MetricsCountPrimaryRay() {
	metricsState.primaryRays.Add(1)
}

func MetricsCountShadowRay() {
	metricsState.shadowRays.Add(1)
}

func MetricsCountHit() {
	metricsState.hits.Add(1)
}

// MetricsTrace returns a snapshot of the current trace counters.
func MetricsTrace() TraceMetrics {
	return TraceMetrics{
		PrimaryRays: metricsState.primaryRays.Load(),
		ShadowRays:  metricsState.shadowRays.Load(),
		Hits:        metricsState.hits.Load(),
		Duration:    metricsState.duration,
	}
}
