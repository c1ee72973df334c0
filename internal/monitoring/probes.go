// Package monitoring tracks the simulations run by a parameter search.
package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ProbeMonitor counts in-flight and finished probes. It is safe for
// concurrent use by search workers.
type ProbeMonitor struct {
	mu             sync.RWMutex
	logger         zerolog.Logger
	started        time.Time
	inFlight       int
	peakInFlight   int
	completed      int
	failed         int
	baseline       int
	peakGoroutines int
}

// NewProbeMonitor creates a monitor and records the current goroutine count as baseline
func NewProbeMonitor(logger zerolog.Logger) *ProbeMonitor {
	baseline := runtime.NumGoroutine()
	return &ProbeMonitor{
		logger:         logger.With().Str("component", "ProbeMonitor").Logger(),
		started:        time.Now(),
		baseline:       baseline,
		peakGoroutines: baseline,
	}
}

// Begin marks a probe as running
func (pm *ProbeMonitor) Begin() {
	current := runtime.NumGoroutine()

	pm.mu.Lock()
	pm.inFlight++
	if pm.inFlight > pm.peakInFlight {
		pm.peakInFlight = pm.inFlight
	}
	if current > pm.peakGoroutines {
		pm.peakGoroutines = current
	}
	inFlight := pm.inFlight
	pm.mu.Unlock()

	pm.logger.Trace().
		Int("in_flight", inFlight).
		Int("goroutines", current).
		Msg("Probe started")
}

// End marks a running probe as finished; failed is set when the probe errored
func (pm *ProbeMonitor) End(failed bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.inFlight > 0 {
		pm.inFlight--
	}
	pm.completed++
	if failed {
		pm.failed++
	}
}

// GetMetrics returns a snapshot of the probe counters
func (pm *ProbeMonitor) GetMetrics() ProbeMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	return ProbeMetrics{
		InFlight:       pm.inFlight,
		PeakInFlight:   pm.peakInFlight,
		Completed:      pm.completed,
		Failed:         pm.failed,
		PeakGoroutines: pm.peakGoroutines,
		Growth:         pm.peakGoroutines - pm.baseline,
		Elapsed:        time.Since(pm.started),
	}
}

// ProbeMetrics contains probe statistics
type ProbeMetrics struct {
	InFlight       int           `json:"in_flight"`
	PeakInFlight   int           `json:"peak_in_flight"`
	Completed      int           `json:"completed"`
	Failed         int           `json:"failed"`
	PeakGoroutines int           `json:"peak_goroutines"`
	Growth         int           `json:"growth"`
	Elapsed        time.Duration `json:"elapsed"`
}

// Log writes the snapshot at debug level
func (m ProbeMetrics) Log(logger zerolog.Logger) {
	logger.Debug().
		Int("peak_in_flight", m.PeakInFlight).
		Int("completed", m.Completed).
		Int("failed", m.Failed).
		Int("peak_goroutines", m.PeakGoroutines).
		Int("goroutine_growth", m.Growth).
		Dur("elapsed", m.Elapsed).
		Msg("Probe metrics")
}
