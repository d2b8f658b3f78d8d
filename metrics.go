package remind

import "time"

// Metrics captures run-level telemetry.
type Metrics interface {
	// ObserveRunDuration records the time taken by one full run.
	ObserveRunDuration(duration time.Duration)
	// AddSent increments the count of successfully dispatched records.
	AddSent(count int)
	// AddFailed increments the count of failed records.
	AddFailed(count int)
	// SetEligible updates the number of eligible records seen by a run.
	SetEligible(count int)
}

// NopMetrics is a no-op metrics recorder.
type NopMetrics struct{}

// ObserveRunDuration implements Metrics.
func (NopMetrics) ObserveRunDuration(time.Duration) {}

// AddSent implements Metrics.
func (NopMetrics) AddSent(int) {}

// AddFailed implements Metrics.
func (NopMetrics) AddFailed(int) {}

// SetEligible implements Metrics.
func (NopMetrics) SetEligible(int) {}
