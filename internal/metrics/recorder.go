package metrics

import "time"

// Outcome enumerates final generation results.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning" // completed with tolerated dead links
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Recorder defines observability hooks for generation runs.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveGenerationDuration(d time.Duration)
	IncGenerationOutcome(outcome Outcome)
	SetBrokenLinks(n int)
	SetRegisteredComponents(n int)
	SetRoutes(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveGenerationDuration(time.Duration)    {}
func (NoopRecorder) IncGenerationOutcome(Outcome)               {}
func (NoopRecorder) SetBrokenLinks(int)                         {}
func (NoopRecorder) SetRegisteredComponents(int)                {}
func (NoopRecorder) SetRoutes(int)                              {}
