// Package metrics defines the observability sinks fed by the simulation
// engine. Sinks are optional; the engine works with a NopSink.
package metrics

import (
	"github.com/greengrid/simulator/core/events"
	"github.com/greengrid/simulator/core/model"
)

// StepRecorder receives every step record as it is produced.
type StepRecorder interface {
	RecordStep(rec model.StepRecord) error
}

// DayRecorder receives each completed day summary.
type DayRecorder interface {
	RecordDay(day model.DaySummary) error
}

// RunRecorder receives the final run result.
type RunRecorder interface {
	RecordRun(res model.RunResult) error
}

// Sink records simulation output for observability purposes.
type Sink interface {
	StepRecorder
	DayRecorder
	RunRecorder
}

// FailureRecorder is an optional sink capability: sinks implementing it
// receive the inverter failures observed on the event bus.
type FailureRecorder interface {
	RecordFailure(ev events.InverterFailureEvent) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordStep(model.StepRecord) error { return nil }
func (NopSink) RecordDay(model.DaySummary) error  { return nil }
func (NopSink) RecordRun(model.RunResult) error   { return nil }
