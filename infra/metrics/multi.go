package metrics

import (
	coremetrics "github.com/greengrid/simulator/core/metrics"
	"github.com/greengrid/simulator/core/model"
)

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordStep forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordStep(rec model.StepRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordStep(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordDay forwards the day summary to all sinks.
func (m *MultiSink) RecordDay(day model.DaySummary) error {
	for _, s := range m.Sinks {
		if err := s.RecordDay(day); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun forwards the run result to all sinks.
func (m *MultiSink) RecordRun(res model.RunResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(res); err != nil {
			return err
		}
	}
	return nil
}
