// Package events defines the events published on the internal bus while a
// simulation runs.
package events

import "time"

// InverterFailureEvent is published when the daily failure draw trips.
type InverterFailureEvent struct {
	Timestamp      time.Time
	RemainingHours float64
}

// InverterRecoveryEvent is published when an outage ends.
type InverterRecoveryEvent struct {
	Timestamp time.Time
}

// DayCompletedEvent is published at each day boundary.
type DayCompletedEvent struct {
	Day                int // 1-based
	SelfSufficiencyPct float64
}
