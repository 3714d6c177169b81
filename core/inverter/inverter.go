// Package inverter models solar power clipping and random outages.
package inverter

import (
	"fmt"
	"math/rand"
)

// Config defines inverter parameters loaded from configuration.
type Config struct {
	// UnitMaxOutputKW is the maximum output of a single inverter unit.
	UnitMaxOutputKW float64 `json:"unit_max_output_kw"`
	// FailureRate is the daily failure probability.
	FailureRate float64 `json:"failure_rate"`
	// MinFailureDurationHours and MaxFailureDurationHours bound the outage
	// length drawn when a failure occurs.
	MinFailureDurationHours int `json:"min_failure_duration_hours"`
	MaxFailureDurationHours int `json:"max_failure_duration_hours"`
	// Count multiplies the unit output.
	Count int `json:"count"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.FailureRate == 0 {
		c.FailureRate = 0.005
	}
	if c.MinFailureDurationHours == 0 {
		c.MinFailureDurationHours = 4
	}
	if c.MaxFailureDurationHours == 0 {
		c.MaxFailureDurationHours = 72
	}
	if c.Count == 0 {
		c.Count = 1
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.UnitMaxOutputKW <= 0 {
		return fmt.Errorf("unit_max_output_kw must be positive")
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("failure_rate must be in [0,1], got %v", c.FailureRate)
	}
	if c.MinFailureDurationHours < 0 || c.MaxFailureDurationHours < c.MinFailureDurationHours {
		return fmt.Errorf("failure duration bounds invalid: [%d,%d]",
			c.MinFailureDurationHours, c.MaxFailureDurationHours)
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}
	return nil
}

// Inverter clips solar output to its rating and suffers random outages.
// CheckFailure must be called exactly once per simulated day so the failure
// rate keeps its daily meaning.
type Inverter struct {
	maxOutputKW    float64
	failureRate    float64
	minDuration    int
	maxDuration    int
	failing        bool
	hoursRemaining float64
	rng            *rand.Rand
}

// New creates an operational inverter drawing randomness from rng.
func New(maxOutputKW, failureRate float64, minDuration, maxDuration int, rng *rand.Rand) *Inverter {
	return &Inverter{
		maxOutputKW: maxOutputKW,
		failureRate: failureRate,
		minDuration: minDuration,
		maxDuration: maxDuration,
		rng:         rng,
	}
}

// ApplyLimit returns the output power for the given raw solar power:
// zero while failing, otherwise clipped to the rated maximum.
func (i *Inverter) ApplyLimit(rawKW float64) float64 {
	if i.failing {
		return 0
	}
	if rawKW > i.maxOutputKW {
		return i.maxOutputKW
	}
	return rawKW
}

// CheckFailure performs the daily Bernoulli failure draw. A failure that is
// already in progress is left alone.
func (i *Inverter) CheckFailure() {
	if i.failing {
		return
	}
	if i.rng.Float64() < i.failureRate {
		i.failing = true
		i.hoursRemaining = float64(i.minDuration + i.rng.Intn(i.maxDuration-i.minDuration+1))
	}
}

// Update advances the failure clock by the elapsed hours and clears the
// failure once its duration runs out.
func (i *Inverter) Update(hoursPassed float64) {
	if !i.failing {
		return
	}
	i.hoursRemaining -= hoursPassed
	if i.hoursRemaining <= 0 {
		i.failing = false
		i.hoursRemaining = 0
	}
}

// IsOperational reports whether the inverter is currently producing.
func (i *Inverter) IsOperational() bool { return !i.failing }

// FailureHoursRemaining returns the remaining outage duration in hours.
func (i *Inverter) FailureHoursRemaining() float64 { return i.hoursRemaining }
