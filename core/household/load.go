// Package household models stochastic residential electricity demand.
package household

import (
	"fmt"
	"math/rand"
)

// noiseProbability is the chance of a small random demand bump on any step.
const noiseProbability = 0.3

// Config defines load profile parameters loaded from configuration.
type Config struct {
	// BaseLoadKW is the always-on background demand.
	BaseLoadKW float64 `json:"base_load_kw"`
	// PeakHoursMaxKW is the upper bound of the extra evening demand.
	PeakHoursMaxKW float64 `json:"peak_hours_max_kw"`
	// PeakHoursStart and PeakHoursEnd bound the evening peak window,
	// start inclusive, end exclusive.
	PeakHoursStart int `json:"peak_hours_start"`
	PeakHoursEnd   int `json:"peak_hours_end"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PeakHoursStart == 0 && c.PeakHoursEnd == 0 {
		c.PeakHoursStart = 18
		c.PeakHoursEnd = 21
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BaseLoadKW < 0 {
		return fmt.Errorf("base_load_kw must not be negative")
	}
	if c.PeakHoursStart < 0 || c.PeakHoursStart > 23 || c.PeakHoursEnd < 0 || c.PeakHoursEnd > 24 {
		return fmt.Errorf("peak hours out of range: [%d,%d)", c.PeakHoursStart, c.PeakHoursEnd)
	}
	if c.PeakHoursEnd < c.PeakHoursStart {
		return fmt.Errorf("peak_hours_end before peak_hours_start")
	}
	return nil
}

// scheduledEvent is a probabilistic appliance event fixed to an hour.
type scheduledEvent struct {
	hour        int
	probability float64
	minKW       float64
	maxKW       float64
}

// Load generates residential demand per hour of day. Scheduled events fire
// only outside the evening peak window; noise can fire at any hour.
type Load struct {
	baseLoadKW     float64
	peakHoursMaxKW float64
	peakStart      int
	peakEnd        int
	events         []scheduledEvent
	rng            *rand.Rand
}

// New creates a load profile drawing randomness from rng.
func New(cfg Config, rng *rand.Rand) *Load {
	return &Load{
		baseLoadKW:     cfg.BaseLoadKW,
		peakHoursMaxKW: cfg.PeakHoursMaxKW,
		peakStart:      cfg.PeakHoursStart,
		peakEnd:        cfg.PeakHoursEnd,
		events: []scheduledEvent{
			{6, 0.7, 1.0, 1.5},  // morning coffee
			{7, 0.5, 0.8, 1.2},  // hair dryer
			{8, 0.4, 0.8, 1.2},  // washing machine
			{12, 0.6, 1.0, 1.5}, // lunch
			{22, 0.3, 0.5, 1.0}, // late night activity
		},
		rng: rng,
	}
}

// Generate returns the demand in kW for the given hour of day. The hour may
// be fractional for sub-hourly steps; event matching uses the whole hour.
func (l *Load) Generate(hour float64) float64 {
	hourOfDay := int(hour)
	demand := l.baseLoadKW

	if hourOfDay >= l.peakStart && hourOfDay < l.peakEnd {
		demand += l.uniform(1.0, l.peakHoursMaxKW)
	} else {
		for _, ev := range l.events {
			if hourOfDay == ev.hour && l.rng.Float64() < ev.probability {
				demand += l.uniform(ev.minKW, ev.maxKW)
			}
		}
	}

	if l.rng.Float64() < noiseProbability {
		demand += l.uniform(0.0, 0.8)
	}
	return demand
}

func (l *Load) uniform(min, max float64) float64 {
	return min + l.rng.Float64()*(max-min)
}
