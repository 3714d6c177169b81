// Package solarpanel models photovoltaic generation as a half-sine daylight
// profile attenuated by cloud coverage.
package solarpanel

import (
	"fmt"
	"math"
)

const (
	sunriseHour = 6.0
	sunsetHour  = 18.0
)

// Config defines solar array parameters loaded from configuration.
type Config struct {
	// UnitPeakPowerKW is the peak output of a single panel string.
	UnitPeakPowerKW float64 `json:"unit_peak_power_kw"`
	// Count multiplies the unit peak power.
	Count int `json:"count"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Count == 0 {
		c.Count = 1
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.UnitPeakPowerKW <= 0 {
		return fmt.Errorf("unit_peak_power_kw must be positive")
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}
	return nil
}

// Panel is a stateless solar array.
type Panel struct {
	peakPowerKW float64
}

// New creates a panel with the given aggregate peak power.
func New(peakPowerKW float64) *Panel {
	return &Panel{peakPowerKW: peakPowerKW}
}

// Generate returns the raw generated power in kW for an hour of day (0-24,
// fractional) and a cloud coverage fraction (0-1). Output is zero outside
// the fixed 06:00-18:00 daylight window and peaks at solar noon.
func (p *Panel) Generate(hourOfDay, cloudCoverage float64) float64 {
	if hourOfDay < sunriseHour || hourOfDay >= sunsetHour {
		return 0
	}
	sunAngle := (hourOfDay - sunriseHour) * (math.Pi / 12)
	return p.peakPowerKW * math.Sin(sunAngle) * (1 - cloudCoverage)
}
