// Package battery models a stationary storage system with round-trip
// efficiency losses split symmetrically between charge and discharge.
package battery

import (
	"fmt"
	"math"
)

// Config defines battery parameters loaded from configuration.
type Config struct {
	// UnitCapacityKWh is the capacity of a single battery unit.
	UnitCapacityKWh float64 `json:"unit_capacity_kwh"`
	// Efficiency is the round-trip efficiency in (0,1].
	Efficiency float64 `json:"efficiency"`
	// MinSoC is the minimum permitted state of charge as a fraction.
	MinSoC float64 `json:"min_soc"`
	// Count multiplies the unit capacity.
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
	if c.UnitCapacityKWh <= 0 {
		return fmt.Errorf("unit_capacity_kwh must be positive")
	}
	if c.Efficiency <= 0 || c.Efficiency > 1 {
		return fmt.Errorf("efficiency must be in (0,1], got %v", c.Efficiency)
	}
	if c.MinSoC < 0 || c.MinSoC >= 1 {
		return fmt.Errorf("min_soc must be in [0,1), got %v", c.MinSoC)
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}
	return nil
}

// Battery is an energy reservoir. Charging and discharging each apply the
// square root of the round-trip efficiency, so a full cycle loses exactly
// (1-efficiency) of the energy.
type Battery struct {
	capacityKWh  float64
	minEnergyKWh float64
	energyKWh    float64
	oneWayEff    float64
}

// New creates a battery starting at 50% state of charge.
func New(capacityKWh, efficiency, minSoC float64) *Battery {
	return &Battery{
		capacityKWh:  capacityKWh,
		minEnergyKWh: capacityKWh * minSoC,
		energyKWh:    capacityKWh * 0.5,
		oneWayEff:    math.Sqrt(efficiency),
	}
}

// Charge offers energy to the battery and returns how much was actually
// consumed from the source. Efficiency losses are always paid by the source;
// only the capacity limit causes energy to be rejected.
func (b *Battery) Charge(offeredKWh float64) float64 {
	usable := offeredKWh * b.oneWayEff
	headroom := b.capacityKWh - b.energyKWh
	stored := math.Min(usable, headroom)
	b.energyKWh += stored
	return stored / b.oneWayEff
}

// Discharge requests energy from the battery and returns how much was
// actually delivered, which may be less when the reservoir is near its
// floor. Extraction never goes below the minimum state of charge.
func (b *Battery) Discharge(requestedKWh float64) float64 {
	required := requestedKWh / b.oneWayEff
	available := b.energyKWh - b.minEnergyKWh
	extracted := math.Min(required, available)
	b.energyKWh -= extracted
	return extracted * b.oneWayEff
}

// SoC returns the state of charge as a percentage.
func (b *Battery) SoC() float64 {
	return b.energyKWh / b.capacityKWh * 100
}

// IsFull reports whether the state of charge is at or above the threshold
// percentage. A threshold of 99.9 treats the battery as effectively full.
func (b *Battery) IsFull(threshold float64) bool {
	return b.SoC() >= threshold
}

// IsEmpty reports whether the battery is at its minimum state of charge.
func (b *Battery) IsEmpty() bool {
	return b.energyKWh <= b.minEnergyKWh
}

// Capacity returns the total capacity in kWh.
func (b *Battery) Capacity() float64 { return b.capacityKWh }

// StoredEnergy returns the currently stored energy in kWh.
func (b *Battery) StoredEnergy() float64 { return b.energyKWh }

// Headroom returns the remaining space for charging in kWh.
func (b *Battery) Headroom() float64 { return b.capacityKWh - b.energyKWh }
