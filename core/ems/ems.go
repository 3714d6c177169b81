// Package ems routes power between solar, battery, household load and grid
// according to a fixed priority ordering chosen at construction time.
package ems

import (
	"fmt"

	"github.com/greengrid/simulator/core/model"
)

// EnergyReservoir is the storage capability the EMS dispatches against.
// Both methods operate in energy units (kWh).
type EnergyReservoir interface {
	// Charge offers energy and returns the energy consumed from the source.
	Charge(offeredKWh float64) float64
	// Discharge requests energy and returns the energy actually delivered.
	Discharge(requestedKWh float64) float64
}

// GridConnection is the utility capability the EMS dispatches against.
type GridConnection interface {
	// ImportEnergy buys power for dtHours and returns its cost.
	ImportEnergy(powerKW, dtHours float64) float64
	// ExportEnergy sells power for dtHours, capped by the grid, and returns
	// the actual power accepted.
	ExportEnergy(powerKW, dtHours float64) float64
}

// dispatcher is one priority ordering. Implementations are stateless.
type dispatcher interface {
	distribute(solarKW, loadKW float64, batt EnergyReservoir, grid GridConnection, dtHours float64) model.FlowBreakdown
}

// EMS dispatches each step's power according to its configured strategy.
type EMS struct {
	strategy model.Strategy
	impl     dispatcher
}

// New creates an EMS for the given strategy. Unknown strategies are a
// configuration error.
func New(strategy model.Strategy) (*EMS, error) {
	var impl dispatcher
	switch strategy {
	case model.StrategyLoadPriority:
		impl = loadPriority{}
	case model.StrategyChargePriority:
		impl = chargePriority{}
	case model.StrategyProducePriority:
		impl = producePriority{}
	default:
		return nil, fmt.Errorf("unknown strategy: %v", strategy)
	}
	return &EMS{strategy: strategy, impl: impl}, nil
}

// Strategy returns the configured dispatch strategy.
func (e *EMS) Strategy() model.Strategy { return e.strategy }

// DistributeEnergy routes solarKW against loadKW through the battery and
// grid for one step of dtHours and returns the resulting flow breakdown,
// rounded to six decimals. Inputs are assumed non-negative.
func (e *EMS) DistributeEnergy(solarKW, loadKW float64, batt EnergyReservoir, grid GridConnection, dtHours float64) model.FlowBreakdown {
	return e.impl.distribute(solarKW, loadKW, batt, grid, dtHours).Rounded()
}

// coverDeficit serves an outstanding load deficit from the battery first and
// the grid last. Shared by all strategies. Returns the battery and grid
// contributions in kW.
func coverDeficit(deficitKW float64, batt EnergyReservoir, grid GridConnection, dtHours float64) (batteryToLoad, gridToLoad float64) {
	if deficitKW > 0 {
		delivered := batt.Discharge(deficitKW * dtHours)
		batteryToLoad = delivered / dtHours
		deficitKW -= batteryToLoad
	}
	if deficitKW > 0 {
		grid.ImportEnergy(deficitKW, dtHours)
		gridToLoad = deficitKW
	}
	return batteryToLoad, gridToLoad
}
