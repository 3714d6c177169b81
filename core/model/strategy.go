package model

import "fmt"

// Strategy selects the dispatch ordering used by the energy management system.
type Strategy int

const (
	// StrategyLoadPriority serves the house first, charges the battery with
	// the excess and exports the remainder.
	StrategyLoadPriority Strategy = iota
	// StrategyChargePriority charges the battery first, serves the house with
	// what is left and exports the remainder.
	StrategyChargePriority
	// StrategyProducePriority exports to the grid first, then charges the
	// battery and serves the house last.
	StrategyProducePriority
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyLoadPriority:
		return "LOAD_PRIORITY"
	case StrategyChargePriority:
		return "CHARGE_PRIORITY"
	case StrategyProducePriority:
		return "PRODUCE_PRIORITY"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a configuration name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "LOAD_PRIORITY":
		return StrategyLoadPriority, nil
	case "CHARGE_PRIORITY":
		return StrategyChargePriority, nil
	case "PRODUCE_PRIORITY":
		return StrategyProducePriority, nil
	default:
		return 0, fmt.Errorf("unknown strategy: %s", name)
	}
}

// Strategies lists all dispatch strategies in a stable order.
func Strategies() []Strategy {
	return []Strategy{StrategyLoadPriority, StrategyChargePriority, StrategyProducePriority}
}
