package model

import "math"

// FlowBreakdown describes how power moved between the system components
// during a single step. All fields are average powers in kW over the step
// and are never negative.
type FlowBreakdown struct {
	SolarToLoad    float64 `json:"solar_to_load"`
	SolarToBattery float64 `json:"solar_to_battery"`
	SolarToGrid    float64 `json:"solar_to_grid"`
	BatteryToLoad  float64 `json:"battery_to_load"`
	GridToLoad     float64 `json:"grid_to_load"`
	// UnmetLoad is the load power the solar+battery system could not supply,
	// i.e. what had to come from the grid. Grid import is uncapped, so this
	// is not literally unserved demand.
	UnmetLoad float64 `json:"unmet_load"`
	// Curtailed is solar power discarded because it could not be consumed,
	// stored or exported.
	Curtailed float64 `json:"curtailed"`
}

// Rounded returns a copy with every field rounded to six decimal places so
// floating point drift does not accumulate over long runs.
func (f FlowBreakdown) Rounded() FlowBreakdown {
	return FlowBreakdown{
		SolarToLoad:    round6(f.SolarToLoad),
		SolarToBattery: round6(f.SolarToBattery),
		SolarToGrid:    round6(f.SolarToGrid),
		BatteryToLoad:  round6(f.BatteryToLoad),
		GridToLoad:     round6(f.GridToLoad),
		UnmetLoad:      round6(f.UnmetLoad),
		Curtailed:      round6(f.Curtailed),
	}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
