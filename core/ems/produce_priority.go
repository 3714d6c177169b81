package ems

import "github.com/greengrid/simulator/core/model"

// producePriority exports solar first up to the grid cap, charges the
// battery with the export-capped remainder, serves the house with what is
// left and finally covers any deficit from battery then grid. With an empty
// battery and some solar this ordering can export and import in the same
// step; that arbitrage is intentional.
type producePriority struct{}

func (producePriority) distribute(solarKW, loadKW float64, batt EnergyReservoir, grid GridConnection, dtHours float64) model.FlowBreakdown {
	var f model.FlowBreakdown

	exported := grid.ExportEnergy(solarKW, dtHours)
	f.SolarToGrid = exported
	remaining := solarKW - exported

	if remaining > 0 {
		offered := remaining * dtHours
		consumed := batt.Charge(offered)
		f.SolarToBattery = consumed / dtHours
		remaining = (offered - consumed) / dtHours
	}

	var deficit float64
	if remaining > 0 {
		if remaining < loadKW {
			f.SolarToLoad = remaining
		} else {
			f.SolarToLoad = loadKW
		}
		deficit = loadKW - f.SolarToLoad
		if remaining > f.SolarToLoad {
			f.Curtailed = remaining - f.SolarToLoad
		}
	} else {
		deficit = loadKW
	}

	f.BatteryToLoad, f.GridToLoad = coverDeficit(deficit, batt, grid, dtHours)
	f.UnmetLoad = f.GridToLoad
	return f
}
