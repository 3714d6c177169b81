package ems

import "github.com/greengrid/simulator/core/model"

// loadPriority serves the house first, charges the battery with the excess
// and exports whatever the battery rejects. On deficit it draws from the
// battery, then the grid.
type loadPriority struct{}

func (loadPriority) distribute(solarKW, loadKW float64, batt EnergyReservoir, grid GridConnection, dtHours float64) model.FlowBreakdown {
	var f model.FlowBreakdown

	if solarKW >= loadKW {
		f.SolarToLoad = loadKW
		excess := solarKW - loadKW

		if excess > 0 {
			offered := excess * dtHours
			consumed := batt.Charge(offered)
			f.SolarToBattery = consumed / dtHours
			excess = (offered - consumed) / dtHours
		}

		if excess > 0 {
			exported := grid.ExportEnergy(excess, dtHours)
			f.SolarToGrid = exported
			if exported < excess {
				f.Curtailed = excess - exported
			}
		}
	} else {
		f.SolarToLoad = solarKW
		deficit := loadKW - solarKW
		f.BatteryToLoad, f.GridToLoad = coverDeficit(deficit, batt, grid, dtHours)
	}

	f.UnmetLoad = f.GridToLoad
	return f
}
