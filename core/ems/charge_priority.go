package ems

import "github.com/greengrid/simulator/core/model"

// chargePriority offers all solar to the battery before the house. The
// battery is never drawn down while charging had priority: if the leftover
// solar cannot cover the load the difference is imported, even when the
// battery could have supplied it. On deficit it behaves like loadPriority.
type chargePriority struct{}

func (chargePriority) distribute(solarKW, loadKW float64, batt EnergyReservoir, grid GridConnection, dtHours float64) model.FlowBreakdown {
	var f model.FlowBreakdown

	if solarKW >= loadKW {
		offered := solarKW * dtHours
		consumed := batt.Charge(offered)
		f.SolarToBattery = consumed / dtHours
		remaining := (offered - consumed) / dtHours

		if remaining >= loadKW {
			f.SolarToLoad = loadKW
			excess := remaining - loadKW
			if excess > 0 {
				exported := grid.ExportEnergy(excess, dtHours)
				f.SolarToGrid = exported
				if exported < excess {
					f.Curtailed = excess - exported
				}
			}
		} else {
			f.SolarToLoad = remaining
			deficit := loadKW - remaining
			grid.ImportEnergy(deficit, dtHours)
			f.GridToLoad = deficit
		}
	} else {
		// No charging attempted when already in deficit.
		f.SolarToLoad = solarKW
		deficit := loadKW - solarKW
		f.BatteryToLoad, f.GridToLoad = coverDeficit(deficit, batt, grid, dtHours)
	}

	f.UnmetLoad = f.GridToLoad
	return f
}
