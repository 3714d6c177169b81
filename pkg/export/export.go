// Package export writes simulation output as flat tabular CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/greengrid/simulator/core/model"
)

const timestampLayout = "2006-01-02 15:04:05"

// WriteResultJSON writes the whole run result to w in JSON format.
func WriteResultJSON(w io.Writer, res *model.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// stepHeader lists the step CSV columns, one row per simulation step.
var stepHeader = []string{
	"timestamp", "step", "hour", "solar_available_kw", "solar_generated_kw",
	"load_demand_kw", "cloud_coverage", "battery_soc", "solar_to_load",
	"solar_to_battery", "solar_to_grid", "battery_to_load", "grid_to_load",
	"unmet_load", "curtailed", "inverter_operational",
}

// WriteStepsCSV writes the step records to w as CSV.
func WriteStepsCSV(w io.Writer, steps []model.StepRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stepHeader); err != nil {
		return err
	}
	for _, s := range steps {
		rec := []string{
			s.Timestamp.Format(timestampLayout),
			strconv.Itoa(s.Step),
			formatFloat(s.Hour),
			formatFloat(s.SolarAvailableKW),
			formatFloat(s.SolarGeneratedKW),
			formatFloat(s.LoadDemandKW),
			formatFloat(s.CloudCoverage),
			formatFloat(s.BatterySoC),
			formatFloat(s.Flows.SolarToLoad),
			formatFloat(s.Flows.SolarToBattery),
			formatFloat(s.Flows.SolarToGrid),
			formatFloat(s.Flows.BatteryToLoad),
			formatFloat(s.Flows.GridToLoad),
			formatFloat(s.Flows.UnmetLoad),
			formatFloat(s.Flows.Curtailed),
			strconv.FormatBool(s.InverterOperational),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var dayHeader = []string{
	"day", "solar_generated_kwh", "load_consumed_kwh", "grid_imported_kwh",
	"grid_exported_kwh", "curtailed_kwh", "battery_soc_end",
	"self_sufficiency_percent",
}

// WriteDaysCSV writes the day summaries to w as CSV.
func WriteDaysCSV(w io.Writer, days []model.DaySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dayHeader); err != nil {
		return err
	}
	for _, d := range days {
		rec := []string{
			strconv.Itoa(d.Day),
			formatFloat(d.SolarGeneratedKWh),
			formatFloat(d.LoadConsumedKWh),
			formatFloat(d.GridImportedKWh),
			formatFloat(d.GridExportedKWh),
			formatFloat(d.CurtailedKWh),
			formatFloat(d.BatterySoCEnd),
			formatFloat(d.SelfSufficiencyPct),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEventsCSV writes the event log to w as CSV.
func WriteEventsCSV(w io.Writer, events []model.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "message"}); err != nil {
		return err
	}
	for _, e := range events {
		if err := cw.Write([]string{e.Timestamp.Format(timestampLayout), e.Message}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
