package model

import "time"

// StepRecord captures the state of the system after one simulation step.
type StepRecord struct {
	Timestamp           time.Time     `json:"timestamp"`
	Step                int           `json:"step"`
	Hour                float64       `json:"hour"` // hour of day, fractional for sub-hourly steps
	SolarAvailableKW    float64       `json:"solar_available_kw"`
	SolarGeneratedKW    float64       `json:"solar_generated_kw"`
	LoadDemandKW        float64       `json:"load_demand_kw"`
	CloudCoverage       float64       `json:"cloud_coverage"`
	BatterySoC          float64       `json:"battery_soc"`
	Flows               FlowBreakdown `json:"flows"`
	InverterOperational bool          `json:"inverter_operational"`
}

// DaySummary aggregates one simulated day.
type DaySummary struct {
	Day                int     `json:"day"` // 1-based
	SolarGeneratedKWh  float64 `json:"solar_generated_kwh"`
	LoadConsumedKWh    float64 `json:"load_consumed_kwh"`
	GridImportedKWh    float64 `json:"grid_imported_kwh"`
	GridExportedKWh    float64 `json:"grid_exported_kwh"`
	CurtailedKWh       float64 `json:"curtailed_kwh"`
	BatterySoCEnd      float64 `json:"battery_soc_end"`
	SelfSufficiencyPct float64 `json:"self_sufficiency_percent"`
}

// Event is a free-text simulation event, such as an inverter failure.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}
