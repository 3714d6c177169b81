package model

// EnergySummary totals the energy moved over a full run.
type EnergySummary struct {
	DurationDays       int     `json:"duration_days"`
	Season             string  `json:"season"`
	Strategy           string  `json:"strategy"`
	TotalSolarKWh      float64 `json:"total_solar_generated_kwh"`
	TotalLoadKWh       float64 `json:"total_load_consumed_kwh"`
	TotalImportedKWh   float64 `json:"total_grid_imported_kwh"`
	TotalExportedKWh   float64 `json:"total_grid_exported_kwh"`
	TotalCurtailedKWh  float64 `json:"total_curtailed_kwh"`
	SelfSufficiencyPct float64 `json:"self_sufficiency_percent"`
}

// FinancialSummary totals grid costs and revenues over a full run.
type FinancialSummary struct {
	ImportCost    float64 `json:"total_import_cost"`
	ExportRevenue float64 `json:"total_export_revenue"`
	// NetCost is cost minus revenue: positive means the household paid more
	// than it earned.
	NetCost float64 `json:"net_cost"`
}

// BatterySummary describes battery behaviour over a full run.
type BatterySummary struct {
	AverageSoCPct float64 `json:"average_soc_percent"`
	FinalSoCPct   float64 `json:"final_soc_percent"`
	CapacityKWh   float64 `json:"capacity_kwh"`
	Count         int     `json:"count"`
	TimesFull     int     `json:"times_full"`
	TimesEmpty    int     `json:"times_empty"`
}

// ReliabilitySummary describes inverter failures and unmet load.
type ReliabilitySummary struct {
	InverterFailures  int     `json:"inverter_failures"`
	DowntimeHours     float64 `json:"inverter_downtime_hours"`
	TotalUnmetLoadKWh float64 `json:"total_unmet_load_kwh"`
	HoursWithUnmet    float64 `json:"hours_with_unmet_load"`
	UnmetLoadPct      float64 `json:"unmet_load_percentage"`
}

// SystemSummary reports the configured component counts.
type SystemSummary struct {
	BatteryCount  int `json:"battery_count"`
	SolarCount    int `json:"solar_panel_count"`
	InverterCount int `json:"inverter_count"`
}

// RunResult is the complete outcome of one simulation run, handed to
// reporting collaborators as in-memory structured data.
type RunResult struct {
	RunID       string             `json:"run_id"`
	Seed        int64              `json:"seed"`
	Summary     EnergySummary      `json:"summary"`
	Financial   FinancialSummary   `json:"financial"`
	Battery     BatterySummary     `json:"battery"`
	Reliability ReliabilitySummary `json:"reliability"`
	System      SystemSummary      `json:"system"`
	Steps       []StepRecord       `json:"steps"`
	Days        []DaySummary       `json:"days"`
	Events      []Event            `json:"events"`
}
