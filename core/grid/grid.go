// Package grid models the utility connection: uncapped import with a cost,
// power-capped export with a revenue.
package grid

import "fmt"

// Config defines grid tariff parameters loaded from configuration.
type Config struct {
	// ImportCostPerKWh is the price paid for imported energy.
	ImportCostPerKWh float64 `json:"import_cost_per_kwh"`
	// ExportRevenuePerKWh is the price earned for exported energy.
	ExportRevenuePerKWh float64 `json:"export_revenue_per_kwh"`
	// ExportLimitKW caps export power. The cap applies to power, not energy,
	// and is re-applied on every step.
	ExportLimitKW float64 `json:"export_limit_kw"`
}

// SetDefaults applies typical residential tariffs.
func (c *Config) SetDefaults() {
	if c.ImportCostPerKWh == 0 {
		c.ImportCostPerKWh = 0.25
	}
	if c.ExportRevenuePerKWh == 0 {
		c.ExportRevenuePerKWh = 0.10
	}
	if c.ExportLimitKW == 0 {
		c.ExportLimitKW = 20.0
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.ImportCostPerKWh < 0 || c.ExportRevenuePerKWh < 0 {
		return fmt.Errorf("tariffs must not be negative")
	}
	if c.ExportLimitKW <= 0 {
		return fmt.Errorf("export_limit_kw must be positive")
	}
	return nil
}

// Grid is the energy ledger of the utility connection. All counters are
// monotonically non-decreasing.
type Grid struct {
	importCostPerKWh    float64
	exportRevenuePerKWh float64
	exportLimitKW       float64

	importedKWh float64
	exportedKWh float64
	cost        float64
	revenue     float64
}

// New creates a grid connection with the given tariffs and export cap.
func New(cfg Config) *Grid {
	return &Grid{
		importCostPerKWh:    cfg.ImportCostPerKWh,
		exportRevenuePerKWh: cfg.ExportRevenuePerKWh,
		exportLimitKW:       cfg.ExportLimitKW,
	}
}

// ImportEnergy buys energy from the grid. Import is never refused. Returns
// the cost of this import.
func (g *Grid) ImportEnergy(powerKW, dtHours float64) float64 {
	energy := powerKW * dtHours
	g.importedKWh += energy
	cost := energy * g.importCostPerKWh
	g.cost += cost
	return cost
}

// ExportEnergy sells energy to the grid, capping the power at the export
// limit. Returns the actual power exported so callers can detect shortfall.
func (g *Grid) ExportEnergy(powerKW, dtHours float64) float64 {
	actual := powerKW
	if actual > g.exportLimitKW {
		actual = g.exportLimitKW
	}
	energy := actual * dtHours
	g.exportedKWh += energy
	g.revenue += energy * g.exportRevenuePerKWh
	return actual
}

// TotalImported returns the cumulative imported energy in kWh.
func (g *Grid) TotalImported() float64 { return g.importedKWh }

// TotalExported returns the cumulative exported energy in kWh.
func (g *Grid) TotalExported() float64 { return g.exportedKWh }

// TotalCost returns the cumulative import cost.
func (g *Grid) TotalCost() float64 { return g.cost }

// TotalRevenue returns the cumulative export revenue.
func (g *Grid) TotalRevenue() float64 { return g.revenue }

// NetBalance returns revenue minus cost. Positive means profit.
func (g *Grid) NetBalance() float64 { return g.revenue - g.cost }
