package config

import (
	"fmt"
	"strings"
)

// OutputConfig defines where and how run results are written.
type OutputConfig struct {
	// Directory receives the exported files.
	Directory string `json:"directory"`
	// Format is "csv" or "json".
	Format string `json:"format"`
	// WriteSteps toggles the row-per-step table.
	WriteSteps bool `json:"write_steps"`
	// WriteDays toggles the per-day summary table.
	WriteDays bool `json:"write_days"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Directory == "" {
		c.Directory = "results"
	}
	if c.Format == "" {
		c.Format = "csv"
	}
}

// Validate checks mandatory fields.
func (c OutputConfig) Validate() error {
	switch strings.ToLower(c.Format) {
	case "csv", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %s", c.Format)
	}
}
