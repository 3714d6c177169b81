package ems

import (
	"github.com/greengrid/simulator/core/model"
)

// Config defines the energy management settings loaded from configuration.
type Config struct {
	// Strategy is the dispatch ordering name: LOAD_PRIORITY,
	// CHARGE_PRIORITY or PRODUCE_PRIORITY.
	Strategy string `json:"strategy"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = model.StrategyLoadPriority.String()
	}
}

// Validate checks the strategy name.
func (c Config) Validate() error {
	_, err := model.ParseStrategy(c.Strategy)
	return err
}
