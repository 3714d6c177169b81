package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
sim:
  simulation:
    duration_days: 7
    time_step_minutes: 30
    season: winter
    start_date: "2025-01-15"
    random_seed: 42
  battery:
    unit_capacity_kwh: 13.5
    efficiency: 0.9
    min_soc: 0.05
    count: 2
  solar:
    unit_peak_power_kw: 4.0
    count: 2
  inverter:
    unit_max_output_kw: 6.0
  load:
    base_load_kw: 0.5
    peak_hours_max_kw: 3.0
  grid:
    import_cost_per_kwh: 0.25
    export_revenue_per_kwh: 0.10
    export_limit_kw: 20.0
  energy_management:
    strategy: CHARGE_PRIORITY
output:
  format: json
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load(writeTemp(t, "config.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Sim.Simulation.DurationDays)
	assert.Equal(t, 30, cfg.Sim.Simulation.TimeStepMinutes)
	assert.Equal(t, "winter", cfg.Sim.Simulation.Season)
	require.NotNil(t, cfg.Sim.Simulation.RandomSeed)
	assert.Equal(t, int64(42), *cfg.Sim.Simulation.RandomSeed)
	assert.Equal(t, 2, cfg.Sim.Battery.Count)
	assert.Equal(t, "CHARGE_PRIORITY", cfg.Sim.EnergyManagement.Strategy)
	assert.Equal(t, "json", cfg.Output.Format)
	// Defaults fill the gaps.
	assert.Equal(t, 0.005, cfg.Sim.Inverter.FailureRate)
	assert.Equal(t, 18, cfg.Sim.Load.PeakHoursStart)
	assert.Equal(t, "results", cfg.Output.Directory)
}

func TestLoad_JSON(t *testing.T) {
	content := `{
  "sim": {
    "simulation": {"duration_days": 2, "season": "fall", "start_date": "2025-10-01"},
    "battery": {"unit_capacity_kwh": 10, "efficiency": 0.92, "min_soc": 0.1},
    "solar": {"unit_peak_power_kw": 5},
    "inverter": {"unit_max_output_kw": 4.5},
    "load": {"base_load_kw": 0.4, "peak_hours_max_kw": 2.5},
    "grid": {"import_cost_per_kwh": 0.3, "export_revenue_per_kwh": 0.08, "export_limit_kw": 15}
  }
}`
	cfg, err := Load(writeTemp(t, "config.json", content))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Sim.Simulation.DurationDays)
	assert.Equal(t, "LOAD_PRIORITY", cfg.Sim.EnergyManagement.Strategy)
	assert.Equal(t, 60, cfg.Sim.Simulation.TimeStepMinutes)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load(writeTemp(t, "config.toml", "x = 1"))
	assert.Error(t, err)
}

func TestLoad_InvalidStrategyFails(t *testing.T) {
	content := strings.Replace(sampleYAML, "CHARGE_PRIORITY", "BOGUS", 1)
	_, err := Load(writeTemp(t, "config.yaml", content))
	assert.Error(t, err)
}

func TestLoad_InvalidOutputFormatFails(t *testing.T) {
	content := strings.Replace(sampleYAML, "format: json", "format: xml", 1)
	_, err := Load(writeTemp(t, "config.yaml", content))
	assert.Error(t, err)
}
