package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{ImportCostPerKWh: 0.25, ExportRevenuePerKWh: 0.10, ExportLimitKW: 20.0}
}

func TestGrid_ImportAccumulates(t *testing.T) {
	g := New(testConfig())

	cost := g.ImportEnergy(4.0, 1.0)
	assert.InDelta(t, 1.0, cost, 1e-9)

	cost = g.ImportEnergy(2.0, 0.5)
	assert.InDelta(t, 0.25, cost, 1e-9)

	assert.InDelta(t, 5.0, g.TotalImported(), 1e-9)
	assert.InDelta(t, 1.25, g.TotalCost(), 1e-9)
}

func TestGrid_ExportCapIsPowerNotEnergy(t *testing.T) {
	g := New(testConfig())
	for _, dt := range []float64{0.25, 0.5, 1.0, 2.0} {
		actual := g.ExportEnergy(35.0, dt)
		assert.Equal(t, 20.0, actual, "dt %v", dt)
	}
}

func TestGrid_ExportBelowCapPassesThrough(t *testing.T) {
	g := New(testConfig())
	actual := g.ExportEnergy(7.5, 1.0)
	assert.Equal(t, 7.5, actual)
	assert.InDelta(t, 7.5, g.TotalExported(), 1e-9)
	assert.InDelta(t, 0.75, g.TotalRevenue(), 1e-9)
}

func TestGrid_NetBalance(t *testing.T) {
	g := New(testConfig())
	g.ImportEnergy(10.0, 1.0) // cost 2.50
	g.ExportEnergy(20.0, 1.0) // revenue 2.00
	assert.InDelta(t, -0.5, g.NetBalance(), 1e-9)
}

func TestGrid_CountersMonotone(t *testing.T) {
	g := New(testConfig())
	prevImp, prevExp := 0.0, 0.0
	for n := 0; n < 20; n++ {
		g.ImportEnergy(float64(n%3), 0.5)
		g.ExportEnergy(float64(n%5), 0.5)
		require.GreaterOrEqual(t, g.TotalImported(), prevImp)
		require.GreaterOrEqual(t, g.TotalExported(), prevExp)
		prevImp, prevExp = g.TotalImported(), g.TotalExported()
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, testConfig().Validate())

	bad := testConfig()
	bad.ExportLimitKW = 0
	assert.Error(t, bad.Validate())

	bad = testConfig()
	bad.ImportCostPerKWh = -1
	assert.Error(t, bad.Validate())
}
