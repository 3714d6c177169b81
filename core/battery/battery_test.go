package battery

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBattery_StartsAtHalfCharge(t *testing.T) {
	b := New(13.5, 0.9, 0.05)
	assert.InDelta(t, 50.0, b.SoC(), 1e-9)
	assert.InDelta(t, 6.75, b.StoredEnergy(), 1e-9)
}

func TestBattery_ChargeConsumesFromSource(t *testing.T) {
	// Plenty of headroom: starts at 15 of 30 kWh.
	b := New(30.0, 0.9, 0.05)
	consumed := b.Charge(10.0)

	oneWay := math.Sqrt(0.9)
	// With enough headroom everything offered is consumed; the store gains
	// offered*sqrt(eff).
	require.InDelta(t, 10.0, consumed, 1e-9)
	assert.InDelta(t, 15.0+10.0*oneWay, b.StoredEnergy(), 1e-9)
}

func TestBattery_ChargeLimitedByHeadroom(t *testing.T) {
	b := New(13.5, 0.9, 0.05)
	consumed := b.Charge(10.0)

	oneWay := math.Sqrt(0.9)
	// Headroom is 6.75 kWh, less than the usable 10*sqrt(0.9)=9.4868 kWh,
	// so the store fills up and the source only pays for what fit.
	require.InDelta(t, 6.75/oneWay, consumed, 1e-9)
	assert.InDelta(t, 13.5, b.StoredEnergy(), 1e-9)
	assert.True(t, b.IsFull(99.9))
}

func TestBattery_ChargeRejectsOnlyForCapacity(t *testing.T) {
	b := New(10.0, 0.9, 0.05)
	// Fill almost completely.
	b.Charge(100.0)
	require.True(t, b.IsFull(99.9))

	consumed := b.Charge(5.0)
	assert.InDelta(t, 0.0, consumed, 1e-9)
	assert.LessOrEqual(t, b.StoredEnergy(), b.Capacity())
}

func TestBattery_DischargeRespectsFloor(t *testing.T) {
	b := New(10.0, 0.9, 0.10)
	delivered := b.Discharge(100.0)

	oneWay := math.Sqrt(0.9)
	// Only stored-floor = 5-1 = 4 kWh can be extracted.
	assert.InDelta(t, 4.0*oneWay, delivered, 1e-9)
	assert.True(t, b.IsEmpty())

	// Further discharge yields nothing.
	assert.InDelta(t, 0.0, b.Discharge(1.0), 1e-9)
}

func TestBattery_RoundTripMatchesEfficiency(t *testing.T) {
	for _, eff := range []float64{0.8, 0.9, 0.95, 1.0} {
		b := New(100.0, eff, 0.0)
		offered := 5.0
		consumed := b.Charge(offered)
		require.InDelta(t, offered, consumed, 1e-9)

		stored := offered * math.Sqrt(eff)
		delivered := b.Discharge(stored * math.Sqrt(eff))
		assert.InDelta(t, offered*eff, delivered, 1e-9, "efficiency %v", eff)
	}
}

func TestBattery_InvariantHolds(t *testing.T) {
	b := New(13.5, 0.9, 0.05)
	ops := []struct {
		charge bool
		amount float64
	}{
		{true, 3.0}, {false, 8.0}, {false, 20.0}, {true, 50.0},
		{true, 1.0}, {false, 0.5}, {false, 100.0}, {true, 0.0},
	}
	for _, op := range ops {
		if op.charge {
			b.Charge(op.amount)
		} else {
			b.Discharge(op.amount)
		}
		assert.GreaterOrEqual(t, b.StoredEnergy(), 13.5*0.05-1e-9)
		assert.LessOrEqual(t, b.StoredEnergy(), 13.5+1e-9)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{UnitCapacityKWh: 13.5, Efficiency: 0.9, MinSoC: 0.05}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Count)

	bad := cfg
	bad.Efficiency = 1.2
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.MinSoC = 1.0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.UnitCapacityKWh = 0
	assert.Error(t, bad.Validate())
}
