package inverter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverter_ClipsToRating(t *testing.T) {
	inv := New(5.0, 0, 4, 72, rand.New(rand.NewSource(1)))
	assert.Equal(t, 0.0, inv.ApplyLimit(0))
	assert.Equal(t, 3.2, inv.ApplyLimit(3.2))
	assert.Equal(t, 5.0, inv.ApplyLimit(5.0))
	assert.Equal(t, 5.0, inv.ApplyLimit(12.0))
}

func TestInverter_ZeroOutputWhileFailing(t *testing.T) {
	// Failure rate 1 guarantees the daily draw trips.
	inv := New(5.0, 1.0, 4, 72, rand.New(rand.NewSource(1)))
	inv.CheckFailure()
	require.False(t, inv.IsOperational())
	for _, raw := range []float64{0, 1, 5, 100} {
		assert.Equal(t, 0.0, inv.ApplyLimit(raw))
	}
}

func TestInverter_FailureDurationWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		inv := New(5.0, 1.0, 4, 72, rng)
		inv.CheckFailure()
		require.False(t, inv.IsOperational())
		d := inv.FailureHoursRemaining()
		assert.GreaterOrEqual(t, d, 4.0)
		assert.LessOrEqual(t, d, 72.0)
	}
}

func TestInverter_RecoversAfterDuration(t *testing.T) {
	inv := New(5.0, 1.0, 4, 4, rand.New(rand.NewSource(1)))
	inv.CheckFailure()
	require.False(t, inv.IsOperational())
	require.Equal(t, 4.0, inv.FailureHoursRemaining())

	inv.Update(1.0)
	assert.False(t, inv.IsOperational())
	inv.Update(3.0)
	assert.True(t, inv.IsOperational())
	assert.Equal(t, 0.0, inv.FailureHoursRemaining())
}

func TestInverter_CheckFailureDoesNotRestartOutage(t *testing.T) {
	inv := New(5.0, 1.0, 10, 10, rand.New(rand.NewSource(1)))
	inv.CheckFailure()
	inv.Update(3.0)
	remaining := inv.FailureHoursRemaining()

	inv.CheckFailure()
	assert.Equal(t, remaining, inv.FailureHoursRemaining())
}

func TestInverter_NeverFailsAtZeroRate(t *testing.T) {
	inv := New(5.0, 0.0, 4, 72, rand.New(rand.NewSource(7)))
	for day := 0; day < 365; day++ {
		inv.CheckFailure()
		require.True(t, inv.IsOperational())
	}
}

func TestConfig_DefaultsAndValidate(t *testing.T) {
	cfg := Config{UnitMaxOutputKW: 5.0}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.005, cfg.FailureRate)
	assert.Equal(t, 4, cfg.MinFailureDurationHours)
	assert.Equal(t, 72, cfg.MaxFailureDurationHours)

	bad := cfg
	bad.MaxFailureDurationHours = 2
	assert.Error(t, bad.Validate())
}
