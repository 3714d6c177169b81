package weather

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengrid/simulator/core/model"
)

func TestCloudCoverage_WithinBounds(t *testing.T) {
	for _, season := range []model.Season{model.Spring, model.Summer, model.Fall, model.Winter} {
		cc := New(season, rand.New(rand.NewSource(5)))
		for n := 0; n < 1000; n++ {
			v := cc.DailyCoverage()
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 0.9)
		}
	}
}

func TestCloudCoverage_SeasonShiftsDistribution(t *testing.T) {
	mean := func(season model.Season) float64 {
		cc := New(season, rand.New(rand.NewSource(11)))
		sum := 0.0
		const n = 5000
		for i := 0; i < n; i++ {
			sum += cc.DailyCoverage()
		}
		return sum / n
	}
	// Summer is weighted toward overcast, winter toward clear skies.
	assert.Greater(t, mean(model.Summer), mean(model.Winter))
}

func TestCloudCoverage_DeterministicForFixedSeed(t *testing.T) {
	a := New(model.Fall, rand.New(rand.NewSource(123)))
	b := New(model.Fall, rand.New(rand.NewSource(123)))
	for n := 0; n < 50; n++ {
		assert.Equal(t, a.DailyCoverage(), b.DailyCoverage())
	}
}

func TestParseSeason(t *testing.T) {
	s, err := model.ParseSeason("summer")
	require.NoError(t, err)
	assert.Equal(t, model.Summer, s)

	s, err = model.ParseSeason("Winter")
	require.NoError(t, err)
	assert.Equal(t, model.Winter, s)

	_, err = model.ParseSeason("monsoon")
	assert.Error(t, err)
}
