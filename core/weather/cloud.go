// Package weather draws daily cloud coverage from seasonal patterns.
package weather

import (
	"math/rand"

	"github.com/greengrid/simulator/core/model"
)

// coverageLevel is a discrete weather category with its coverage range.
type coverageLevel struct {
	min, max float64
}

// Levels: clear, partly cloudy, mostly cloudy, overcast.
var coverageRanges = [4]coverageLevel{
	{0.0, 0.2},
	{0.2, 0.6},
	{0.6, 0.8},
	{0.8, 0.9},
}

// seasonWeights holds categorical probabilities per season, indexed by level.
var seasonWeights = map[model.Season][4]float64{
	model.Spring: {0.1, 0.3, 0.4, 0.2},
	model.Summer: {0.05, 0.15, 0.3, 0.5},
	model.Fall:   {0.2, 0.4, 0.3, 0.1},
	model.Winter: {0.3, 0.4, 0.2, 0.1},
}

// CloudCoverage generates one coverage fraction per simulated day.
type CloudCoverage struct {
	weights [4]float64
	rng     *rand.Rand
}

// New creates a generator for the given season drawing randomness from rng.
func New(season model.Season, rng *rand.Rand) *CloudCoverage {
	return &CloudCoverage{weights: seasonWeights[season], rng: rng}
}

// DailyCoverage draws the cloud coverage fraction for one day: a weather
// level from the seasonal categorical distribution, then a uniform fraction
// within that level's range. Result lies in [0, 0.9).
func (c *CloudCoverage) DailyCoverage() float64 {
	level := c.drawLevel()
	r := coverageRanges[level]
	return r.min + c.rng.Float64()*(r.max-r.min)
}

func (c *CloudCoverage) drawLevel() int {
	u := c.rng.Float64()
	acc := 0.0
	for i, w := range c.weights {
		acc += w
		if u < acc {
			return i
		}
	}
	return len(c.weights) - 1
}
