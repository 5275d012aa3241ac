package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const randomTrials = 100000

// The Monte Carlo engine settles a bet as won when Float64() < p, so the
// default source must hit every win probability and fill [0, 1) evenly.
func TestNewRandomSource_WinRates(t *testing.T) {
	for _, p := range []float64{0.05, 0.25, 0.5, 0.55, 0.9} {
		rng := NewRandomSource()

		wins := 0
		for i := 0; i < randomTrials; i++ {
			if rng.Float64() < p {
				wins++
			}
		}

		actual := float64(wins) / randomTrials
		assert.InDelta(t, p, actual, 0.02, "win probability %.2f", p)
	}
}

func TestNewRandomSource_Uniform(t *testing.T) {
	rng := NewRandomSource()
	buckets := make([]int, 10)

	for i := 0; i < randomTrials; i++ {
		v := rng.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %v outside [0, 1)", v)
		}
		buckets[int(v*10)]++
	}

	expected := float64(randomTrials) / 10
	chiSquared := 0.0
	for _, count := range buckets {
		chiSquared += math.Pow(float64(count)-expected, 2) / expected
	}

	// 9 degrees of freedom; 16.92 is the 95% critical value
	assert.Less(t, chiSquared, 50.0)
}
