package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKelly(t *testing.T) {
	t.Run("positive edge", func(t *testing.T) {
		// b = 1, f* = (0.6 - 0.4) / 1 = 0.2, half Kelly = 0.1
		result := Kelly(2.0, 0.6, 1000, 0.5)

		assert.InDelta(t, 0.2, result.FullKelly, 1e-9)
		assert.InDelta(t, 0.1, result.Fraction, 1e-9)
		assert.InDelta(t, 100, result.Stake, 1e-9)
		assert.InDelta(t, 0.2, result.ExpectedValue, 1e-9)
	})

	t.Run("negative edge clamps to zero", func(t *testing.T) {
		result := Kelly(1.8, 0.4, 1000, 1)

		assert.Less(t, result.FullKelly, 0.0)
		assert.Zero(t, result.Stake)
		assert.Zero(t, result.Fraction)
	})

	t.Run("odds at or below one", func(t *testing.T) {
		for _, odds := range []float64{1.0, 0.5, 0, -2} {
			for _, p := range []float64{0, 0.5, 1} {
				result := Kelly(odds, p, 1000, 1)
				assert.Zero(t, result.Stake, "odds %v p %v", odds, p)
				assert.Zero(t, result.Fraction)
			}
		}
	})

	t.Run("stake never negative", func(t *testing.T) {
		for _, odds := range []float64{1.01, 1.5, 2, 5, 20} {
			for p := 0.0; p <= 1.0; p += 0.05 {
				assert.GreaterOrEqual(t, Kelly(odds, p, 500, 0.25).Stake, 0.0)
			}
		}
	})
}

func TestExpectedValue(t *testing.T) {
	result := ExpectedValue(2.5, 0.5, 200)

	assert.InDelta(t, 0.25, result.EVPercent, 1e-9)
	assert.InDelta(t, 50, result.EVAbsolute, 1e-9)
	assert.InDelta(t, 40, result.BreakevenProbability, 1e-9)
	assert.InDelta(t, 10, result.Edge, 1e-9)
	assert.True(t, result.Positive)

	t.Run("matches expanded form", func(t *testing.T) {
		odds, p := 1.87, 0.51
		got := ExpectedValue(odds, p, 1).EVPercent
		assert.InDelta(t, p*(odds-1)-(1-p), got, 1e-12)
		assert.Equal(t, p*odds-1, got)
	})

	t.Run("negative", func(t *testing.T) {
		result := ExpectedValue(1.5, 0.5, 100)
		assert.False(t, result.Positive)
		assert.InDelta(t, -25, result.EVAbsolute, 1e-9)
	})

	t.Run("zero odds do not divide", func(t *testing.T) {
		result := ExpectedValue(0, 0.5, 100)
		assert.Zero(t, result.BreakevenProbability)
		assert.InDelta(t, -1, result.EVPercent, 1e-9)
	})
}

func TestBreakevenProbability(t *testing.T) {
	assert.Equal(t, 100/1.95, BreakevenProbability(1.95))
	assert.Zero(t, BreakevenProbability(-1))
}
