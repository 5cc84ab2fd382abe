package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1.0, 2.0, 3.0}))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestMeanAbs(t *testing.T) {
	assert.Equal(t, 2.0, MeanAbs([]float64{-1.0, 2.0, -3.0}))
	assert.Equal(t, 0.0, MeanAbs(nil))
}

func TestRMS(t *testing.T) {
	assert.InDelta(t, 5.0, RMS([]float64{3.0, -4.0, 3.0, -4.0, 3.0, -4.0}), 1e-12)
	assert.Equal(t, 0.0, RMS(nil))
	assert.Equal(t, 0.0, RMS([]float64{0.0, 0.0}))
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax([]float64{3.0, -1.0, 4.0, 1.5})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 4.0, hi)

	lo, hi = MinMax(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
	assert.Equal(t, 0.0, Clamp(-0.3, 0.0, 1.0))
	assert.Equal(t, 1.0, Clamp(1.7, 0.0, 1.0))
}

func TestAllFinite(t *testing.T) {
	assert.True(t, AllFinite([]float64{1.0, -2.0, 0.0}))
	assert.True(t, AllFinite(nil))
	assert.False(t, AllFinite([]float64{1.0, math.NaN()}))
	assert.False(t, AllFinite([]float64{math.Inf(1)}))
}
