package temporal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnsetStrengthEnvelope(t *testing.T) {
	onset := NewOnsetStrength()

	spectrogram := [][]float64{
		{1.0, 1.0},
		{1.0, 1.0},
		{1.0, 4.0},
		{1.0, 0.0},
	}

	envelope := onset.ComputeEnvelope(spectrogram)
	require.Len(t, envelope, 3)

	assert.InDelta(t, 0.0, envelope[0], 1e-12)
	assert.InDelta(t, 3.0, envelope[1], 1e-12)
	// Energy decreases don't count as onsets
	assert.InDelta(t, 0.0, envelope[2], 1e-12)
}

func TestOnsetStrengthMean(t *testing.T) {
	onset := NewOnsetStrength()

	spectrogram := [][]float64{
		{0.0, 0.0},
		{3.0, 4.0},
		{3.0, 4.0},
	}

	// Transitions: 5.0 then 0.0
	assert.InDelta(t, 2.5, onset.ComputeMean(spectrogram), 1e-12)
}

func TestOnsetStrengthTooFewFrames(t *testing.T) {
	onset := NewOnsetStrength()

	assert.Equal(t, 0.0, onset.ComputeMean(nil))
	assert.Equal(t, 0.0, onset.ComputeMean([][]float64{{1.0, 2.0}}))
	assert.Empty(t, onset.ComputeEnvelope([][]float64{{1.0, 2.0}}))
}

func TestOnsetStrengthSteadySpectrum(t *testing.T) {
	onset := NewOnsetStrength()

	steady := [][]float64{
		{0.5, 0.3, 0.1},
		{0.5, 0.3, 0.1},
		{0.5, 0.3, 0.1},
	}

	assert.Equal(t, 0.0, onset.ComputeMean(steady))
}
