package emotion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmptyFrame(t *testing.T) {
	extractor := NewFrameExtractor(22050, nil)

	row := extractor.Extract(nil)
	assert.Equal(t, [NumFeatures]float64{}, row.featureValues())

	row = extractor.Extract([]float64{})
	assert.Equal(t, [NumFeatures]float64{}, row.featureValues())
}

func TestExtractSineTone(t *testing.T) {
	sampleRate := 22050
	extractor := NewFrameExtractor(sampleRate, nil)

	frame := genTone(440.0, 0.5, sampleRate, 1)
	row := extractor.Extract(frame)

	for col, val := range row.featureValues() {
		require.False(t, math.IsNaN(val), "column %s", FeatureNames[col])
		require.False(t, math.IsInf(val, 0), "column %s", FeatureNames[col])
	}

	// rms of a sine is amp/sqrt(2) in the time domain; the spectral
	// estimate tracks the same loudness ordering but not the scale, so
	// only require a clearly nonzero value
	assert.Greater(t, row.RMS, 0.0)

	// Spectral leakage smears the peak but the centroid stays in the
	// neighborhood of the tone
	assert.Greater(t, row.Centroid, 100.0)
	assert.Less(t, row.Centroid, 2500.0)

	// A 440 Hz sine crosses zero about 880 times per second
	assert.InDelta(t, 880.0/float64(sampleRate), row.ZCR, 0.01)

	// Pure tones are spectrally peaked, not flat
	assert.Less(t, row.SpectralFlatness, 0.3)

	// A steady tone is almost entirely harmonic
	assert.Less(t, row.PercussiveRatio, 0.5)

	// Single pitch class concentrates the chroma distribution
	assert.GreaterOrEqual(t, row.ChromaEntropy, 0.0)
	assert.Less(t, row.ChromaEntropy, math.Log2(12.0))

	assert.GreaterOrEqual(t, row.LowMidEnergyRatio, 0.0)
	assert.LessOrEqual(t, row.LowMidEnergyRatio, 1.0)
	assert.GreaterOrEqual(t, row.TonalTension, 0.0)
}

func TestExtractNoiseVersusTone(t *testing.T) {
	sampleRate := 8000
	extractor := NewFrameExtractor(sampleRate, nil)

	rng := rand.New(rand.NewSource(42))
	noise := make([]float64, sampleRate)
	for i := range noise {
		noise[i] = 0.5 * (2.0*rng.Float64() - 1.0)
	}

	noiseRow := extractor.Extract(noise)
	toneRow := extractor.Extract(genTone(440.0, 0.5, sampleRate, 1))

	assert.Greater(t, noiseRow.SpectralFlatness, toneRow.SpectralFlatness)
	assert.Greater(t, noiseRow.ChromaEntropy, toneRow.ChromaEntropy)
	assert.Greater(t, noiseRow.ZCR, toneRow.ZCR)
}

func TestExtractSilentFrame(t *testing.T) {
	sampleRate := 8000
	extractor := NewFrameExtractor(sampleRate, nil)

	row := extractor.Extract(make([]float64, sampleRate))

	// Guarded ratios fall back to zero instead of dividing by zero
	assert.Equal(t, 0.0, row.RMS)
	assert.Equal(t, 0.0, row.Centroid)
	assert.Equal(t, 0.0, row.ZCR)
	assert.Equal(t, 0.0, row.PercussiveRatio)
	assert.Equal(t, 0.0, row.LowMidEnergyRatio)
	for col, val := range row.featureValues() {
		require.False(t, math.IsNaN(val), "column %s", FeatureNames[col])
	}
}
