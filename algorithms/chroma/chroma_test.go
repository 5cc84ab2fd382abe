package chroma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AriadneD/musicemotions/algorithms/windowing"
)

func TestChromaDominantPitchClass(t *testing.T) {
	sampleRate := 22050
	cs := NewChromaSTFTDefault(sampleRate)
	window := windowing.NewHann(2048, false)

	// A4 = 440 Hz, MIDI note 69, pitch class 9 (A)
	signal := make([]float64, sampleRate)
	for i := range signal {
		signal[i] = 0.8 * math.Sin(2.0*math.Pi*440.0*float64(i)/float64(sampleRate))
	}

	chromagram, err := cs.ComputeChroma(signal, 2048, 512, window)
	require.NoError(t, err)
	require.NotEmpty(t, chromagram)

	for _, frame := range chromagram {
		require.Len(t, frame, 12)

		dominant := 0
		for bin, energy := range frame {
			if energy > frame[dominant] {
				dominant = bin
			}
		}
		assert.Equal(t, 9, dominant)
	}
}

func TestChromaFramesUnitSum(t *testing.T) {
	sampleRate := 8000
	cs := NewChromaSTFTDefault(sampleRate)
	window := windowing.NewHann(1024, false)

	signal := make([]float64, sampleRate)
	for i := range signal {
		signal[i] = 0.3*math.Sin(2.0*math.Pi*261.63*float64(i)/float64(sampleRate)) +
			0.3*math.Sin(2.0*math.Pi*329.63*float64(i)/float64(sampleRate))
	}

	chromagram, err := cs.ComputeChroma(signal, 1024, 256, window)
	require.NoError(t, err)

	for _, frame := range chromagram {
		sum := 0.0
		for _, energy := range frame {
			assert.GreaterOrEqual(t, energy, 0.0)
			sum += energy
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestChromaEmptySignal(t *testing.T) {
	cs := NewChromaSTFTDefault(8000)

	_, err := cs.ComputeChroma(nil, 1024, 256, windowing.NewHann(1024, false))
	assert.Error(t, err)
}

func TestMeanChroma(t *testing.T) {
	cs := NewChromaSTFTDefault(8000)

	chromagram := [][]float64{
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}

	mean := cs.MeanChroma(chromagram)
	require.Len(t, mean, 12)
	assert.InDelta(t, 0.5, mean[0], 1e-12)
	assert.InDelta(t, 0.5, mean[1], 1e-12)
	assert.Equal(t, 0.0, mean[5])

	assert.Equal(t, make([]float64, 12), cs.MeanChroma(nil))
}

func TestChromaLabels(t *testing.T) {
	cs := NewChromaSTFTDefault(8000)

	labels := cs.GetChromaLabels()
	require.Len(t, labels, 12)
	assert.Equal(t, "C", labels[0])
	assert.Equal(t, "A", labels[9])
}

func TestTonnetzOneHotNorm(t *testing.T) {
	tn := NewTonnetz()

	// A single active pitch class projects onto every circle at full
	// radius: norm = sqrt(1 + 1 + 0.25) = 1.5 regardless of class
	for pitchClass := 0; pitchClass < 12; pitchClass++ {
		chromaFrame := make([]float64, 12)
		chromaFrame[pitchClass] = 1.0

		centroid := tn.Project(chromaFrame)
		require.Len(t, centroid, 6)

		norm := 0.0
		for _, v := range centroid {
			norm += v * v
		}
		assert.InDelta(t, 1.5, math.Sqrt(norm), 1e-9, "pitch class %d", pitchClass)
	}
}

func TestTonnetzUniformChromaIsNeutral(t *testing.T) {
	tn := NewTonnetz()

	// Evenly spread pitch classes cancel on every interval circle
	uniform := make([]float64, 12)
	for i := range uniform {
		uniform[i] = 1.0
	}

	for _, v := range tn.Project(uniform) {
		assert.InDelta(t, 0.0, v, 1e-9)
	}
}

func TestTonnetzDegenerateFrames(t *testing.T) {
	tn := NewTonnetz()

	assert.Equal(t, make([]float64, 6), tn.Project(make([]float64, 12)))
	assert.Equal(t, make([]float64, 6), tn.Project([]float64{1, 2, 3}))
	assert.Equal(t, make([]float64, 6), tn.Project(nil))
}

func TestTonnetzFrameNorms(t *testing.T) {
	tn := NewTonnetz()

	chromagram := [][]float64{
		make([]float64, 12),
		make([]float64, 12),
	}
	chromagram[1][4] = 1.0

	norms := tn.FrameNorms(tn.ProjectFrames(chromagram))
	require.Len(t, norms, 2)
	assert.Equal(t, 0.0, norms[0])
	assert.InDelta(t, 1.5, norms[1], 1e-9)

	assert.Empty(t, tn.ProjectFrames(nil))
}
