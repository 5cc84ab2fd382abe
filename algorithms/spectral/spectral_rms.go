package spectral

import (
	"math"
)

// SpectralRMS computes the root-mean-square magnitude of spectra.
// Computing RMS from the magnitude spectrogram rather than the raw
// samples keeps it consistent with the other per-frame spectral features.
type SpectralRMS struct {
	// No state needed for now
}

// NewSpectralRMS creates a new spectral RMS calculator
func NewSpectralRMS() *SpectralRMS {
	return &SpectralRMS{}
}

// Compute calculates the RMS of a single magnitude spectrum
func (sr *SpectralRMS) Compute(magnitudeSpectrum []float64) float64 {
	if len(magnitudeSpectrum) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, magnitude := range magnitudeSpectrum {
		sumSquares += magnitude * magnitude
	}

	return math.Sqrt(sumSquares / float64(len(magnitudeSpectrum)))
}

// ComputeFrames processes multiple frames efficiently
func (sr *SpectralRMS) ComputeFrames(spectrogram [][]float64) []float64 {
	if len(spectrogram) == 0 {
		return []float64{}
	}

	rms := make([]float64, len(spectrogram))

	for t, magnitudeSpectrum := range spectrogram {
		rms[t] = sr.Compute(magnitudeSpectrum)
	}

	return rms
}
