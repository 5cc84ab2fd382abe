package spectral

import (
	"math"
)

// SpectralFlux computes spectral flux, a measure of frame-to-frame
// spectral change
type SpectralFlux struct {
	// No state needed for now
}

// NewSpectralFlux creates a new spectral flux calculator
func NewSpectralFlux() *SpectralFlux {
	return &SpectralFlux{}
}

// Compute calculates spectral flux for a spectrogram, counting only
// positive changes (energy increases). This is the front end for onset
// strength estimation.
func (sf *SpectralFlux) Compute(spectrogram [][]float64) []float64 {
	if len(spectrogram) < 2 {
		return []float64{}
	}

	flux := make([]float64, len(spectrogram)-1)

	for t := 1; t < len(spectrogram); t++ {
		sum := 0.0
		for f := 0; f < len(spectrogram[t]); f++ {
			diff := spectrogram[t][f] - spectrogram[t-1][f]
			if diff > 0 {
				sum += diff * diff
			}
		}
		flux[t-1] = math.Sqrt(sum)
	}

	return flux
}

// ComputeAllChanges calculates spectral flux including both positive and
// negative changes
func (sf *SpectralFlux) ComputeAllChanges(spectrogram [][]float64) []float64 {
	if len(spectrogram) < 2 {
		return []float64{}
	}

	flux := make([]float64, len(spectrogram)-1)

	for t := 1; t < len(spectrogram); t++ {
		sum := 0.0
		for f := 0; f < len(spectrogram[t]); f++ {
			diff := spectrogram[t][f] - spectrogram[t-1][f]
			sum += diff * diff
		}
		flux[t-1] = math.Sqrt(sum)
	}

	return flux
}
