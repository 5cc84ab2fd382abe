package temporal

import (
	"github.com/AriadneD/musicemotions/algorithms/common"
	"github.com/AriadneD/musicemotions/algorithms/spectral"
)

// OnsetStrength estimates rhythmic drive from frame-to-frame spectral
// change. The envelope is positive spectral flux: energy increases
// between consecutive spectra, which spike at note and percussion
// onsets. No peak picking happens here; consumers reduce the envelope
// themselves.
type OnsetStrength struct {
	spectralFlux *spectral.SpectralFlux
}

// NewOnsetStrength creates a new onset strength estimator
func NewOnsetStrength() *OnsetStrength {
	return &OnsetStrength{
		spectralFlux: spectral.NewSpectralFlux(),
	}
}

// ComputeEnvelope calculates the onset strength envelope from a
// magnitude spectrogram. The envelope has one value per frame
// transition (len(spectrogram)-1 values).
func (os *OnsetStrength) ComputeEnvelope(spectrogram [][]float64) []float64 {
	return os.spectralFlux.Compute(spectrogram)
}

// ComputeMean reduces the envelope to its arithmetic mean. Spectrograms
// with fewer than two frames have no transitions and yield 0.
func (os *OnsetStrength) ComputeMean(spectrogram [][]float64) float64 {
	envelope := os.ComputeEnvelope(spectrogram)
	if len(envelope) == 0 {
		return 0.0
	}

	return common.Mean(envelope)
}
