package hpss

import (
	"fmt"
	"math"
	"sort"

	"github.com/AriadneD/musicemotions/algorithms/spectral"
)

// Separator performs median-filtering harmonic/percussive source
// separation.
//
// The idea: in a magnitude spectrogram, harmonic content forms horizontal
// ridges (stable frequency over time) while percussive content forms
// vertical ridges (broadband at a single instant). Median filtering the
// spectrogram along time enhances the harmonic part, along frequency the
// percussive part. Soft Wiener-style masks built from the two enhanced
// spectrograms split the original complex STFT, and inverse STFT
// reconstructs each component in the time domain.
type Separator struct {
	stft             *spectral.STFT
	harmonicKernel   int     // median filter length along time
	percussiveKernel int     // median filter length along frequency
	maskPower        float64 // soft mask exponent
}

// Components holds the separated time-domain signals. Both slices have
// the same length as the input signal.
type Components struct {
	Harmonic   []float64
	Percussive []float64
}

// NewSeparator creates a separator with standard kernel lengths (31) and
// soft masks of power 2
func NewSeparator() *Separator {
	return &Separator{
		stft:             spectral.NewSTFT(),
		harmonicKernel:   31,
		percussiveKernel: 31,
		maskPower:        2.0,
	}
}

// NewSeparatorWithParams creates a separator with custom kernel lengths
// and mask power
func NewSeparatorWithParams(harmonicKernel, percussiveKernel int, maskPower float64) *Separator {
	return &Separator{
		stft:             spectral.NewSTFT(),
		harmonicKernel:   harmonicKernel,
		percussiveKernel: percussiveKernel,
		maskPower:        maskPower,
	}
}

// Separate decomposes a signal into harmonic and percussive components
func (s *Separator) Separate(signal []float64, sampleRate, windowSize, hopSize int, window spectral.Window) (*Components, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	stftResult, err := s.stft.ComputeWithWindow(signal, windowSize, hopSize, sampleRate, window)
	if err != nil {
		return nil, fmt.Errorf("hpss stft: %w", err)
	}

	harmonicEnhanced := s.medianFilterTime(stftResult.Magnitude)
	percussiveEnhanced := s.medianFilterFreq(stftResult.Magnitude)

	harmonicSpec, percussiveSpec := s.applyMasks(stftResult, harmonicEnhanced, percussiveEnhanced)

	harmonic, err := s.reconstruct(harmonicSpec, window, len(signal))
	if err != nil {
		return nil, fmt.Errorf("hpss harmonic reconstruction: %w", err)
	}

	percussive, err := s.reconstruct(percussiveSpec, window, len(signal))
	if err != nil {
		return nil, fmt.Errorf("hpss percussive reconstruction: %w", err)
	}

	return &Components{
		Harmonic:   harmonic,
		Percussive: percussive,
	}, nil
}

// medianFilterTime runs a median filter along the time axis, one
// frequency bin at a time
func (s *Separator) medianFilterTime(magnitude [][]float64) [][]float64 {
	numFrames := len(magnitude)
	if numFrames == 0 {
		return nil
	}
	freqBins := len(magnitude[0])

	filtered := make([][]float64, numFrames)
	for t := range filtered {
		filtered[t] = make([]float64, freqBins)
	}

	half := s.harmonicKernel / 2
	scratch := make([]float64, 0, s.harmonicKernel)

	for f := 0; f < freqBins; f++ {
		for t := 0; t < numFrames; t++ {
			lo := max(0, t-half)
			hi := min(numFrames-1, t+half)

			scratch = scratch[:0]
			for k := lo; k <= hi; k++ {
				scratch = append(scratch, magnitude[k][f])
			}
			filtered[t][f] = median(scratch)
		}
	}

	return filtered
}

// medianFilterFreq runs a median filter along the frequency axis, one
// time frame at a time
func (s *Separator) medianFilterFreq(magnitude [][]float64) [][]float64 {
	numFrames := len(magnitude)
	if numFrames == 0 {
		return nil
	}
	freqBins := len(magnitude[0])

	filtered := make([][]float64, numFrames)
	for t := range filtered {
		filtered[t] = make([]float64, freqBins)
	}

	half := s.percussiveKernel / 2
	scratch := make([]float64, 0, s.percussiveKernel)

	for t := 0; t < numFrames; t++ {
		for f := 0; f < freqBins; f++ {
			lo := max(0, f-half)
			hi := min(freqBins-1, f+half)

			scratch = scratch[:0]
			for k := lo; k <= hi; k++ {
				scratch = append(scratch, magnitude[t][k])
			}
			filtered[t][f] = median(scratch)
		}
	}

	return filtered
}

// applyMasks splits the complex spectrogram with soft masks derived from
// the enhanced magnitude spectrograms
func (s *Separator) applyMasks(stftResult *spectral.STFTResult, harmonicEnhanced, percussiveEnhanced [][]float64) (*spectral.STFTResult, *spectral.STFTResult) {
	numFrames := stftResult.TimeFrames
	freqBins := stftResult.FreqBins

	harmonicComplex := make([][]complex128, numFrames)
	percussiveComplex := make([][]complex128, numFrames)

	for t := 0; t < numFrames; t++ {
		harmonicComplex[t] = make([]complex128, freqBins)
		percussiveComplex[t] = make([]complex128, freqBins)

		for f := 0; f < freqBins; f++ {
			hp := pow(harmonicEnhanced[t][f], s.maskPower)
			pp := pow(percussiveEnhanced[t][f], s.maskPower)
			denom := hp + pp

			// Empty bins split evenly; the complex value is ~0 anyway
			maskH := 0.5
			maskP := 0.5
			if denom > 1e-12 {
				maskH = hp / denom
				maskP = pp / denom
			}

			harmonicComplex[t][f] = stftResult.Complex[t][f] * complex(maskH, 0)
			percussiveComplex[t][f] = stftResult.Complex[t][f] * complex(maskP, 0)
		}
	}

	harmonicSpec := *stftResult
	harmonicSpec.Complex = harmonicComplex

	percussiveSpec := *stftResult
	percussiveSpec.Complex = percussiveComplex

	return &harmonicSpec, &percussiveSpec
}

// reconstruct inverts a masked spectrogram and fits the result to the
// original signal length
func (s *Separator) reconstruct(spec *spectral.STFTResult, window spectral.Window, signalLen int) ([]float64, error) {
	inverted, err := s.stft.Inverse(spec, window)
	if err != nil {
		return nil, err
	}

	output := make([]float64, signalLen)
	copy(output, inverted)
	return output, nil
}

// median returns the median of a slice; the slice is reordered in place
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sort.Float64s(values)

	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return 0.5 * (values[mid-1] + values[mid])
}

func pow(base, exp float64) float64 {
	// Power 2 is the default and the hot path
	if exp == 2.0 {
		return base * base
	}
	return math.Pow(base, exp)
}
