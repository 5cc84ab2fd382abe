package chroma

import (
	"math"

	"github.com/AriadneD/musicemotions/algorithms/spectral"
)

// ChromaSTFT computes a chromagram (12-bin pitch-class energy
// distribution) from an STFT magnitude spectrogram. Frequencies are
// folded onto the 12 semitone classes (C, C#, ..., B) by MIDI note
// mapping, so all octaves of a pitch land in the same bin.
type ChromaSTFT struct {
	sampleRate int
	stft       *spectral.STFT
	tuningFreq float64 // A4 frequency (default 440 Hz)
	chromaBins int     // Number of chroma bins (always 12)
	minFreq    float64 // Minimum frequency to consider
	maxFreq    float64 // Maximum frequency to consider
}

// NewChromaSTFT creates a new STFT-based chromagram calculator
func NewChromaSTFT(sampleRate int, tuningFreq float64) *ChromaSTFT {
	return &ChromaSTFT{
		sampleRate: sampleRate,
		stft:       spectral.NewSTFT(),
		tuningFreq: tuningFreq,
		chromaBins: 12,
		minFreq:    80.0,   // Approximate E2
		maxFreq:    8000.0, // High enough for harmonics
	}
}

// NewChromaSTFTDefault creates chromagram with standard A4=440Hz tuning
func NewChromaSTFTDefault(sampleRate int) *ChromaSTFT {
	return NewChromaSTFT(sampleRate, 440.0)
}

// ComputeChroma computes a chromagram from an audio signal. Each frame
// is normalized to unit energy sum; silent frames stay all-zero.
func (cs *ChromaSTFT) ComputeChroma(signal []float64, windowSize, hopSize int, window spectral.Window) ([][]float64, error) {
	stftResult, err := cs.stft.ComputeWithWindow(signal, windowSize, hopSize, cs.sampleRate, window)
	if err != nil {
		return nil, err
	}

	return cs.convertSTFTToChroma(stftResult), nil
}

// convertSTFTToChroma converts STFT magnitude spectrogram to chromagram
func (cs *ChromaSTFT) convertSTFTToChroma(stftResult *spectral.STFTResult) [][]float64 {
	chromagram := make([][]float64, stftResult.TimeFrames)

	chromaMapping := cs.calculateChromaMapping(stftResult.FreqBins, stftResult.FreqResolution)

	for t := 0; t < stftResult.TimeFrames; t++ {
		chromagram[t] = make([]float64, cs.chromaBins)

		for f := 0; f < stftResult.FreqBins; f++ {
			chromaBin := chromaMapping[f]

			if chromaBin >= 0 && chromaBin < cs.chromaBins {
				// Magnitude squared for energy
				magnitude := stftResult.Magnitude[t][f]
				chromagram[t][chromaBin] += magnitude * magnitude
			}
		}

		cs.normalizeChromaFrame(chromagram[t])
	}

	return chromagram
}

// calculateChromaMapping maps FFT bins to chroma bins
func (cs *ChromaSTFT) calculateChromaMapping(freqBins int, freqResolution float64) []int {
	mapping := make([]int, freqBins)

	for f := 0; f < freqBins; f++ {
		frequency := float64(f) * freqResolution

		if frequency < cs.minFreq || frequency > cs.maxFreq {
			mapping[f] = -1 // Outside valid range
			continue
		}

		midiNote := cs.frequencyToMIDI(frequency)

		chromaBin := int(math.Round(midiNote)) % 12
		mapping[f] = chromaBin
	}

	return mapping
}

// frequencyToMIDI converts frequency to MIDI note number.
// A4 (tuning frequency) = MIDI note 69.
func (cs *ChromaSTFT) frequencyToMIDI(frequency float64) float64 {
	if frequency <= 0 {
		return 0
	}

	return 69.0 + 12.0*math.Log2(frequency/cs.tuningFreq)
}

// normalizeChromaFrame normalizes a single chroma frame to unit sum
func (cs *ChromaSTFT) normalizeChromaFrame(chromaFrame []float64) {
	totalEnergy := 0.0
	for _, energy := range chromaFrame {
		totalEnergy += energy
	}

	if totalEnergy > 1e-10 {
		for i := range chromaFrame {
			chromaFrame[i] /= totalEnergy
		}
	}
}

// MeanChroma averages a chromagram over time, yielding one 12-vector of
// pitch-class energy
func (cs *ChromaSTFT) MeanChroma(chromagram [][]float64) []float64 {
	meanChroma := make([]float64, cs.chromaBins)
	if len(chromagram) == 0 {
		return meanChroma
	}

	for t := range chromagram {
		for bin := range chromagram[t] {
			meanChroma[bin] += chromagram[t][bin]
		}
	}
	for bin := range meanChroma {
		meanChroma[bin] /= float64(len(chromagram))
	}

	return meanChroma
}

// GetChromaLabels returns the chroma bin labels
func (cs *ChromaSTFT) GetChromaLabels() []string {
	return []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
}
