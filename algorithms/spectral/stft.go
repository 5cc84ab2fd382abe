package spectral

import (
	"fmt"
	"math/cmplx"
	"runtime"
	"sync"
)

// STFT provides Short-Time Fourier Transform functionality
type STFT struct {
	fft *FFT
}

// STFTResult holds the result of STFT analysis
type STFTResult struct {
	Magnitude      [][]float64    `json:"magnitude"`       // Time x Frequency magnitude matrix
	Phase          [][]float64    `json:"phase"`           // Time x Frequency phase matrix
	Complex        [][]complex128 `json:"-"`               // Raw complex spectrogram (not serialized)
	TimeFrames     int            `json:"time_frames"`     // Number of time frames
	FreqBins       int            `json:"freq_bins"`       // Number of frequency bins
	SampleRate     int            `json:"sample_rate"`     // Sample rate
	WindowSize     int            `json:"window_size"`     // FFT window size
	HopSize        int            `json:"hop_size"`        // Hop size between frames
	FreqResolution float64        `json:"freq_resolution"` // Frequency resolution (Hz/bin)
	TimeResolution float64        `json:"time_resolution"` // Time resolution (seconds/frame)
}

// Window interface for windowing functions
type Window interface {
	ApplyInPlace(signal []float64) error
}

// NewSTFT creates a new STFT calculator
func NewSTFT() *STFT {
	return &STFT{
		fft: NewFFT(),
	}
}

// ComputeWithWindow computes STFT with parallel frame processing and a
// custom window type. Frames never overlap in the output matrices, so
// workers write without synchronization and results are deterministic.
func (s *STFT) ComputeWithWindow(signal []float64, windowSize int, hopSize int, sampleRate int, window Window) (*STFTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive")
	}

	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive")
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1
	if numFrames <= 0 {
		return nil, fmt.Errorf("signal too short for given window size and hop size")
	}

	// Positive frequencies only
	freqBins := windowSize/2 + 1

	magnitude := make([][]float64, numFrames)
	phase := make([][]float64, numFrames)
	complexSpectrum := make([][]complex128, numFrames)

	for i := 0; i < numFrames; i++ {
		magnitude[i] = make([]float64, freqBins)
		phase[i] = make([]float64, freqBins)
		complexSpectrum[i] = make([]complex128, freqBins)
	}

	numWorkers := s.getOptimalWorkerCount(numFrames)

	type frameJob struct {
		frameIdx int
		startIdx int
		endIdx   int
	}

	jobs := make(chan frameJob, numFrames)

	var wg sync.WaitGroup

	for rangeIdx := 0; rangeIdx < numWorkers; rangeIdx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Reuse frame buffer for this worker
			frameBuffer := make([]float64, windowSize)

			for job := range jobs {
				if job.endIdx > len(signal) {
					continue
				}

				copy(frameBuffer, signal[job.startIdx:job.endIdx])

				if window != nil {
					if err := window.ApplyInPlace(frameBuffer); err != nil {
						continue
					}
				}

				fftResult := s.fft.Compute(frameBuffer)

				for i := 0; i < freqBins; i++ {
					complexSpectrum[job.frameIdx][i] = fftResult[i]
					magnitude[job.frameIdx][i] = cmplx.Abs(fftResult[i])
					phase[job.frameIdx][i] = cmplx.Phase(fftResult[i])
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for frameIdx := 0; frameIdx < numFrames; frameIdx++ {
			startIdx := frameIdx * hopSize
			endIdx := startIdx + windowSize

			if endIdx <= len(signal) {
				jobs <- frameJob{
					frameIdx: frameIdx,
					startIdx: startIdx,
					endIdx:   endIdx,
				}
			}
		}
	}()

	wg.Wait()

	result := &STFTResult{
		Magnitude:      magnitude,
		Phase:          phase,
		Complex:        complexSpectrum,
		TimeFrames:     numFrames,
		FreqBins:       freqBins,
		SampleRate:     sampleRate,
		WindowSize:     windowSize,
		HopSize:        hopSize,
		FreqResolution: float64(sampleRate) / float64(windowSize),
		TimeResolution: float64(hopSize) / float64(sampleRate),
	}

	return result, nil
}

// Inverse reconstructs a time-domain signal from a complex spectrogram by
// weighted overlap-add. The window must match the one used for analysis;
// a nil window means rectangular. Output length is
// (TimeFrames-1)*HopSize + WindowSize.
func (s *STFT) Inverse(result *STFTResult, window Window) ([]float64, error) {
	if result == nil || result.TimeFrames == 0 {
		return nil, fmt.Errorf("empty spectrogram")
	}

	if len(result.Complex) != result.TimeFrames {
		return nil, fmt.Errorf("complex spectrogram missing; Inverse requires the raw STFT")
	}

	windowSize := result.WindowSize
	hopSize := result.HopSize
	freqBins := result.FreqBins

	// Synthesis window coefficients; rectangular when unavailable
	coeffs := make([]float64, windowSize)
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	if cw, ok := window.(interface{ GetCoefficients() []float64 }); ok {
		wc := cw.GetCoefficients()
		if len(wc) != windowSize {
			return nil, fmt.Errorf("window size (%d) doesn't match STFT window size (%d)", len(wc), windowSize)
		}
		coeffs = wc
	}

	outputLen := (result.TimeFrames-1)*hopSize + windowSize
	output := make([]float64, outputLen)
	windowSum := make([]float64, outputLen)

	fullSpectrum := make([]complex128, windowSize)

	for t := 0; t < result.TimeFrames; t++ {
		// Rebuild the full spectrum from positive frequencies using
		// conjugate symmetry
		for k := 0; k < freqBins; k++ {
			fullSpectrum[k] = result.Complex[t][k]
		}
		for k := freqBins; k < windowSize; k++ {
			fullSpectrum[k] = cmplx.Conj(fullSpectrum[windowSize-k])
		}

		frame := s.fft.ComputeInverseReal(fullSpectrum)

		offset := t * hopSize
		for i := 0; i < windowSize; i++ {
			output[offset+i] += frame[i] * coeffs[i]
			windowSum[offset+i] += coeffs[i] * coeffs[i]
		}
	}

	// Normalize by the accumulated squared window energy
	for i := range output {
		if windowSum[i] > 1e-10 {
			output[i] /= windowSum[i]
		}
	}

	return output, nil
}

// getOptimalWorkerCount determines the optimal number of workers based on workload
func (s *STFT) getOptimalWorkerCount(numFrames int) int {
	numCPU := runtime.NumCPU()

	// For small workloads, don't over-parallelize
	if numFrames < 100 {
		return max(1, min(numCPU/2, numFrames))
	}

	if numFrames < 1000 {
		return min(numCPU, 8)
	}

	return numCPU
}
