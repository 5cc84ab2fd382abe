package spectral

// ZeroCrossingRate calculates zero crossing rate over time-domain frames.
// High ZCR indicates noisy or bright content, low ZCR indicates tonal
// low-frequency content.
type ZeroCrossingRate struct {
	frameSize int
	hopSize   int
}

// NewZeroCrossingRate creates a new zero crossing rate calculator
func NewZeroCrossingRate() *ZeroCrossingRate {
	return &ZeroCrossingRate{
		frameSize: 2048,
		hopSize:   512,
	}
}

// NewZeroCrossingRateWithParams creates calculator with custom sub-frame
// parameters
func NewZeroCrossingRateWithParams(frameSize, hopSize int) *ZeroCrossingRate {
	return &ZeroCrossingRate{
		frameSize: frameSize,
		hopSize:   hopSize,
	}
}

// ComputeNormalized calculates normalized ZCR (0-1 range), the fraction
// of sample pairs whose sign changes
func (zcr *ZeroCrossingRate) ComputeNormalized(frame []float64) float64 {
	if len(frame) < 2 {
		return 0.0
	}

	crossings := zcr.countCrossings(frame)

	maxCrossings := len(frame) - 1
	return float64(crossings) / float64(maxCrossings)
}

func (zcr *ZeroCrossingRate) countCrossings(frame []float64) int {
	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i-1] >= 0 && frame[i] < 0) || (frame[i-1] < 0 && frame[i] >= 0) {
			crossings++
		}
	}
	return crossings
}

// ComputeFramesNormalized calculates normalized ZCR for overlapping
// sub-frames of a signal
func (zcr *ZeroCrossingRate) ComputeFramesNormalized(signal []float64) []float64 {
	if len(signal) < zcr.frameSize {
		return []float64{}
	}

	numFrames := (len(signal)-zcr.frameSize)/zcr.hopSize + 1
	zcrValues := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		startIdx := i * zcr.hopSize
		endIdx := startIdx + zcr.frameSize

		if endIdx > len(signal) {
			break
		}

		zcrValues[i] = zcr.ComputeNormalized(signal[startIdx:endIdx])
	}

	return zcrValues
}
