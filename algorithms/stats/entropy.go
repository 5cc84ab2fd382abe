package stats

import (
	"math"
)

// Entropy computes Shannon entropy of discrete probability
// distributions.
//
// Higher entropy means the distribution is more evenly spread; for a
// pitch-class distribution that reads as harmonic complexity, for a
// spectrum as noisiness.
type Entropy struct {
	baseLog float64 // Logarithm base (2 = bits)
	epsilon float64 // Guard against log(0)
}

// NewEntropy creates an entropy analyzer measuring in bits (base 2)
func NewEntropy() *Entropy {
	return &Entropy{
		baseLog: 2.0,
		epsilon: 1e-9,
	}
}

// NewEntropyWithBase creates an entropy analyzer with a custom log base
func NewEntropyWithBase(base float64) *Entropy {
	return &Entropy{
		baseLog: base,
		epsilon: 1e-9,
	}
}

// ComputeDistribution calculates the Shannon entropy of a non-negative
// weight vector. The vector is normalized to sum to 1 first, so raw
// energy vectors can be passed directly. An all-zero vector yields 0.
func (e *Entropy) ComputeDistribution(weights []float64) float64 {
	if len(weights) == 0 {
		return 0.0
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}

	entropy := 0.0
	for _, w := range weights {
		p := w / (total + e.epsilon)
		entropy -= p * math.Log(p+e.epsilon)
	}

	return entropy / math.Log(e.baseLog)
}

// MaxEntropy returns the largest possible entropy for a distribution of
// the given size (the uniform distribution's entropy)
func (e *Entropy) MaxEntropy(numBins int) float64 {
	if numBins <= 1 {
		return 0.0
	}
	return math.Log(float64(numBins)) / math.Log(e.baseLog)
}
