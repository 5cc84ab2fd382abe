package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions shared across algorithms, backed by gonum

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// MeanAbs calculates the mean absolute value of a slice
func MeanAbs(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, val := range data {
		sum += math.Abs(val)
	}

	return sum / float64(len(data))
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// MinMax returns the minimum and maximum of a slice using gonum
func MinMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0.0, 0.0
	}
	return floats.Min(data), floats.Max(data)
}

// Clamp constrains a value to [lo, hi]
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// AllFinite reports whether every value is a finite float
func AllFinite(data []float64) bool {
	for _, val := range data {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return false
		}
	}
	return true
}
