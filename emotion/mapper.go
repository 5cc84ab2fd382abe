package emotion

import (
	"github.com/AriadneD/musicemotions/algorithms/common"
)

// AxisRow holds the six emotional axes of one analyzed second, each in
// [0, 1]
type AxisRow struct {
	TimeSec    int     `json:"time_sec"`
	Valence    float64 `json:"valence"`
	Energy     float64 `json:"energy"`
	Tension    float64 `json:"tension"`
	Warmth     float64 `json:"warmth"`
	Power      float64 `json:"power"`
	Complexity float64 `json:"complexity"`
}

// AxisTimeSeries is the ordered per-second sequence of axis rows
type AxisTimeSeries []AxisRow

// AverageProfile is the arithmetic mean of each axis over the whole
// analysis window
type AverageProfile struct {
	Valence    float64 `json:"valence"`
	Energy     float64 `json:"energy"`
	Tension    float64 `json:"tension"`
	Warmth     float64 `json:"warmth"`
	Power      float64 `json:"power"`
	Complexity float64 `json:"complexity"`
}

// MapAxes converts normalized feature rows into the six emotional axes
// using fixed, empirically tuned weights. The weights are part of the
// output contract: downstream consumers depend on their exact numeric
// behavior, so they are never adjusted per track.
//
// Each weighted sum is clipped hard to [0, 1]; normalization edge cases
// must not push unbounded values downstream.
func MapAxes(table NormalizedFeatureTable) AxisTimeSeries {
	series := make(AxisTimeSeries, len(table))

	for i, row := range table {
		// Loudness and rhythmic punch
		energy := 0.6*row.RMS +
			0.3*row.OnsetStrength +
			0.1*row.ZCR

		// Warm, tonally stable, harmonic content reads as positive;
		// bright and tense as harsh
		valence := 0.4*(1.0-row.Centroid) +
			0.2*(1.0-row.TonalTension) +
			0.3*row.LowMidEnergyRatio +
			0.1*(1.0-row.SpectralFlatness)

		// Tonal distance, noisiness, sharp attacks
		tension := 0.5*row.TonalTension +
			0.3*row.SpectralFlatness +
			0.2*row.OnsetStrength

		// Low-mid richness, lower brightness, less percussive drive
		warmth := 0.5*row.LowMidEnergyRatio +
			0.3*(1.0-row.Centroid) +
			0.2*(1.0-row.PercussiveRatio)

		// Loud, low-end rich, percussive
		power := 0.6*row.RMS +
			0.2*row.PercussiveRatio +
			0.2*row.LowMidEnergyRatio

		// Spread-out pitch classes, noisy spectrum, fine-grained motion
		complexity := 0.5*row.ChromaEntropy +
			0.3*row.SpectralFlatness +
			0.2*row.ZCR

		series[i] = AxisRow{
			TimeSec:    row.TimeSec,
			Valence:    common.Clamp(valence, 0.0, 1.0),
			Energy:     common.Clamp(energy, 0.0, 1.0),
			Tension:    common.Clamp(tension, 0.0, 1.0),
			Warmth:     common.Clamp(warmth, 0.0, 1.0),
			Power:      common.Clamp(power, 0.0, 1.0),
			Complexity: common.Clamp(complexity, 0.0, 1.0),
		}
	}

	return series
}

// Aggregate reduces an axis time series to its unweighted mean profile
func Aggregate(series AxisTimeSeries) AverageProfile {
	if len(series) == 0 {
		return AverageProfile{}
	}

	var profile AverageProfile

	for _, row := range series {
		profile.Valence += row.Valence
		profile.Energy += row.Energy
		profile.Tension += row.Tension
		profile.Warmth += row.Warmth
		profile.Power += row.Power
		profile.Complexity += row.Complexity
	}

	n := float64(len(series))
	profile.Valence /= n
	profile.Energy /= n
	profile.Tension /= n
	profile.Warmth /= n
	profile.Power /= n
	profile.Complexity /= n

	return profile
}
