package emotion

// NumFeatures is the number of raw acoustic features per frame
const NumFeatures = 10

// FeatureNames lists the raw features in canonical column order
var FeatureNames = [NumFeatures]string{
	"rms",
	"centroid",
	"bandwidth",
	"zcr",
	"spectral_flatness",
	"onset_strength",
	"percussive_ratio",
	"tonal_tension",
	"low_mid_energy_ratio",
	"chroma_entropy",
}

// FeatureRow holds the raw (or normalized) acoustic features of one
// one-second frame
type FeatureRow struct {
	TimeSec           int     `json:"time_sec"`
	RMS               float64 `json:"rms"`
	Centroid          float64 `json:"centroid"`
	Bandwidth         float64 `json:"bandwidth"`
	ZCR               float64 `json:"zcr"`
	SpectralFlatness  float64 `json:"spectral_flatness"`
	OnsetStrength     float64 `json:"onset_strength"`
	PercussiveRatio   float64 `json:"percussive_ratio"`
	TonalTension      float64 `json:"tonal_tension"`
	LowMidEnergyRatio float64 `json:"low_mid_energy_ratio"`
	ChromaEntropy     float64 `json:"chroma_entropy"`
}

// featureValues returns the row's features in canonical column order
func (r *FeatureRow) featureValues() [NumFeatures]float64 {
	return [NumFeatures]float64{
		r.RMS,
		r.Centroid,
		r.Bandwidth,
		r.ZCR,
		r.SpectralFlatness,
		r.OnsetStrength,
		r.PercussiveRatio,
		r.TonalTension,
		r.LowMidEnergyRatio,
		r.ChromaEntropy,
	}
}

// setFeatureValues fills the row's features from canonical column order
func (r *FeatureRow) setFeatureValues(values [NumFeatures]float64) {
	r.RMS = values[0]
	r.Centroid = values[1]
	r.Bandwidth = values[2]
	r.ZCR = values[3]
	r.SpectralFlatness = values[4]
	r.OnsetStrength = values[5]
	r.PercussiveRatio = values[6]
	r.TonalTension = values[7]
	r.LowMidEnergyRatio = values[8]
	r.ChromaEntropy = values[9]
}

// RawFeatureTable is the ordered per-second feature table before
// normalization; row i has TimeSec == i
type RawFeatureTable []FeatureRow

// NormalizedFeatureTable has the same shape as RawFeatureTable with
// every feature column independently rescaled to [0, 1]
type NormalizedFeatureTable []FeatureRow
