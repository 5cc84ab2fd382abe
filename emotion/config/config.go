package config

// AnalysisConfig holds the fixed parameters of the emotional signature
// pipeline. Sample rate is not configuration: it arrives with the
// decoded waveform and doubles as the frame length (one second per
// frame).
type AnalysisConfig struct {
	// Analysis window length in seconds; audio beyond it is ignored
	SnippetSeconds int `json:"snippet_seconds"`

	// STFT parameters. These are fixed constants of the feature
	// design; the axis weights were tuned against them.
	WindowSize int `json:"window_size"`
	HopSize    int `json:"hop_size"`

	// Mel analysis for the low/mid energy ratio
	MelBands    int     `json:"mel_bands"`
	MelMaxFreq  float64 `json:"mel_max_freq"`
	LowMidBands int     `json:"low_mid_bands"`

	// A4 reference for chroma pitch-class folding
	TuningFreq float64 `json:"tuning_freq"`
}

// DefaultAnalysisConfig returns the standard pipeline configuration
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		SnippetSeconds: 45,
		WindowSize:     2048,
		HopSize:        512,
		MelBands:       40,
		MelMaxFreq:     8000.0,
		LowMidBands:    10,
		TuningFreq:     440.0,
	}
}
