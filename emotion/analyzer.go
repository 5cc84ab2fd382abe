// Package emotion converts a decoded mono waveform into a per-second
// "emotional signature": six bounded axes (valence, energy, tension,
// warmth, power, complexity) plus an averaged profile for the whole
// analysis window.
//
// The pipeline has four stages, each feeding the next: per-frame
// feature extraction, per-track collection, min/max normalization
// within the track, and a fixed linear mapping onto the six axes. It
// performs no I/O; acquiring and decoding the audio is the caller's
// concern (see the transcode package).
package emotion

import (
	"github.com/AriadneD/musicemotions/emotion/config"
	"github.com/AriadneD/musicemotions/logging"
)

// AnalysisResult holds everything one analysis run produces. All tables
// have exactly TotalSec rows ordered by TimeSec, and every axis and
// normalized value lies in [0, 1].
type AnalysisResult struct {
	TimeSeries         AxisTimeSeries         `json:"time_series"`
	Profile            AverageProfile         `json:"average_profile"`
	RawFeatures        RawFeatureTable        `json:"raw_features,omitempty"`
	NormalizedFeatures NormalizedFeatureTable `json:"normalized_features,omitempty"`
	TotalSec           int                    `json:"total_sec"`
	SampleRate         int                    `json:"sample_rate"`
}

// Analyzer runs the full emotional signature pipeline. It holds no
// per-invocation state; one analyzer can serve repeated calls.
type Analyzer struct {
	config    *config.AnalysisConfig
	collector *Collector
	logger    logging.Logger
}

// NewAnalyzer creates an analyzer; a nil config uses the defaults
func NewAnalyzer(cfg *config.AnalysisConfig) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}

	return &Analyzer{
		config:    cfg,
		collector: NewCollector(cfg),
		logger: logging.WithFields(logging.Fields{
			"component": "emotion_analyzer",
		}),
	}
}

// Analyze runs the pipeline on a decoded mono waveform. The sample rate
// doubles as the frame length: one second of samples per frame.
//
// The call either fully succeeds with TotalSec rows or fails before
// producing any table; a waveform shorter than one second returns
// *InsufficientAudioError.
func (a *Analyzer) Analyze(waveform []float64, sampleRate int) (*AnalysisResult, error) {
	rawTable, err := a.collector.Collect(waveform, sampleRate)
	if err != nil {
		return nil, err
	}

	normalizedTable := NormalizeTable(rawTable)
	series := MapAxes(normalizedTable)
	profile := Aggregate(series)

	a.logger.Debug("analysis complete", logging.Fields{
		"total_sec":   len(series),
		"sample_rate": sampleRate,
	})

	return &AnalysisResult{
		TimeSeries:         series,
		Profile:            profile,
		RawFeatures:        rawTable,
		NormalizedFeatures: normalizedTable,
		TotalSec:           len(series),
		SampleRate:         sampleRate,
	}, nil
}

// Analyze is a convenience wrapper running the pipeline with default
// parameters and the given snippet length
func Analyze(waveform []float64, sampleRate, snippetSeconds int) (AxisTimeSeries, AverageProfile, error) {
	cfg := config.DefaultAnalysisConfig()
	if snippetSeconds > 0 {
		cfg.SnippetSeconds = snippetSeconds
	}

	result, err := NewAnalyzer(cfg).Analyze(waveform, sampleRate)
	if err != nil {
		return nil, AverageProfile{}, err
	}

	return result.TimeSeries, result.Profile, nil
}
