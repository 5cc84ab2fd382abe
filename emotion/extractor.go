package emotion

import (
	"github.com/AriadneD/musicemotions/algorithms/chroma"
	"github.com/AriadneD/musicemotions/algorithms/common"
	"github.com/AriadneD/musicemotions/algorithms/hpss"
	"github.com/AriadneD/musicemotions/algorithms/spectral"
	"github.com/AriadneD/musicemotions/algorithms/stats"
	"github.com/AriadneD/musicemotions/algorithms/temporal"
	"github.com/AriadneD/musicemotions/algorithms/windowing"
	"github.com/AriadneD/musicemotions/emotion/config"
	"github.com/AriadneD/musicemotions/logging"
)

// epsRatio guards ratio denominators against division by zero
const epsRatio = 1e-9

// FrameExtractor computes the ten raw acoustic features of a single
// one-second frame. Instances are cheap to create and NOT safe for
// concurrent use; the collector creates one per worker.
type FrameExtractor struct {
	sampleRate int
	config     *config.AnalysisConfig

	stft      *spectral.STFT
	window    *windowing.Hann
	rms       *spectral.SpectralRMS
	centroid  *spectral.SpectralCentroid
	bandwidth *spectral.SpectralBandwidth
	flatness  *spectral.SpectralFlatness
	zcr       *spectral.ZeroCrossingRate
	melScale  *spectral.MelScale
	onset     *temporal.OnsetStrength
	separator *hpss.Separator
	chroma    *chroma.ChromaSTFT
	tonnetz   *chroma.Tonnetz
	entropy   *stats.Entropy

	logger logging.Logger
}

// NewFrameExtractor creates a frame extractor for the given sample rate
func NewFrameExtractor(sampleRate int, cfg *config.AnalysisConfig) *FrameExtractor {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}

	return &FrameExtractor{
		sampleRate: sampleRate,
		config:     cfg,
		stft:       spectral.NewSTFT(),
		window:     windowing.NewHann(cfg.WindowSize, false),
		rms:        spectral.NewSpectralRMS(),
		centroid:   spectral.NewSpectralCentroid(sampleRate),
		bandwidth:  spectral.NewSpectralBandwidth(sampleRate),
		flatness:   spectral.NewSpectralFlatness(),
		zcr:        spectral.NewZeroCrossingRateWithParams(cfg.WindowSize, cfg.HopSize),
		melScale:   spectral.NewMelScale(),
		onset:      temporal.NewOnsetStrength(),
		separator:  hpss.NewSeparator(),
		chroma:     chroma.NewChromaSTFT(sampleRate, cfg.TuningFreq),
		tonnetz:    chroma.NewTonnetz(),
		entropy:    stats.NewEntropy(),
		logger: logging.WithFields(logging.Fields{
			"component": "frame_extractor",
		}),
	}
}

// Extract computes the raw feature row for one frame. TimeSec is left
// zero; the collector fills it in.
//
// An empty frame yields an all-zero row; this is a defined fallback so
// one malformed frame never aborts a whole track. Tonal tension is
// additionally guarded and falls back to 0 when the harmonic component
// degenerates.
func (fe *FrameExtractor) Extract(frame []float64) FeatureRow {
	var row FeatureRow

	if len(frame) == 0 {
		return row
	}

	spectrogram, err := fe.stft.ComputeWithWindow(frame, fe.config.WindowSize, fe.config.HopSize, fe.sampleRate, fe.window)
	if err != nil {
		// A frame shorter than one STFT window degenerates the same
		// way an empty frame does
		fe.logger.Warn("frame too short for spectral analysis, using zero features", logging.Fields{
			"frame_samples": len(frame),
			"window_size":   fe.config.WindowSize,
		})
		return row
	}

	row.RMS = common.Mean(fe.rms.ComputeFrames(spectrogram.Magnitude))

	centroids := fe.centroid.ComputeFrames(spectrogram.Magnitude)
	row.Centroid = common.Mean(centroids)
	row.Bandwidth = common.Mean(fe.bandwidth.ComputeFrames(spectrogram.Magnitude, centroids))

	row.ZCR = fe.extractZCR(frame)
	row.SpectralFlatness = common.Mean(fe.flatness.ComputeFrames(spectrogram.Magnitude))
	row.OnsetStrength = fe.onset.ComputeMean(spectrogram.Magnitude)

	harmonic := fe.extractPercussiveRatio(frame, &row)
	fe.extractTonalFeatures(harmonic, &row)

	row.LowMidEnergyRatio = fe.extractLowMidRatio(spectrogram.Magnitude)

	return row
}

// extractZCR averages normalized zero-crossing rate over sub-frames of
// the raw samples
func (fe *FrameExtractor) extractZCR(frame []float64) float64 {
	zcrValues := fe.zcr.ComputeFramesNormalized(frame)
	if len(zcrValues) == 0 {
		return fe.zcr.ComputeNormalized(frame)
	}
	return common.Mean(zcrValues)
}

// extractPercussiveRatio decomposes the frame and computes the share of
// percussive energy. Returns the harmonic component for the tonal
// features, or nil when separation failed.
func (fe *FrameExtractor) extractPercussiveRatio(frame []float64, row *FeatureRow) []float64 {
	components, err := fe.separator.Separate(frame, fe.sampleRate, fe.config.WindowSize, fe.config.HopSize, fe.window)
	if err != nil {
		fe.logger.Warn("harmonic/percussive separation failed, using zero ratio", logging.Fields{
			"error": err.Error(),
		})
		return nil
	}

	meanHarmonic := common.MeanAbs(components.Harmonic)
	meanPercussive := common.MeanAbs(components.Percussive)
	row.PercussiveRatio = meanPercussive / (meanHarmonic + meanPercussive + epsRatio)

	return components.Harmonic
}

// extractTonalFeatures computes tonal tension and chroma entropy from
// the harmonic component. Both default to 0 when the harmonic signal is
// degenerate.
func (fe *FrameExtractor) extractTonalFeatures(harmonic []float64, row *FeatureRow) {
	if len(harmonic) == 0 {
		return
	}

	chromagram, err := fe.chroma.ComputeChroma(harmonic, fe.config.WindowSize, fe.config.HopSize, fe.window)
	if err != nil || len(chromagram) == 0 {
		return
	}

	centroids := fe.tonnetz.ProjectFrames(chromagram)
	row.TonalTension = common.Mean(fe.tonnetz.FrameNorms(centroids))

	row.ChromaEntropy = fe.entropy.ComputeDistribution(fe.chroma.MeanChroma(chromagram))
}

// extractLowMidRatio computes the share of mel energy in the lowest
// bands across the whole frame
func (fe *FrameExtractor) extractLowMidRatio(spectrogram [][]float64) float64 {
	bandEnergies := fe.melScale.ComputeBandEnergies(spectrogram, fe.config.MelBands, fe.sampleRate, 0.0, fe.config.MelMaxFreq)

	totalEnergy := 0.0
	lowMidEnergy := 0.0
	for band, energy := range bandEnergies {
		totalEnergy += energy
		if band < fe.config.LowMidBands {
			lowMidEnergy += energy
		}
	}

	return lowMidEnergy / (totalEnergy + epsRatio)
}
