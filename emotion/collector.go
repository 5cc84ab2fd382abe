package emotion

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/AriadneD/musicemotions/emotion/config"
	"github.com/AriadneD/musicemotions/logging"
)

// Collector slices a waveform into consecutive, non-overlapping
// one-second frames and assembles the ordered per-second feature table
type Collector struct {
	config *config.AnalysisConfig
	logger logging.Logger
}

// NewCollector creates a collector; a nil config uses the defaults
func NewCollector(cfg *config.AnalysisConfig) *Collector {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}

	return &Collector{
		config: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "feature_collector",
		}),
	}
}

// Collect extracts raw features for every full second of the waveform,
// up to the configured snippet length. The final partial second is
// dropped, never padded. Returns *InsufficientAudioError when the
// waveform holds less than one full second.
//
// Frames are independent, so extraction runs on a worker pool; each
// worker owns its extractor and writes only its own rows, keeping the
// output deterministic.
func (c *Collector) Collect(waveform []float64, sampleRate int) (RawFeatureTable, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	if c.config.SnippetSeconds <= 0 {
		return nil, fmt.Errorf("snippet seconds must be positive, got %d", c.config.SnippetSeconds)
	}

	totalSec := len(waveform) / sampleRate
	totalSec = min(totalSec, c.config.SnippetSeconds)

	if totalSec == 0 {
		return nil, &InsufficientAudioError{
			Samples:    len(waveform),
			SampleRate: sampleRate,
		}
	}

	c.logger.Debug("collecting frame features", logging.Fields{
		"total_sec":   totalSec,
		"sample_rate": sampleRate,
	})

	table := make(RawFeatureTable, totalSec)

	numWorkers := max(1, min(runtime.NumCPU(), totalSec))
	jobs := make(chan int, totalSec)

	var wg sync.WaitGroup

	for rangeIdx := 0; rangeIdx < numWorkers; rangeIdx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			extractor := NewFrameExtractor(sampleRate, c.config)

			for i := range jobs {
				start := i * sampleRate
				end := start + sampleRate

				table[i] = extractor.Extract(waveform[start:end])
				table[i].TimeSec = i
			}
		}()
	}

	for i := 0; i < totalSec; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	return table, nil
}
