package emotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AriadneD/musicemotions/emotion/config"
)

func TestCollectOrderedRows(t *testing.T) {
	sampleRate := 8000
	collector := NewCollector(nil)

	waveform := genTone(220.0, 0.2, sampleRate, 1)
	waveform = append(waveform, genTone(220.0, 0.4, sampleRate, 1)...)
	waveform = append(waveform, genTone(220.0, 0.6, sampleRate, 1)...)

	table, err := collector.Collect(waveform, sampleRate)
	require.NoError(t, err)
	require.Len(t, table, 3)

	for i, row := range table {
		assert.Equal(t, i, row.TimeSec)
	}

	// Louder seconds yield larger raw rms in frame order, proving each
	// row came from its own slice of the waveform
	assert.Less(t, table[0].RMS, table[1].RMS)
	assert.Less(t, table[1].RMS, table[2].RMS)
}

func TestCollectDropsPartialSecond(t *testing.T) {
	sampleRate := 8000
	collector := NewCollector(nil)

	waveform := genTone(220.0, 0.5, sampleRate, 2)
	waveform = append(waveform, make([]float64, sampleRate-1)...)

	table, err := collector.Collect(waveform, sampleRate)
	require.NoError(t, err)
	assert.Len(t, table, 2)
}

func TestCollectSnippetClamp(t *testing.T) {
	sampleRate := 8000

	cfg := config.DefaultAnalysisConfig()
	cfg.SnippetSeconds = 2
	collector := NewCollector(cfg)

	table, err := collector.Collect(genTone(220.0, 0.5, sampleRate, 6), sampleRate)
	require.NoError(t, err)
	assert.Len(t, table, 2)
}

func TestCollectInsufficientAudio(t *testing.T) {
	sampleRate := 8000
	collector := NewCollector(nil)

	table, err := collector.Collect(make([]float64, sampleRate/2), sampleRate)
	assert.Nil(t, table)

	var insufficientErr *InsufficientAudioError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, sampleRate/2, insufficientErr.Samples)
	assert.Contains(t, insufficientErr.Error(), "insufficient audio")
}

func TestCollectInvalidSnippetSeconds(t *testing.T) {
	sampleRate := 8000
	waveform := genTone(220.0, 0.5, sampleRate, 2)

	for _, snippetSeconds := range []int{0, -1} {
		cfg := config.DefaultAnalysisConfig()
		cfg.SnippetSeconds = snippetSeconds

		table, err := NewCollector(cfg).Collect(waveform, sampleRate)
		require.Error(t, err)
		assert.Nil(t, table)
		assert.Contains(t, err.Error(), "snippet seconds")
	}
}

func TestCollectInvalidSampleRate(t *testing.T) {
	collector := NewCollector(nil)

	_, err := collector.Collect(make([]float64, 100), 0)
	require.Error(t, err)

	_, err = collector.Collect(make([]float64, 100), -8000)
	require.Error(t, err)
}
