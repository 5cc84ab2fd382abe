package transcode

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestWAV encodes interleaved 16-bit samples to a temp WAV file
func writeTestWAV(t *testing.T, samples []int, sampleRate, channels int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	encoder := wav.NewEncoder(file, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	require.NoError(t, encoder.Write(buf))
	require.NoError(t, encoder.Close())

	return path
}

func TestLoadWAVFileMono(t *testing.T) {
	sampleRate := 8000
	samples := make([]int, sampleRate)
	for i := range samples {
		samples[i] = int(16000.0 * math.Sin(2.0*math.Pi*440.0*float64(i)/float64(sampleRate)))
	}

	path := writeTestWAV(t, samples, sampleRate, 1)

	data, err := LoadWAVFile(path)
	require.NoError(t, err)

	assert.Equal(t, sampleRate, data.SampleRate)
	assert.Equal(t, 1, data.Channels)
	assert.Equal(t, 16, data.BitDepth)
	require.Len(t, data.PCM, sampleRate)

	// 16000/32768 amplitude survives the int round trip
	peak := 0.0
	for _, v := range data.PCM {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
		peak = math.Max(peak, math.Abs(v))
	}
	assert.InDelta(t, 16000.0/32768.0, peak, 1e-3)
}

func TestLoadWAVFileStereoDownmix(t *testing.T) {
	sampleRate := 8000
	numFrames := 1000

	// Left is a constant, right is silent; the mono mix is half the
	// left level
	samples := make([]int, numFrames*2)
	for i := 0; i < numFrames; i++ {
		samples[i*2] = 8192
		samples[i*2+1] = 0
	}

	path := writeTestWAV(t, samples, sampleRate, 2)

	data, err := LoadWAVFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, data.Channels)
	require.Len(t, data.PCM, numFrames)
	for _, v := range data.PCM {
		assert.InDelta(t, 4096.0/32768.0, v, 1e-6)
	}
}

func TestLoadWAVFileFloatFormatRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "float.wav")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	// Format 3 is IEEE float; the loader only scales integer PCM
	encoder := wav.NewEncoder(file, 8000, 32, 1, 3)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           make([]int, 100),
		SourceBitDepth: 32,
	}
	require.NoError(t, encoder.Write(buf))
	require.NoError(t, encoder.Close())

	_, err = LoadWAVFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported WAV audio format")
}

func TestLoadWAVFileMissing(t *testing.T) {
	_, err := LoadWAVFile(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestLoadWAVFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a wav"), 0o644))

	_, err := LoadWAVFile(path)
	assert.Error(t, err)
}

func TestDownmixToMonoEdgeCases(t *testing.T) {
	assert.Empty(t, downmixToMono(nil, 2, 16))
	assert.Empty(t, downmixToMono([]int{1, 2}, 0, 16))

	// Zero bit depth falls back to 16-bit scaling
	pcm := downmixToMono([]int{16384}, 1, 0)
	require.Len(t, pcm, 1)
	assert.InDelta(t, 0.5, pcm[0], 1e-9)
}
