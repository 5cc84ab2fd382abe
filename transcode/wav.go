// Package transcode decodes audio files into the mono float64 PCM the
// analysis pipeline consumes. It is the pipeline's external
// collaborator: the emotion package itself never touches files.
package transcode

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"

	"github.com/AriadneD/musicemotions/logging"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"`
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // Channels in the source file; PCM is downmixed to mono
	BitDepth   int           `json:"bit_depth"`
	Duration   time.Duration `json:"duration"`
}

// LoadWAVFile decodes a WAV file into mono float64 samples in [-1, 1].
// Multi-channel audio is downmixed by averaging the channels.
func LoadWAVFile(path string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "wav_decoder",
		"path":      path,
	})

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file: %s", path)
	}

	// Only integer PCM (format 1) scales by 1 << (bitDepth-1); IEEE
	// float and compressed formats would be grossly misscaled
	if decoder.WavAudioFormat != 1 {
		return nil, fmt.Errorf("unsupported WAV audio format %d (only PCM is supported): %s", decoder.WavAudioFormat, path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav pcm: %w", err)
	}

	sampleRate := int(decoder.SampleRate)
	channels := buf.Format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("malformed WAV header: sample_rate=%d channels=%d", sampleRate, channels)
	}

	pcm := downmixToMono(buf.Data, channels, bitDepth)

	audioData := &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Duration:   time.Duration(float64(len(pcm)) / float64(sampleRate) * float64(time.Second)),
	}

	logger.Debug("decoded wav file", logging.Fields{
		"sample_rate": sampleRate,
		"channels":    channels,
		"bit_depth":   bitDepth,
		"samples":     len(pcm),
	})

	return audioData, nil
}

// downmixToMono converts interleaved integer samples to mono float64 in
// [-1, 1]
func downmixToMono(data []int, channels, bitDepth int) []float64 {
	if channels <= 0 || len(data) == 0 {
		return []float64{}
	}

	// Full-scale value for the source bit depth; 16-bit is the common
	// default when the header omits it
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	numFrames := len(data) / channels
	pcm := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(data[i*channels+ch])
		}
		pcm[i] = sum / float64(channels) / scale
	}

	return pcm
}
