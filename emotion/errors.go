package emotion

import "fmt"

// InsufficientAudioError reports a waveform too short to yield even one
// full one-second frame. The analysis produces no partial results; retry
// policy (e.g. re-acquiring the audio) belongs to the caller.
type InsufficientAudioError struct {
	Samples    int
	SampleRate int
}

func (e *InsufficientAudioError) Error() string {
	return fmt.Sprintf("insufficient audio: %d samples at %d Hz is shorter than one second", e.Samples, e.SampleRate)
}
