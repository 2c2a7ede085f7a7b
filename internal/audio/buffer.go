// Package audio provides microphone capture, WAV file I/O, and
// normalization of PCM audio into the format the transcription
// engines consume.
package audio

import (
	"errors"
	"fmt"
)

// Sentinel errors for the audio layer. Callers match them with errors.Is.
var (
	// ErrDevice indicates the input device could not be acquired.
	ErrDevice = errors.New("audio: input device unavailable")
	// ErrFormat indicates audio data that could not be decoded.
	ErrFormat = errors.New("audio: unreadable audio data")
)

// Buffer holds PCM audio as float32 samples in [-1.0, 1.0].
// Multi-channel data is interleaved. A Buffer is treated as immutable
// once created; Normalize returns a new Buffer rather than mutating.
type Buffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 || b.Channels <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate*b.Channels)
}

// Validate checks the Buffer invariants: non-empty samples, positive
// sample rate and channel count.
func (b *Buffer) Validate() error {
	if len(b.Samples) == 0 {
		return fmt.Errorf("audio: buffer has no samples")
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("audio: sample rate must be > 0, got %d", b.SampleRate)
	}
	if b.Channels <= 0 {
		return fmt.Errorf("audio: channel count must be > 0, got %d", b.Channels)
	}
	return nil
}

// int16ToFloat32 converts int16 samples to float32 normalized to [-1, 1].
func int16ToFloat32(samples []int16) []float32 {
	result := make([]float32, len(samples))
	for i, s := range samples {
		result[i] = float32(s) / 32768.0
	}
	return result
}

// float32ToInt16 converts float32 samples to int16, clamping to [-1, 1].
func float32ToInt16(samples []float32) []int16 {
	result := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		result[i] = int16(s * 32767)
	}
	return result
}
