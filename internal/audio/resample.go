package audio

import (
	"fmt"

	"github.com/zeozeozeo/gomplerate"
)

// Normalize converts a buffer to mono audio at targetRate. When the
// buffer is already mono at targetRate it is returned unchanged.
// Multi-channel input is downmixed by arithmetic mean before rate
// conversion, and the [-1, 1] amplitude range is preserved.
func Normalize(b *Buffer, targetRate int) (*Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if targetRate <= 0 {
		return nil, fmt.Errorf("audio: target rate must be > 0, got %d", targetRate)
	}

	if b.Channels == 1 && b.SampleRate == targetRate {
		return b, nil
	}

	samples := b.Samples
	if b.Channels > 1 {
		samples = downmix(samples, b.Channels)
	}

	if b.SampleRate != targetRate {
		resampled, err := resample(samples, b.SampleRate, targetRate)
		if err != nil {
			return nil, err
		}
		samples = resampled
	}

	return &Buffer{
		Samples:    samples,
		SampleRate: targetRate,
		Channels:   1,
	}, nil
}

// downmix averages interleaved multi-channel samples into mono.
func downmix(samples []float32, channels int) []float32 {
	mono := make([]float32, len(samples)/channels)
	for i := range mono {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += samples[i*channels+ch]
		}
		mono[i] = sum / float32(channels)
	}
	return mono
}

// resample converts mono samples from one rate to another. Conversion
// runs over 16-bit integer samples, which is the gomplerate path with
// the least surprise for speech audio.
func resample(samples []float32, fromRate, toRate int) ([]float32, error) {
	r, err := gomplerate.NewResampler(1, fromRate, toRate)
	if err != nil {
		return nil, fmt.Errorf("audio: resampler %d -> %d Hz: %w", fromRate, toRate, err)
	}
	return int16ToFloat32(r.ResampleInt16(float32ToInt16(samples))), nil
}
