package audio

import (
	"math"
	"testing"
)

// sine generates a mono test tone.
func sine(t *testing.T, freq float64, rate, n int) []float32 {
	t.Helper()
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return samples
}

func TestNormalizeIdentity(t *testing.T) {
	b := &Buffer{Samples: sine(t, 440, 16000, 16000), SampleRate: 16000, Channels: 1}

	out, err := Normalize(b, 16000)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out != b {
		t.Error("Normalize at the buffer's own rate should return the buffer unchanged")
	}
}

func TestNormalizeResamples(t *testing.T) {
	b := &Buffer{Samples: sine(t, 440, 44100, 44100), SampleRate: 44100, Channels: 1}

	out, err := Normalize(b, 16000)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if out.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", out.SampleRate)
	}
	if out.Channels != 1 {
		t.Errorf("Channels = %d, want 1", out.Channels)
	}

	// 1s at 44.1kHz should come out near 1s at 16kHz.
	if len(out.Samples) < 14400 || len(out.Samples) > 17600 {
		t.Errorf("resampled length = %d, want ~16000", len(out.Samples))
	}

	for i, s := range out.Samples {
		if s < -1.0 || s > 1.0 {
			t.Fatalf("sample[%d] = %f, out of [-1.0, 1.0] range", i, s)
		}
	}
}

func TestNormalizeDownmixesStereo(t *testing.T) {
	// Interleaved stereo: left = 0.5, right = -0.5 → mono mean 0.
	samples := make([]float32, 2000)
	for i := 0; i < len(samples); i += 2 {
		samples[i] = 0.5
		samples[i+1] = -0.5
	}
	b := &Buffer{Samples: samples, SampleRate: 16000, Channels: 2}

	out, err := Normalize(b, 16000)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if out.Channels != 1 {
		t.Fatalf("Channels = %d, want 1", out.Channels)
	}
	if len(out.Samples) != 1000 {
		t.Fatalf("len = %d, want 1000", len(out.Samples))
	}
	for i, s := range out.Samples {
		if s != 0 {
			t.Fatalf("downmixed sample[%d] = %f, want 0 (mean of 0.5 and -0.5)", i, s)
		}
	}
}

func TestNormalizeRejectsBadInput(t *testing.T) {
	empty := &Buffer{SampleRate: 16000, Channels: 1}
	if _, err := Normalize(empty, 16000); err == nil {
		t.Error("Normalize of empty buffer should fail")
	}

	b := &Buffer{Samples: []float32{0.1}, SampleRate: 16000, Channels: 1}
	if _, err := Normalize(b, 0); err == nil {
		t.Error("Normalize to rate 0 should fail")
	}
}

func TestDownmixMean(t *testing.T) {
	// Three channels, one frame: mean of 0.3, 0.6, 0.9 = 0.6.
	mono := downmix([]float32{0.3, 0.6, 0.9}, 3)
	if len(mono) != 1 {
		t.Fatalf("len = %d, want 1", len(mono))
	}
	if diff := math.Abs(float64(mono[0]) - 0.6); diff > 1e-6 {
		t.Errorf("mean = %f, want 0.6", mono[0])
	}
}
