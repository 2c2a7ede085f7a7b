package audio

import (
	"testing"
)

func TestBufferDuration(t *testing.T) {
	b := &Buffer{Samples: make([]float32, 44100), SampleRate: 44100, Channels: 1}
	if d := b.Duration(); d != 1.0 {
		t.Errorf("Duration() = %f, want 1.0", d)
	}

	stereo := &Buffer{Samples: make([]float32, 32000), SampleRate: 16000, Channels: 2}
	if d := stereo.Duration(); d != 1.0 {
		t.Errorf("stereo Duration() = %f, want 1.0", d)
	}
}

func TestBufferValidate(t *testing.T) {
	tests := []struct {
		name    string
		buf     Buffer
		wantErr bool
	}{
		{"valid", Buffer{Samples: []float32{0.1}, SampleRate: 16000, Channels: 1}, false},
		{"empty samples", Buffer{SampleRate: 16000, Channels: 1}, true},
		{"zero rate", Buffer{Samples: []float32{0.1}, Channels: 1}, true},
		{"zero channels", Buffer{Samples: []float32{0.1}, SampleRate: 16000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.buf.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInt16Float32RoundTrip(t *testing.T) {
	in := []int16{0, 16384, -16384, 32767, -32768}
	f := int16ToFloat32(in)

	for i, s := range f {
		if s < -1.0 || s > 1.0 {
			t.Fatalf("f[%d] = %f, out of [-1.0, 1.0] range", i, s)
		}
	}
	if f[0] != 0.0 {
		t.Errorf("f[0] = %f, want 0.0", f[0])
	}
	if f[1] != 0.5 {
		t.Errorf("f[1] = %f, want 0.5", f[1])
	}

	back := float32ToInt16(f)
	for i := range in {
		diff := int(back[i]) - int(in[i])
		if diff < -2 || diff > 2 {
			t.Errorf("round trip [%d]: got %d, want ~%d", i, back[i], in[i])
		}
	}
}

func TestFloat32ToInt16Clamps(t *testing.T) {
	out := float32ToInt16([]float32{2.0, -2.0})
	if out[0] != 32767 {
		t.Errorf("clamped high = %d, want 32767", out[0])
	}
	if out[1] != -32767 {
		t.Errorf("clamped low = %d, want -32767", out[1])
	}
}
