package audio

import (
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// LoadWAV reads a PCM WAV file and returns its samples at the file's
// native sample rate and channel count. Samples are normalized to
// [-1.0, 1.0]. A missing file surfaces as an error wrapping
// fs.ErrNotExist; corrupt or non-WAV data wraps ErrFormat.
func LoadWAV(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a valid WAV file", ErrFormat, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrFormat, path, err)
	}
	if len(buf.Data) == 0 {
		return nil, fmt.Errorf("%w: %s contains no samples", ErrFormat, path)
	}

	// Scale by the source bit depth so 8/24/32-bit files normalize too.
	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))

	samples := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float32(s) / scale
	}

	return &Buffer{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}, nil
}

// WriteWAV encodes the buffer as a 16-bit PCM WAV file at path.
// Used to stage audio for the network engine and the external inference
// runner, both of which consume files rather than in-memory samples.
func WriteWAV(path string, b *Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: create %s: %w", path, err)
	}

	data := make([]int, len(b.Samples))
	for i, s := range float32ToInt16(b.Samples) {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(f, b.SampleRate, 16, b.Channels, 1)
	ib := &gaudio.IntBuffer{
		Data:           data,
		Format:         &gaudio.Format{NumChannels: b.Channels, SampleRate: b.SampleRate},
		SourceBitDepth: 16,
	}
	if err := enc.Write(ib); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("audio: write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("audio: close wav encoder: %w", err)
	}
	return f.Close()
}
