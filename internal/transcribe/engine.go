// Package transcribe provides speech-to-text engines.
//
// Supported engines:
//   - network: remote recognition service over HTTP
//   - local: neural acoustic model running in-process (whisper.cpp or
//     an external CTC inference runner)
//
// Callers depend only on the Engine capability; which engine actually
// serves a session is decided once by Select.
package transcribe

import (
	"context"
	"errors"
	"time"

	"github.com/voxscribe/voxscribe/internal/audio"
)

// Kind identifies a transcription engine.
type Kind string

const (
	// KindNetwork is the remote recognition service.
	KindNetwork Kind = "network"
	// KindLocal is the in-process acoustic model.
	KindLocal Kind = "local"
)

var (
	// ErrUnavailable indicates an engine whose runtime dependencies or
	// model artifacts are missing. The selector recovers from it by
	// falling back to the network engine.
	ErrUnavailable = errors.New("transcribe: engine unavailable")

	// ErrNoSpeech indicates the service was reached but produced no
	// usable hypothesis. Reported, non-fatal: the caller may retry.
	ErrNoSpeech = errors.New("transcribe: no speech recognized")
)

// Engine converts audio to text.
type Engine interface {
	// Transcribe converts the buffer to text. At most one recognition
	// attempt per call; retry policy belongs to the caller.
	Transcribe(ctx context.Context, buf *audio.Buffer) (string, error)
	// Kind identifies the engine.
	Kind() Kind
	// SampleRate returns the sample rate the engine requires its input
	// normalized to, or 0 if it accepts native-rate audio.
	SampleRate() int
	// Close releases engine resources.
	Close() error
}

// Result is the outcome of a single transcription.
type Result struct {
	Text     string
	Engine   Kind          // engine that actually produced the text
	Fallback bool          // true if the requested engine was substituted
	Elapsed  time.Duration // time spent in the engine
}
