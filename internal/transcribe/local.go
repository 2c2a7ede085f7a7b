package transcribe

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/voxscribe/voxscribe/internal/audio"
	"github.com/voxscribe/voxscribe/internal/config"
)

// modelSampleRate is the rate the local acoustic models were trained at.
const modelSampleRate = 16000

// modelHandle owns a loaded acoustic model. Constructed lazily on first
// use, held for the remainder of the process.
type modelHandle interface {
	process(samples []float32) (string, error)
	close() error
}

// LocalEngine runs a neural acoustic model in-process. The model handle
// is loaded once, on first use; a load failure surfaces as
// ErrUnavailable, which the selector treats as a fallback trigger.
type LocalEngine struct {
	cfg config.LocalConfig

	once    sync.Once
	handle  modelHandle
	initErr error
}

// NewLocalEngine creates a local engine. No model is loaded until the
// first Ready or Transcribe call.
func NewLocalEngine(cfg config.LocalConfig) *LocalEngine {
	return &LocalEngine{cfg: cfg}
}

// Ready loads the model handle if it has not been loaded yet and
// reports whether the engine is usable. The selector calls this once
// per session.
func (e *LocalEngine) Ready() error {
	e.load()
	return e.initErr
}

func (e *LocalEngine) load() {
	e.once.Do(func() {
		switch e.cfg.Backend {
		case "whisper", "":
			log.Debug("loading whisper model", "path", e.cfg.ModelPath)
			e.handle, e.initErr = newWhisperHandle(e.cfg.ModelPath)
		case "wav2vec":
			log.Debug("preparing wav2vec runner", "command", e.cfg.Wav2vec.Command)
			e.handle, e.initErr = newWav2vecHandle(e.cfg.Wav2vec)
		default:
			e.initErr = fmt.Errorf("transcribe: unknown local backend %q (supported: whisper, wav2vec)", e.cfg.Backend)
		}
	})
}

// Kind identifies the engine.
func (e *LocalEngine) Kind() Kind { return KindLocal }

// SampleRate returns the rate input must be normalized to.
func (e *LocalEngine) SampleRate() int { return modelSampleRate }

// Transcribe runs the buffer through the acoustic model. The buffer
// must already be normalized to 16 kHz mono. Inference is deterministic:
// identical buffers yield identical text.
func (e *LocalEngine) Transcribe(_ context.Context, buf *audio.Buffer) (string, error) {
	e.load()
	if e.initErr != nil {
		return "", e.initErr
	}

	if err := buf.Validate(); err != nil {
		return "", err
	}
	if buf.SampleRate != modelSampleRate || buf.Channels != 1 {
		return "", fmt.Errorf("transcribe: local engine requires %d Hz mono input, got %d Hz %dch",
			modelSampleRate, buf.SampleRate, buf.Channels)
	}

	return e.handle.process(buf.Samples)
}

// Close releases the model handle, if one was loaded.
func (e *LocalEngine) Close() error {
	if e.handle != nil {
		return e.handle.close()
	}
	return nil
}
