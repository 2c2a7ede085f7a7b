//go:build cgo

package transcribe

import (
	"fmt"
	"io"
	"os"
	"strings"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// whisperHandle wraps a whisper.cpp model.
type whisperHandle struct {
	model whisper.Model
}

// newWhisperHandle loads a whisper ggml model from modelPath. Missing
// weights or a failed load surface as ErrUnavailable so the selector
// can fall back instead of crashing.
func newWhisperHandle(modelPath string) (modelHandle, error) {
	if modelPath == "" {
		return nil, fmt.Errorf("%w: whisper model path not configured", ErrUnavailable)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("%w: whisper model %s: %v", ErrUnavailable, modelPath, err)
	}

	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: loading whisper model %q: %v", ErrUnavailable, modelPath, err)
	}

	return &whisperHandle{model: model}, nil
}

// process transcribes mono 16kHz float32 audio samples to text.
func (h *whisperHandle) process(samples []float32) (string, error) {
	ctx, err := h.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("transcribe: create whisper context: %w", err)
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("transcribe: whisper process: %w", err)
	}

	var segments []string
	for {
		seg, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("transcribe: next segment: %w", err)
		}
		segments = append(segments, seg.Text)
	}

	return strings.TrimSpace(strings.Join(segments, " ")), nil
}

func (h *whisperHandle) close() error {
	if h.model != nil {
		return h.model.Close()
	}
	return nil
}
