package transcribe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/voxscribe/voxscribe/internal/audio"
	"github.com/voxscribe/voxscribe/internal/config"
)

// Selection is the outcome of resolving a requested engine kind to a
// usable engine. Fallback is true when the local engine was requested
// but unavailable and the network engine was substituted.
type Selection struct {
	Engine    Engine
	Requested Kind
	Fallback  bool
}

// Select resolves the requested engine kind. Local-engine readiness is
// probed exactly once, here; a session that resolves the local engine
// does not re-check on later calls. ErrUnavailable from the local
// engine is consumed and turned into a network fallback, never
// surfaced. If the local engine is unavailable and the network engine
// is unusable too, Select fails hard.
func Select(requested Kind, cfg *config.Config) (*Selection, error) {
	switch requested {
	case KindNetwork:
		eng, err := NewNetworkEngine(cfg.Network)
		if err != nil {
			return nil, err
		}
		return &Selection{Engine: eng, Requested: requested}, nil

	case KindLocal:
		local := NewLocalEngine(cfg.Local)
		err := local.Ready()
		if err == nil {
			return &Selection{Engine: local, Requested: requested}, nil
		}
		if !errors.Is(err, ErrUnavailable) {
			return nil, err
		}

		log.Warn("local engine unavailable, falling back to network engine", "reason", err)

		eng, nerr := NewNetworkEngine(cfg.Network)
		if nerr != nil {
			return nil, fmt.Errorf("transcribe: local engine unavailable (%v) and no network engine to fall back to: %w", err, nerr)
		}
		return &Selection{Engine: eng, Requested: requested, Fallback: true}, nil

	default:
		return nil, fmt.Errorf("transcribe: unknown engine %q (supported: network, local)", requested)
	}
}

// Transcribe runs one transcription through the resolved engine and
// tags the result with the engine actually used and whether fallback
// occurred.
func (s *Selection) Transcribe(ctx context.Context, buf *audio.Buffer) (*Result, error) {
	start := time.Now()
	text, err := s.Engine.Transcribe(ctx, buf)
	if err != nil {
		return nil, err
	}
	return &Result{
		Text:     text,
		Engine:   s.Engine.Kind(),
		Fallback: s.Fallback,
		Elapsed:  time.Since(start),
	}, nil
}

// Close releases the resolved engine.
func (s *Selection) Close() error {
	return s.Engine.Close()
}
