package transcribe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-shellwords"

	"github.com/voxscribe/voxscribe/internal/audio"
	"github.com/voxscribe/voxscribe/internal/config"
	"github.com/voxscribe/voxscribe/internal/ctc"
)

// wav2vecHandle runs a character-level CTC acoustic model through an
// external inference runner. The runner receives a 16 kHz mono WAV and
// prints per-timestep logits as JSON on stdout:
//
//	{"logits": [[...vocab scores...], ...]}
//
// Greedy CTC decoding happens in-process.
type wav2vecHandle struct {
	cmd       []string
	modelPath string
	vocab     []string
	blank     int

	// The runner is not designed for concurrent invocation.
	mu sync.Mutex
}

type runnerOutput struct {
	Logits [][]float32 `json:"logits"`
}

// newWav2vecHandle verifies the runner binary and model artifacts are
// present and loads the vocabulary. Any missing dependency surfaces as
// ErrUnavailable.
func newWav2vecHandle(cfg config.Wav2vecConfig) (modelHandle, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("transcribe: parse wav2vec command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: wav2vec command not configured", ErrUnavailable)
	}

	if _, err := exec.LookPath(args[0]); err != nil {
		return nil, fmt.Errorf("%w: wav2vec runner %q not found in PATH", ErrUnavailable, args[0])
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: wav2vec model %s: %v", ErrUnavailable, cfg.ModelPath, err)
	}

	vocab, err := ctc.LoadVocab(cfg.VocabPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &wav2vecHandle{
		cmd:       args,
		modelPath: cfg.ModelPath,
		vocab:     vocab,
		blank:     ctc.BlankID(vocab),
	}, nil
}

// process stages the samples as a WAV, invokes the runner, and decodes
// the returned logits to text. The model emits upper-case characters;
// output is lowered to match the network engine.
func (h *wav2vecHandle) process(samples []float32) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := &audio.Buffer{Samples: samples, SampleRate: modelSampleRate, Channels: 1}
	wavPath, err := stageWAV(buf)
	if err != nil {
		return "", err
	}
	defer os.Remove(wavPath)

	args := append([]string{}, h.cmd[1:]...)
	args = append(args, "--audio", wavPath, "--model", h.modelPath)

	command := exec.Command(h.cmd[0], args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	log.Debug("running wav2vec inference", "runner", h.cmd[0], "samples", len(samples))

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("transcribe: wav2vec runner failed: %w: %s", err, stderr.String())
	}

	var out runnerOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return "", fmt.Errorf("transcribe: decode runner output: %w", err)
	}

	text := ctc.Decode(out.Logits, h.vocab, h.blank)
	return strings.ToLower(text), nil
}

func (h *wav2vecHandle) close() error { return nil }
