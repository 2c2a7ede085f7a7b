package transcribe

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/voxscribe/voxscribe/internal/config"
)

// wav2vecVocab is the character vocabulary used by runner tests.
const wav2vecVocab = `{"<pad>": 0, "<s>": 1, "</s>": 2, "<unk>": 3, "|": 4, "H": 5, "I": 6}`

// fakeRunnerEnv writes a vocab file, a dummy model file, and a shell
// script that prints the given JSON, then returns a Wav2vecConfig
// pointing at them.
func fakeRunnerEnv(t *testing.T, output string) config.Wav2vecConfig {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script runner not supported on windows")
	}

	dir := t.TempDir()

	vocabPath := filepath.Join(dir, "vocab.json")
	if err := os.WriteFile(vocabPath, []byte(wav2vecVocab), 0644); err != nil {
		t.Fatal(err)
	}

	modelPath := filepath.Join(dir, "model.onnx")
	if err := os.WriteFile(modelPath, []byte("weights"), 0644); err != nil {
		t.Fatal(err)
	}

	runnerPath := filepath.Join(dir, "fake-runner")
	script := "#!/bin/sh\nprintf '%s' '" + output + "'\n"
	if err := os.WriteFile(runnerPath, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	return config.Wav2vecConfig{
		Command:   runnerPath,
		ModelPath: modelPath,
		VocabPath: vocabPath,
	}
}

func TestWav2vecHandleMissingRunner(t *testing.T) {
	cfg := config.Wav2vecConfig{
		Command:   "definitely-not-a-real-binary-xyz",
		ModelPath: "/nonexistent/model.onnx",
		VocabPath: "/nonexistent/vocab.json",
	}
	_, err := newWav2vecHandle(cfg)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestWav2vecHandleMissingModel(t *testing.T) {
	cfg := fakeRunnerEnv(t, `{}`)
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.onnx")

	_, err := newWav2vecHandle(cfg)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestWav2vecHandleEmptyCommand(t *testing.T) {
	_, err := newWav2vecHandle(config.Wav2vecConfig{})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestWav2vecProcess(t *testing.T) {
	// Frames: H H <pad> I → "hi" after collapse and lowering.
	logits := `{"logits": [` +
		`[0,0,0,0,0,9,0],` +
		`[0,0,0,0,0,9,0],` +
		`[9,0,0,0,0,0,0],` +
		`[0,0,0,0,0,0,9]]}`
	cfg := fakeRunnerEnv(t, logits)

	h, err := newWav2vecHandle(cfg)
	if err != nil {
		t.Fatalf("newWav2vecHandle() error = %v", err)
	}
	defer h.close()

	samples := make([]float32, modelSampleRate) // 1s of silence is enough to stage
	text, err := h.process(samples)
	if err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if text != "hi" {
		t.Errorf("text = %q, want %q", text, "hi")
	}
}

func TestWav2vecProcessDeterministic(t *testing.T) {
	logits := `{"logits": [[0,0,0,0,0,9,0],[0,0,0,0,0,0,9]]}`
	cfg := fakeRunnerEnv(t, logits)

	h, err := newWav2vecHandle(cfg)
	if err != nil {
		t.Fatalf("newWav2vecHandle() error = %v", err)
	}
	defer h.close()

	samples := make([]float32, modelSampleRate)
	a, err := h.process(samples)
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.process(samples)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("process not deterministic: %q vs %q", a, b)
	}
}

func TestWav2vecProcessEmptyLogits(t *testing.T) {
	cfg := fakeRunnerEnv(t, `{"logits": []}`)

	h, err := newWav2vecHandle(cfg)
	if err != nil {
		t.Fatalf("newWav2vecHandle() error = %v", err)
	}
	defer h.close()

	samples := make([]float32, modelSampleRate)
	text, err := h.process(samples)
	if err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty string for empty logits", text)
	}
}

func TestWav2vecProcessBadOutput(t *testing.T) {
	cfg := fakeRunnerEnv(t, `not json at all`)

	h, err := newWav2vecHandle(cfg)
	if err != nil {
		t.Fatalf("newWav2vecHandle() error = %v", err)
	}
	defer h.close()

	samples := make([]float32, modelSampleRate)
	if _, err := h.process(samples); err == nil {
		t.Error("process with malformed runner output should fail")
	}
}
