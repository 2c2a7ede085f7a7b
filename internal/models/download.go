// Package models downloads the model artifacts the local engine needs.
package models

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/voxscribe/voxscribe/internal/config"
)

const (
	whisperModelURL  = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.en.bin"
	whisperModelName = "ggml-base.en.bin"
	wav2vecVocabURL  = "https://huggingface.co/facebook/wav2vec2-base-960h/resolve/main/vocab.json"
	wav2vecVocabName = "wav2vec2_vocab.json"
)

// DownloadAll fetches the whisper ggml weights and the wav2vec CTC
// vocabulary into the default models directory, skipping artifacts that
// are already present.
func DownloadAll() error {
	fmt.Printf("Models directory: %s\n", config.DefaultModelsDir())

	fmt.Println("[1/2] Whisper model:")
	if err := DownloadWhisper(); err != nil {
		return fmt.Errorf("whisper download failed: %w", err)
	}

	fmt.Println("[2/2] wav2vec vocabulary:")
	if err := DownloadWav2vecVocab(); err != nil {
		return fmt.Errorf("vocabulary download failed: %w", err)
	}

	fmt.Println("All artifacts downloaded.")
	return nil
}

// DownloadWhisper downloads the whisper ggml model to the default
// models directory, showing progress on stdout.
func DownloadWhisper() error {
	return download(whisperModelURL, whisperModelName)
}

// DownloadWav2vecVocab downloads the wav2vec2 character vocabulary.
// The ONNX export of the acoustic model itself is produced by the
// inference runner's own tooling and is not fetched here.
func DownloadWav2vecVocab() error {
	return download(wav2vecVocabURL, wav2vecVocabName)
}

// download fetches url into the models directory under name, writing to
// a temp file first and renaming on success. Existing non-empty files
// are kept.
func download(url, name string) error {
	modelsDir := config.DefaultModelsDir()
	if err := os.MkdirAll(modelsDir, 0755); err != nil {
		return fmt.Errorf("creating models dir: %w", err)
	}

	destPath := filepath.Join(modelsDir, name)

	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		fmt.Printf("  already exists: %s (%.1f MB)\n", destPath, float64(info.Size())/(1024*1024))
		return nil
	}

	fmt.Printf("  URL: %s\n", url)
	fmt.Printf("  Destination: %s\n", destPath)

	resp, err := http.Get(url) //nolint:gosec // URL is a compile-time constant
	if err != nil {
		return fmt.Errorf("downloading %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	// Write to temp file first, then rename (atomic)
	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	pr := &progressWriter{
		writer: f,
		total:  resp.ContentLength,
		label:  name,
	}

	written, err := io.Copy(pr, resp.Body)
	f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", name, err)
	}

	fmt.Printf("\n  Downloaded %.1f MB\n", float64(written)/(1024*1024))

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("moving %s into place: %w", name, err)
	}

	return nil
}

// progressWriter wraps an io.Writer and prints download progress.
type progressWriter struct {
	writer  io.Writer
	total   int64
	written int64
	label   string
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	pw.written += int64(n)
	if pw.total > 0 {
		pct := float64(pw.written) / float64(pw.total) * 100
		fmt.Printf("\r  %s: %.1f MB / %.1f MB (%.0f%%)",
			pw.label,
			float64(pw.written)/(1024*1024),
			float64(pw.total)/(1024*1024),
			pct)
	} else {
		fmt.Printf("\r  %s: %.1f MB downloaded",
			pw.label,
			float64(pw.written)/(1024*1024))
	}
	return n, err
}
