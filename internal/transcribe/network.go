package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/voxscribe/voxscribe/internal/audio"
	"github.com/voxscribe/voxscribe/internal/config"
)

// NetworkEngine delegates transcription to a remote recognition service
// speaking the whisper-style transcriptions protocol: multipart WAV
// upload in, plain text out.
type NetworkEngine struct {
	cfg    config.NetworkConfig
	client *http.Client
}

// NewNetworkEngine creates a network engine for the configured service.
func NewNetworkEngine(cfg config.NetworkConfig) (*NetworkEngine, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("transcribe: network engine URL not configured")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &NetworkEngine{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Kind identifies the engine.
func (e *NetworkEngine) Kind() Kind { return KindNetwork }

// SampleRate returns 0: the service accepts native-rate audio, so no
// normalization is needed on this path.
func (e *NetworkEngine) SampleRate() int { return 0 }

// Close releases any resources (none for the HTTP client).
func (e *NetworkEngine) Close() error { return nil }

// Transcribe sends the buffer to the recognition service and returns
// the recognized text. The buffer is staged as a 16-bit PCM WAV at its
// native sample rate. An empty hypothesis surfaces as ErrNoSpeech.
func (e *NetworkEngine) Transcribe(ctx context.Context, buf *audio.Buffer) (string, error) {
	if err := buf.Validate(); err != nil {
		return "", err
	}

	wavPath, err := stageWAV(buf)
	if err != nil {
		return "", err
	}
	defer os.Remove(wavPath)

	body, contentType, err := e.buildRequestBody(wavPath)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.URL, body)
	if err != nil {
		return "", fmt.Errorf("transcribe: create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if e.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	}

	log.Debug("sending audio to recognition service", "url", e.cfg.URL, "duration_sec", buf.Duration())

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe: recognition request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("transcribe: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", serviceError(resp.StatusCode, respBody)
	}

	text := strings.TrimSpace(string(respBody))
	if text == "" {
		return "", ErrNoSpeech
	}

	log.Debug("recognition complete", "length", len(text))
	return text, nil
}

// buildRequestBody assembles the multipart form: audio file, model name,
// response format, and optional language hint.
func (e *NetworkEngine) buildRequestBody(wavPath string) (*bytes.Buffer, string, error) {
	f, err := os.Open(wavPath)
	if err != nil {
		return nil, "", fmt.Errorf("transcribe: open staged audio: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return nil, "", fmt.Errorf("transcribe: create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("transcribe: copy audio to form: %w", err)
	}

	if err := writer.WriteField("model", e.cfg.Model); err != nil {
		return nil, "", fmt.Errorf("transcribe: write model field: %w", err)
	}
	if err := writer.WriteField("response_format", "text"); err != nil {
		return nil, "", fmt.Errorf("transcribe: write response_format field: %w", err)
	}
	if e.cfg.Language != "" {
		if err := writer.WriteField("language", e.cfg.Language); err != nil {
			return nil, "", fmt.Errorf("transcribe: write language field: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("transcribe: close multipart writer: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// stageWAV writes the buffer to a temp WAV file and returns its path.
// The caller removes the file.
func stageWAV(buf *audio.Buffer) (string, error) {
	f, err := os.CreateTemp("", "voxscribe-*.wav")
	if err != nil {
		return "", fmt.Errorf("transcribe: temp file: %w", err)
	}
	path := f.Name()
	f.Close()

	if err := audio.WriteWAV(path, buf); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// serviceError turns a non-200 response into an error, preferring the
// service's own error message when the body carries one.
func serviceError(status int, body []byte) error {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
		return fmt.Errorf("transcribe: recognition service: %s", errResp.Error.Message)
	}
	return fmt.Errorf("transcribe: recognition service: status %d", status)
}
