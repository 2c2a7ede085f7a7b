// Package config loads and validates the YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Engine   string        `yaml:"engine"` // "network" or "local"
	Audio    AudioConfig   `yaml:"audio"`
	Network  NetworkConfig `yaml:"network"`
	Local    LocalConfig   `yaml:"local"`
	LogLevel string        `yaml:"log_level"`
}

// AudioConfig holds audio capture settings.
type AudioConfig struct {
	SampleRate     uint32  `yaml:"sample_rate"`
	Channels       uint32  `yaml:"channels"`
	CaptureSeconds float64 `yaml:"capture_seconds"`
}

// NetworkConfig holds settings for the remote recognition service.
type NetworkConfig struct {
	URL            string `yaml:"url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	Language       string `yaml:"language"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LocalConfig holds settings for the local acoustic model.
type LocalConfig struct {
	Backend   string        `yaml:"backend"` // "whisper" or "wav2vec"
	ModelPath string        `yaml:"model_path"`
	Wav2vec   Wav2vecConfig `yaml:"wav2vec"`
}

// Wav2vecConfig holds settings for the external CTC inference runner.
type Wav2vecConfig struct {
	Command   string `yaml:"command"`
	ModelPath string `yaml:"model_path"`
	VocabPath string `yaml:"vocab_path"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "voxscribe")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultModelsDir returns the default directory for model artifacts.
func DefaultModelsDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "voxscribe", "models")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	modelsDir := DefaultModelsDir()

	return &Config{
		Engine: "network",
		Audio: AudioConfig{
			SampleRate:     44100,
			Channels:       1,
			CaptureSeconds: 5,
		},
		Network: NetworkConfig{
			URL:            "https://api.openai.com/v1/audio/transcriptions",
			Model:          "whisper-1",
			TimeoutSeconds: 30,
		},
		Local: LocalConfig{
			Backend:   "whisper",
			ModelPath: filepath.Join(modelsDir, "ggml-base.en.bin"),
			Wav2vec: Wav2vecConfig{
				Command:   "wav2vec2-infer",
				ModelPath: filepath.Join(modelsDir, "wav2vec2-base-960h.onnx"),
				VocabPath: filepath.Join(modelsDir, "wav2vec2_vocab.json"),
			},
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. Tilde (~) in paths is expanded to the user's home
// directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.Local.ModelPath = expandTilde(cfg.Local.ModelPath)
	cfg.Local.Wav2vec.ModelPath = expandTilde(cfg.Local.Wav2vec.ModelPath)
	cfg.Local.Wav2vec.VocabPath = expandTilde(cfg.Local.Wav2vec.VocabPath)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	switch c.Engine {
	case "network", "local":
	default:
		return fmt.Errorf("engine must be \"network\" or \"local\", got %q", c.Engine)
	}

	if c.Audio.SampleRate == 0 {
		return fmt.Errorf("audio.sample_rate must be > 0")
	}

	if c.Audio.Channels == 0 {
		return fmt.Errorf("audio.channels must be > 0")
	}

	if c.Audio.CaptureSeconds <= 0 {
		return fmt.Errorf("audio.capture_seconds must be > 0, got %g", c.Audio.CaptureSeconds)
	}

	if c.Network.TimeoutSeconds <= 0 {
		return fmt.Errorf("network.timeout_seconds must be > 0, got %d", c.Network.TimeoutSeconds)
	}

	switch c.Local.Backend {
	case "whisper", "wav2vec":
	default:
		return fmt.Errorf("local.backend must be \"whisper\" or \"wav2vec\", got %q", c.Local.Backend)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
