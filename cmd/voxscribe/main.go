package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/voxscribe/voxscribe/internal/audio"
	"github.com/voxscribe/voxscribe/internal/config"
	"github.com/voxscribe/voxscribe/internal/models"
	"github.com/voxscribe/voxscribe/internal/transcribe"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/voxscribe/config.yaml)")
	engineFlag := flag.String("engine", "", "transcription engine: network or local (default: from config)")
	filePath := flag.String("file", "", "transcribe this WAV file instead of recording")
	duration := flag.Float64("duration", 0, "microphone capture duration in seconds (default: from config)")
	download := flag.Bool("download-models", false, "download model artifacts and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("config", "error", err)
	}

	if *engineFlag != "" {
		cfg.Engine = *engineFlag
	}
	if *duration > 0 {
		cfg.Audio.CaptureSeconds = *duration
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("config validation", "error", err)
	}

	if level, perr := log.ParseLevel(cfg.LogLevel); perr == nil {
		log.SetLevel(level)
	}

	if *download {
		if err := models.DownloadAll(); err != nil {
			log.Fatal("model download", "error", err)
		}
		return
	}

	if err := run(cfg, *filePath); err != nil {
		if errors.Is(err, transcribe.ErrNoSpeech) {
			log.Error("the service could not understand the audio; try again closer to the microphone")
			os.Exit(1)
		}
		log.Fatal("transcription failed", "error", err)
	}
}

// run resolves the engine, obtains a buffer from the file or the
// microphone, normalizes it if the engine requires a fixed rate, and
// prints the transcription result.
func run(cfg *config.Config, filePath string) error {
	sel, err := transcribe.Select(transcribe.Kind(cfg.Engine), cfg)
	if err != nil {
		return err
	}
	defer sel.Close()

	log.Info("engine ready", "requested", cfg.Engine, "using", sel.Engine.Kind(), "fallback", sel.Fallback)

	buf, err := acquireAudio(cfg, filePath)
	if err != nil {
		return err
	}
	log.Info("audio ready", "duration_sec", fmt.Sprintf("%.1f", buf.Duration()), "rate", buf.SampleRate, "channels", buf.Channels)

	if rate := sel.Engine.SampleRate(); rate > 0 {
		buf, err = audio.Normalize(buf, rate)
		if err != nil {
			return err
		}
		log.Debug("audio normalized", "rate", buf.SampleRate)
	}

	result, err := sel.Transcribe(context.Background(), buf)
	if err != nil {
		return err
	}

	log.Info("transcribed", "elapsed", result.Elapsed.Round(time.Millisecond))
	printResult(result)
	return nil
}

// acquireAudio loads the given WAV file, or records from the default
// microphone when no file is given.
func acquireAudio(cfg *config.Config, filePath string) (*audio.Buffer, error) {
	if filePath != "" {
		log.Info("loading audio file", "path", filePath)
		return audio.LoadWAV(filePath)
	}

	rec, err := audio.NewRecorder(cfg.Audio.SampleRate, cfg.Audio.Channels)
	if err != nil {
		return nil, err
	}
	defer rec.Close()

	log.Info("recording... speak now", "seconds", cfg.Audio.CaptureSeconds)
	return rec.Record(cfg.Audio.CaptureSeconds)
}

// printResult writes the transcription block to stdout.
func printResult(r *transcribe.Result) {
	engine := string(r.Engine)
	if r.Fallback {
		engine += " (fallback)"
	}
	fmt.Println("========================================")
	fmt.Printf("TRANSCRIPTION RESULT [%s]\n", engine)
	fmt.Println("========================================")
	fmt.Println(r.Text)
	fmt.Println("========================================")
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		log.Debug("config loaded", "path", defaultPath)
		return cfg, nil
	}

	log.Debug("no config file found, using defaults")
	return config.Default(), nil
}
