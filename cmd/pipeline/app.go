package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/shortreel/internal/aligner"
	"github.com/nguyentantai21042004/shortreel/internal/config"
	"github.com/nguyentantai21042004/shortreel/internal/images"
	"github.com/nguyentantai21042004/shortreel/internal/llm"
	"github.com/nguyentantai21042004/shortreel/internal/logger"
	"github.com/nguyentantai21042004/shortreel/internal/pipeline"
	"github.com/nguyentantai21042004/shortreel/internal/render"
	"github.com/nguyentantai21042004/shortreel/internal/store"
	"github.com/nguyentantai21042004/shortreel/internal/transcribe"
	"github.com/nguyentantai21042004/shortreel/pkg/executor"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg   *config.Config
	log   logger.Logger
	store store.Store
	coord pipeline.Coordinator
}

type appLoader func() (*app, error)

func newApp(configPath, envPath string) (*app, error) {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.LoadSecrets(envPath)

	log := logger.New(cfg.Logging.Level)
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	st, err := store.Open(filepath.Join(cfg.Paths.Data, "shortreel.db"))
	if err != nil {
		return nil, err
	}

	// Encodes get the configured timeout; probes and whisper do not.
	encodeExec := executor.New(executor.WithTimeout(cfg.EncodeTimeout()))
	exec := executor.New()

	var matcher aligner.TextCompleter
	var hashtags pipeline.HashtagGenerator
	client, err := llm.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	if err != nil {
		log.Warn(ctx, "Gemini disabled (%v): alignment uses the even split and hashtags are empty", err)
	} else {
		matcher = client
		hashtags = client
	}

	renderer := render.New(render.Options{
		FFmpegBinary: cfg.FFmpeg.Binary,
		ProbeBinary:  cfg.FFmpeg.ProbeBinary,
		VideoCodec:   cfg.FFmpeg.VideoCodec,
		Preset:       cfg.FFmpeg.Preset,
		CRF:          cfg.FFmpeg.CRF,
		AudioBitrate: cfg.FFmpeg.AudioBitrate,
		FPS:          cfg.FFmpeg.FPS,
	}, encodeExec, log)

	whisper := transcribe.NewWhisper(transcribe.Options{
		BinaryPath:   cfg.Whisper.BinaryPath,
		ModelPath:    cfg.Whisper.ModelPath,
		Language:     cfg.Whisper.Language,
		Threads:      cfg.Whisper.Threads,
		FFmpegBinary: cfg.FFmpeg.Binary,
		ProbeBinary:  cfg.FFmpeg.ProbeBinary,
		TempDir:      cfg.Paths.Temp,
	}, exec, log)

	fetcher := images.New(images.Options{
		BaseURL:    cfg.Images.BaseURL,
		Width:      cfg.Images.Width,
		Height:     cfg.Images.Height,
		Timeout:    time.Duration(cfg.Images.TimeoutSeconds) * time.Second,
		RetryDelay: 3 * time.Second,
	}, log)

	coord := pipeline.New(pipeline.Options{
		OutputDir:    cfg.Paths.Output,
		ImagesDir:    cfg.Paths.Images,
		VoiceoverDir: filepath.Join(cfg.Paths.Data, "voiceovers"),
		TempDir:      cfg.Paths.Temp,
		Style: render.Style{
			FontName:      cfg.Subtitles.FontName,
			FontSize:      cfg.Subtitles.FontSize,
			PrimaryColour: cfg.Subtitles.PrimaryColour,
			OutlineColour: cfg.Subtitles.OutlineColour,
			Outline:       cfg.Subtitles.Outline,
			Shadow:        cfg.Subtitles.Shadow,
			Alignment:     cfg.Subtitles.Alignment,
		},
		MaxConcurrentRenders: cfg.Render.MaxConcurrent,
		MaxConcurrentImages:  cfg.Images.MaxConcurrent,
		Storyboard:           true,
	}, pipeline.Deps{
		Store:    st,
		Renderer: renderer,
		Aligner: aligner.New(matcher, log,
			aligner.WithTolerance(cfg.Alignment.BoundaryToleranceSeconds),
			aligner.WithWordsPerChunk(cfg.Subtitles.WordsPerChunk),
		),
		Transcriber: whisper,
		Images:      fetcher,
		Hashtags:    hashtags,
		Logger:      log,
	})

	return &app{cfg: cfg, log: log, store: st, coord: coord}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Data,
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Images,
		cfg.Paths.Temp,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
