package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
	Whisper   WhisperConfig   `yaml:"whisper"`
	Subtitles SubtitlesConfig `yaml:"subtitles"`
	Alignment AlignmentConfig `yaml:"alignment"`
	Render    RenderConfig    `yaml:"render"`
	Images    ImagesConfig    `yaml:"images"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Paths     PathsConfig     `yaml:"paths"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type FFmpegConfig struct {
	Binary         string `yaml:"binary"`
	ProbeBinary    string `yaml:"probe_binary"`
	VideoCodec     string `yaml:"video_codec"`
	Preset         string `yaml:"preset"`
	CRF            int    `yaml:"crf"`
	AudioBitrate   string `yaml:"audio_bitrate"`
	FPS            int    `yaml:"fps"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type SubtitlesConfig struct {
	WordsPerChunk int    `yaml:"words_per_chunk"`
	FontName      string `yaml:"font_name"`
	FontSize      int    `yaml:"font_size"`
	PrimaryColour string `yaml:"primary_colour"`
	OutlineColour string `yaml:"outline_colour"`
	Outline       *int   `yaml:"outline"` // unset keeps the renderer default; 0 is allowed
	Shadow        *int   `yaml:"shadow"`
	Alignment     int    `yaml:"alignment"`
}

type AlignmentConfig struct {
	BoundaryToleranceSeconds float64 `yaml:"boundary_tolerance_seconds"`
}

type RenderConfig struct {
	AspectRatio   string `yaml:"aspect_ratio"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type ImagesConfig struct {
	BaseURL        string `yaml:"base_url"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	MaxConcurrent  int    `yaml:"max_concurrent"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"-"` // filled by LoadSecrets
}

type PathsConfig struct {
	Data   string `yaml:"data"`
	Inbox  string `yaml:"inbox"`
	Output string `yaml:"output"`
	Images string `yaml:"images"`
	Temp   string `yaml:"temp"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadSecrets loads .env (when present) and reads API keys from the environment.
// GEMINI_API_KEYS takes a comma separated list; GEMINI_API_KEY a single key.
func (c *Config) LoadSecrets(envFiles ...string) {
	_ = godotenv.Load(envFiles...)

	raw := os.Getenv("GEMINI_API_KEYS")
	if raw == "" {
		raw = os.Getenv("GEMINI_API_KEY")
	}
	c.Gemini.APIKeys = c.Gemini.APIKeys[:0]
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			c.Gemini.APIKeys = append(c.Gemini.APIKeys, key)
		}
	}
}

// EncodeTimeout is the per-encode limit; zero means unbounded.
func (c *Config) EncodeTimeout() time.Duration {
	return time.Duration(c.FFmpeg.TimeoutSeconds) * time.Second
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.Paths.Data == "" {
		return fmt.Errorf("paths.data is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.FFmpeg.TimeoutSeconds < 0 {
		return fmt.Errorf("ffmpeg.timeout_seconds must not be negative")
	}
	switch c.Render.AspectRatio {
	case "":
		c.Render.AspectRatio = "9:16"
	case "9:16", "16:9", "1:1":
	default:
		return fmt.Errorf("render.aspect_ratio %q is not one of 9:16, 16:9, 1:1", c.Render.AspectRatio)
	}
	if c.Subtitles.WordsPerChunk < 0 {
		return fmt.Errorf("subtitles.words_per_chunk must not be negative")
	}
	if c.Subtitles.Outline != nil && *c.Subtitles.Outline < 0 {
		return fmt.Errorf("subtitles.outline must not be negative")
	}
	if c.Subtitles.Shadow != nil && *c.Subtitles.Shadow < 0 {
		return fmt.Errorf("subtitles.shadow must not be negative")
	}

	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Images == "" {
		c.Paths.Images = "data/images"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = "ffprobe"
	}
	if c.FFmpeg.VideoCodec == "" {
		c.FFmpeg.VideoCodec = "libx264"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "medium"
	}
	if c.FFmpeg.CRF == 0 {
		c.FFmpeg.CRF = 23
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}
	if c.FFmpeg.FPS == 0 {
		c.FFmpeg.FPS = 30
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Subtitles.WordsPerChunk == 0 {
		c.Subtitles.WordsPerChunk = 4
	}
	if c.Alignment.BoundaryToleranceSeconds <= 0 {
		c.Alignment.BoundaryToleranceSeconds = 1.0
	}
	if c.Render.MaxConcurrent == 0 {
		c.Render.MaxConcurrent = 2
	}
	if c.Images.BaseURL == "" {
		c.Images.BaseURL = "https://image.pollinations.ai/prompt"
	}
	if c.Images.Width == 0 {
		c.Images.Width = 1080
	}
	if c.Images.Height == 0 {
		c.Images.Height = 1920
	}
	if c.Images.MaxConcurrent == 0 {
		c.Images.MaxConcurrent = 3
	}
	if c.Images.TimeoutSeconds == 0 {
		c.Images.TimeoutSeconds = 60
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
