package images

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/shortreel/internal/logger"
)

// Source is recorded on scenes whose image came from this fetcher.
const Source = "pollinations"

// Options configures the Pollinations client.
type Options struct {
	BaseURL    string
	Width      int
	Height     int
	Timeout    time.Duration
	Attempts   int
	RetryDelay time.Duration
}

type implFetcher struct {
	opts       Options
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Fetcher for a Pollinations-style GET endpoint.
func New(opts Options, log logger.Logger) Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://image.pollinations.ai/prompt"
	}
	if opts.Width == 0 {
		opts.Width = 1080
	}
	if opts.Height == 0 {
		opts.Height = 1920
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	}
	return &implFetcher{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     log.Named("images"),
	}
}
