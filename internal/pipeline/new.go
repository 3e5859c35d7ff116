package pipeline

import (
	"path/filepath"

	"github.com/nguyentantai21042004/shortreel/internal/aligner"
	"github.com/nguyentantai21042004/shortreel/internal/images"
	"github.com/nguyentantai21042004/shortreel/internal/logger"
	"github.com/nguyentantai21042004/shortreel/internal/render"
	"github.com/nguyentantai21042004/shortreel/internal/store"
	"github.com/nguyentantai21042004/shortreel/internal/transcribe"
	"golang.org/x/sync/semaphore"
)

// Options holds directories and limits.
type Options struct {
	OutputDir    string
	ImagesDir    string
	VoiceoverDir string
	TempDir      string
	LockDir      string
	Style        render.Style
	// MaxConcurrentRenders bounds encodes across all projects.
	MaxConcurrentRenders int
	// MaxConcurrentImages bounds image requests within one AcquireImages call.
	MaxConcurrentImages int
	// Storyboard enables the DOCX export after a successful render.
	Storyboard bool
}

// Deps are the collaborators. Images and Hashtags may be nil.
type Deps struct {
	Store       store.Store
	Renderer    render.Renderer
	Aligner     aligner.Aligner
	Transcriber transcribe.Transcriber
	Images      images.Fetcher
	Hashtags    HashtagGenerator
	Logger      logger.Logger
}

type implCoordinator struct {
	opts        Options
	store       store.Store
	renderer    render.Renderer
	aligner     aligner.Aligner
	transcriber transcribe.Transcriber
	images      images.Fetcher
	hashtags    HashtagGenerator
	logger      logger.Logger
	renderSlots *semaphore.Weighted
}

// New creates a Coordinator.
func New(opts Options, deps Deps) Coordinator {
	if opts.LockDir == "" {
		opts.LockDir = filepath.Join(opts.TempDir, "locks")
	}
	if opts.MaxConcurrentRenders <= 0 {
		opts.MaxConcurrentRenders = 1
	}
	if opts.MaxConcurrentImages <= 0 {
		opts.MaxConcurrentImages = 3
	}
	return &implCoordinator{
		opts:        opts,
		store:       deps.Store,
		renderer:    deps.Renderer,
		aligner:     deps.Aligner,
		transcriber: deps.Transcriber,
		images:      deps.Images,
		hashtags:    deps.Hashtags,
		logger:      deps.Logger.Named("pipeline"),
		renderSlots: semaphore.NewWeighted(int64(opts.MaxConcurrentRenders)),
	}
}
