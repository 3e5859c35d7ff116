package aligner

import (
	"github.com/nguyentantai21042004/shortreel/internal/logger"
	"github.com/nguyentantai21042004/shortreel/internal/subtitle"
)

// DefaultTolerance is how far (seconds) a proposed boundary may drift before
// the whole proposal is rejected.
const DefaultTolerance = 1.0

type implAligner struct {
	matcher       TextCompleter
	logger        logger.Logger
	tolerance     float64
	wordsPerChunk int
}

// Option customizes the aligner.
type Option func(*implAligner)

// WithTolerance sets the boundary snapping tolerance in seconds.
func WithTolerance(seconds float64) Option {
	return func(a *implAligner) {
		if seconds > 0 {
			a.tolerance = seconds
		}
	}
}

// WithWordsPerChunk sets how many words go into each subtitle chunk.
func WithWordsPerChunk(n int) Option {
	return func(a *implAligner) {
		if n > 0 {
			a.wordsPerChunk = n
		}
	}
}

// New creates an Aligner. matcher may be nil, in which case every timeline
// is produced by the even split.
func New(matcher TextCompleter, log logger.Logger, opts ...Option) Aligner {
	a := &implAligner{
		matcher:       matcher,
		logger:        log.Named("aligner"),
		tolerance:     DefaultTolerance,
		wordsPerChunk: subtitle.DefaultWordsPerChunk,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
