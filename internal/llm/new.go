package llm

import (
	"context"
	"errors"
	"sync"

	"github.com/nguyentantai21042004/shortreel/internal/logger"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrNoAPIKeys is returned by New when no Gemini key is configured.
var ErrNoAPIKeys = errors.New("no Gemini API keys configured")

// generateFunc performs one request with one key.
type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

type implClient struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
	generate   generateFunc
}

// New creates a Client that rotates through apiKeys when one is rate limited.
func New(apiKeys []string, model string, log logger.Logger) (Client, error) {
	c, err := newClient(apiKeys, model, log, geminiGenerate)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newClient(apiKeys []string, model string, log logger.Logger, generate generateFunc) (*implClient, error) {
	if len(apiKeys) == 0 {
		return nil, ErrNoAPIKeys
	}
	if model == "" {
		model = DefaultModel
	}
	return &implClient{
		apiKeys:  append([]string(nil), apiKeys...),
		model:    model,
		logger:   log.Named("llm"),
		generate: generate,
	}, nil
}
