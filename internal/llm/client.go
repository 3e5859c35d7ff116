package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Complete sends prompt to Gemini, rotating API keys on 429 / quota errors.
func (c *implClient) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for range len(c.apiKeys) {
		idx, key := c.key()

		text, err := c.generate(ctx, key, c.model, prompt)
		if err == nil {
			return text, nil
		}
		if !isRateLimited(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}
		c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		c.rotate(idx)
		lastErr = err
	}
	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *implClient) key() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.apiKeys[c.currentKey]
}

// rotate moves past idx unless another caller already did.
func (c *implClient) rotate(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func geminiGenerate(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("empty response from Gemini")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}
