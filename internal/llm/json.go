package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFence removes a surrounding ```json ... ``` block if present.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeJSON unmarshals a model answer that may be fenced or wrapped in prose.
// It falls back to the outermost [...] or {...} span.
func DecodeJSON(raw string, v any) error {
	text := StripCodeFence(raw)
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	for _, pair := range [][2]string{{"[", "]"}, {"{", "}"}} {
		start := strings.Index(text, pair[0])
		end := strings.LastIndex(text, pair[1])
		if start >= 0 && end > start {
			if err := json.Unmarshal([]byte(text[start:end+1]), v); err == nil {
				return nil
			}
		}
	}
	return fmt.Errorf("no JSON value in model response: %q", truncate(text, 120))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
