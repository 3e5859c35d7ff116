package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// MaxHashtags caps the list returned by GenerateHashtags.
const MaxHashtags = 10

const hashtagPrompt = `You write metadata for short vertical videos.
Suggest up to %d hashtags for a video about the topic below.
Mix broad and niche tags. Return ONLY a JSON array of strings, each starting with #.

Topic: %s

Narration:
---
%s
---`

var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

func (c *implClient) GenerateHashtags(ctx context.Context, topic, scriptText string) ([]string, error) {
	raw, err := c.Complete(ctx, fmt.Sprintf(hashtagPrompt, MaxHashtags, topic, scriptText))
	if err != nil {
		return nil, err
	}

	var tags []string
	if err := DecodeJSON(raw, &tags); err != nil {
		// Some answers come back as plain text with inline tags.
		tags = hashtagPattern.FindAllString(raw, -1)
		if len(tags) == 0 {
			return nil, err
		}
	}
	return NormalizeHashtags(tags), nil
}

// NormalizeHashtags turns free-form tags into "#tag" form, dropping empties
// and case-insensitive duplicates, capped at MaxHashtags.
func NormalizeHashtags(tags []string) []string {
	cleaned := lo.FilterMap(tags, func(tag string, _ int) (string, bool) {
		body := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				return r
			}
			return -1
		}, strings.TrimLeft(strings.TrimSpace(tag), "#"))
		if body == "" {
			return "", false
		}
		return "#" + body, true
	})
	unique := lo.UniqBy(cleaned, strings.ToLower)
	if len(unique) > MaxHashtags {
		unique = unique[:MaxHashtags]
	}
	return unique
}
