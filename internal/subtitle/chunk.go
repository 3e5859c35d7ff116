package subtitle

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

// DefaultWordsPerChunk is how many words are shown on screen at once.
const DefaultWordsPerChunk = 4

// Chunk groups words into captions of at most size words. Chunk bounds are
// the first word's start and the last word's end, as transcribed.
func Chunk(words []models.Word, sceneStart float64, size int) []models.SubtitleChunk {
	if len(words) == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultWordsPerChunk
	}

	groups := lo.Chunk(words, size)
	chunks := make([]models.SubtitleChunk, 0, len(groups))
	for i, group := range groups {
		text := strings.Join(lo.FilterMap(group, func(w models.Word, _ int) (string, bool) {
			t := strings.TrimSpace(w.Text)
			return t, t != ""
		}), " ")

		chunks = append(chunks, models.SubtitleChunk{
			ID:    fmt.Sprintf("%.3f_%d", sceneStart, i),
			Start: group[0].Start,
			End:   group[len(group)-1].End,
			Text:  text,
		})
	}
	return chunks
}
