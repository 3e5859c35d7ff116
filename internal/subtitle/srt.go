package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/pkg/timefmt"
)

// SortChronologically orders chunks by start time, keeping scene order on ties.
func SortChronologically(chunks []models.SubtitleChunk) []models.SubtitleChunk {
	out := append([]models.SubtitleChunk(nil), chunks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// WriteSRT writes chunks as numbered SRT cues. Chunks with no text are skipped
// so the cue numbering stays dense.
func WriteSRT(w io.Writer, chunks []models.SubtitleChunk) error {
	bw := bufio.NewWriter(w)
	index := 0
	for _, chunk := range chunks {
		text := strings.TrimSpace(chunk.Text)
		if text == "" {
			continue
		}
		index++
		if index > 1 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n",
			index,
			timefmt.FormatSRT(chunk.Start),
			timefmt.FormatSRT(chunk.End),
			text,
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}
