package transcribe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

type whisperOutput struct {
	Transcription []whisperSegment `json:"transcription"`
}

type whisperSegment struct {
	Offsets whisperOffsets `json:"offsets"`
	Text    string         `json:"text"`
	Tokens  []whisperToken `json:"tokens"`
}

type whisperToken struct {
	Text    string         `json:"text"`
	Offsets whisperOffsets `json:"offsets"`
}

// whisperOffsets are milliseconds from the start of the audio.
type whisperOffsets struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// ParseWhisperJSON decodes whisper.cpp -ojf output. Tokens that do not start
// with a space continue the previous word; special tokens like [_BEG_] are
// dropped. Duration is set to the end of the last segment.
func ParseWhisperJSON(data []byte) (models.Transcript, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return models.Transcript{}, fmt.Errorf("parse whisper json: %w", err)
	}

	var (
		t     models.Transcript
		texts []string
	)
	for _, seg := range out.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		t.Segments = append(t.Segments, models.Segment{
			Index: len(t.Segments),
			Start: seconds(seg.Offsets.From),
			End:   seconds(seg.Offsets.To),
			Text:  text,
		})
		texts = append(texts, text)
		t.Words = appendWords(t.Words, seg.Tokens)

		if end := seconds(seg.Offsets.To); end > t.Duration {
			t.Duration = end
		}
	}
	t.FullText = strings.Join(texts, " ")
	return t, nil
}

func appendWords(words []models.Word, tokens []whisperToken) []models.Word {
	startNew := true
	for _, tok := range tokens {
		if isSpecial(tok.Text) || tok.Text == "" {
			continue
		}
		start, end := seconds(tok.Offsets.From), seconds(tok.Offsets.To)
		if strings.HasPrefix(tok.Text, " ") || startNew || len(words) == 0 {
			text := strings.TrimSpace(tok.Text)
			if text == "" {
				continue
			}
			words = append(words, models.Word{Text: text, Start: start, End: end})
			startNew = false
			continue
		}
		last := &words[len(words)-1]
		last.Text += tok.Text
		if end > last.End {
			last.End = end
		}
	}
	return words
}

func isSpecial(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "[_") && strings.HasSuffix(trimmed, "]")
}

func seconds(ms int64) float64 {
	return float64(ms) / 1000
}
