package aligner

import (
	"context"

	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/nguyentantai21042004/shortreel/internal/subtitle"
)

// Align never fails: any problem with the matcher ends in the even split.
func (a *implAligner) Align(ctx context.Context, scenes []models.ScriptScene, transcript models.Transcript) models.Timeline {
	if len(scenes) == 0 {
		return models.Timeline{TotalDuration: 0, AlignmentMethod: models.AlignmentFallback, Scenes: []models.TimelineScene{}}
	}

	duration := transcript.Duration
	if duration < 0 {
		duration = 0
	}

	method := models.AlignmentFallback
	intervals, err := a.match(ctx, scenes, transcript.Segments, duration)
	if err != nil {
		a.logger.Warn(ctx, "Scene matching unusable, splitting %.2fs evenly across %d scenes: %v", duration, len(scenes), err)
		intervals = EvenSplit(duration, len(scenes))
	} else {
		method = models.AlignmentMatched
	}

	timeline := models.Timeline{
		TotalDuration:   duration,
		AlignmentMethod: method,
		Scenes:          make([]models.TimelineScene, len(scenes)),
	}
	for i, scene := range scenes {
		iv := intervals[i]
		last := i == len(scenes)-1
		timeline.Scenes[i] = models.TimelineScene{
			ID:               scene.ID,
			Order:            i,
			StartTime:        iv.Start,
			EndTime:          iv.End,
			Duration:         iv.End - iv.Start,
			SceneText:        scene.Text,
			SceneDescription: scene.VisualDescription,
			Subtitles:        subtitle.Chunk(WordsInInterval(transcript.Words, iv, last), iv.Start, a.wordsPerChunk),
		}
	}

	a.logger.Info(ctx, "Aligned %d scenes over %.2fs (%s)", len(scenes), duration, method)
	return timeline
}

func (a *implAligner) match(ctx context.Context, scenes []models.ScriptScene, segments []models.Segment, duration float64) ([]Interval, error) {
	if a.matcher == nil {
		return nil, errNoMatcher
	}
	if len(segments) == 0 {
		return nil, errNoSegments
	}

	raw, err := a.matcher.Complete(ctx, buildPrompt(scenes, segments, duration))
	if err != nil {
		return nil, err
	}
	proposals, err := parseProposals(raw)
	if err != nil {
		return nil, err
	}
	return validateProposals(proposals, len(scenes), duration, a.tolerance)
}

// WordsInInterval returns the words that start inside [iv.Start, iv.End).
// closeEnd makes the interval closed, for the final scene. A word running past
// iv.End is clamped so captions never spill into the next scene.
func WordsInInterval(words []models.Word, iv Interval, closeEnd bool) []models.Word {
	var out []models.Word
	for _, w := range words {
		if w.Start < iv.Start {
			continue
		}
		if w.Start > iv.End || (w.Start == iv.End && !closeEnd) {
			continue
		}
		if w.End > iv.End {
			w.End = iv.End
		}
		out = append(out, w)
	}
	return out
}
