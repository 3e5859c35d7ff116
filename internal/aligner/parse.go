package aligner

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

type proposal struct {
	SceneIndex *int     `json:"sceneIndex"`
	StartTime  *float64 `json:"startTime"`
	EndTime    *float64 `json:"endTime"`
}

// parseProposals decodes the matcher's JSON array, tolerating markdown fences
// and chatter around the array.
func parseProposals(raw string) ([]proposal, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, errors.New("response contains no JSON array")
	}

	var out []proposal
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("decode proposals: %w", err)
	}
	for i, p := range out {
		if p.SceneIndex == nil || p.StartTime == nil || p.EndTime == nil {
			return nil, fmt.Errorf("proposal %d is missing fields", i)
		}
	}
	return out, nil
}

// validateProposals turns proposals into contiguous intervals covering
// [0, duration]. Boundaries within tolerance are snapped; anything else
// rejects the whole proposal.
func validateProposals(props []proposal, n int, duration, tolerance float64) ([]Interval, error) {
	if len(props) != n {
		return nil, fmt.Errorf("got %d proposals for %d scenes", len(props), n)
	}

	sorted := append([]proposal(nil), props...)
	sort.SliceStable(sorted, func(i, j int) bool { return *sorted[i].SceneIndex < *sorted[j].SceneIndex })

	out := make([]Interval, n)
	for i, p := range sorted {
		if *p.SceneIndex != i {
			return nil, fmt.Errorf("scene indexes are not 0..%d (found %d at position %d)", n-1, *p.SceneIndex, i)
		}
		start, end := *p.StartTime, *p.EndTime
		if !finite(start) || !finite(end) {
			return nil, fmt.Errorf("scene %d has non-finite times", i)
		}
		if end < start {
			return nil, fmt.Errorf("scene %d ends before it starts (%.3f < %.3f)", i, end, start)
		}
		out[i] = Interval{Start: start, End: end}
	}

	if math.Abs(out[0].Start) > tolerance {
		return nil, fmt.Errorf("first scene starts at %.3f, not 0", out[0].Start)
	}
	out[0].Start = 0

	for i := 1; i < n; i++ {
		if drift := out[i].Start - out[i-1].End; math.Abs(drift) > tolerance {
			return nil, fmt.Errorf("scenes %d and %d are %.3fs apart", i-1, i, drift)
		}
		out[i-1].End = out[i].Start
	}

	if math.Abs(out[n-1].End-duration) > tolerance {
		return nil, fmt.Errorf("last scene ends at %.3f, audio ends at %.3f", out[n-1].End, duration)
	}
	out[n-1].End = duration

	for i, iv := range out {
		if iv.End < iv.Start || (duration > 0 && iv.End == iv.Start) {
			return nil, fmt.Errorf("scene %d collapsed to [%.3f, %.3f] after snapping", i, iv.Start, iv.End)
		}
	}
	return out, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
