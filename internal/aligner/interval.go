package aligner

import "errors"

var (
	errNoMatcher  = errors.New("no scene matcher configured")
	errNoSegments = errors.New("transcript has no segments")
)

// Interval is a half-open time range in seconds.
type Interval struct {
	Start float64
	End   float64
}

// EvenSplit divides duration into n contiguous slices in order. The last
// slice always ends exactly at duration.
func EvenSplit(duration float64, n int) []Interval {
	if n <= 0 {
		return nil
	}
	if duration < 0 {
		duration = 0
	}
	step := duration / float64(n)
	out := make([]Interval, n)
	for i := range out {
		out[i].Start = step * float64(i)
		out[i].End = step * float64(i+1)
		if i > 0 {
			out[i].Start = out[i-1].End
		}
	}
	out[n-1].End = duration
	return out
}
