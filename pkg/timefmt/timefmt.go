package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatSRT converts seconds to the "HH:MM:SS,mmm" form used in SRT cues.
// Negative and non-finite values are treated as zero.
func FormatSRT(seconds float64) string {
	totalMs := toMillis(seconds)

	hours := totalMs / 3_600_000
	totalMs %= 3_600_000
	minutes := totalMs / 60_000
	totalMs %= 60_000
	secs := totalMs / 1000
	ms := totalMs % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}

// FormatClock renders seconds as "M:SS.cc", the short form shown in the CLI.
func FormatClock(seconds float64) string {
	totalCs := int64(math.Round(clamp(seconds) * 100))
	minutes := totalCs / 6000
	totalCs %= 6000
	return fmt.Sprintf("%d:%02d.%02d", minutes, totalCs/100, totalCs%100)
}

// Parse converts a timestamp back to seconds. Accepted forms:
//
//	HH:MM:SS,mmm  HH:MM:SS.mmm  M:SS.cc  M:SS  12.5
func Parse(value string) (float64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, fmt.Errorf("parse timestamp: empty value")
	}
	s = strings.Replace(s, ",", ".", 1)

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("parse timestamp %q: too many fields", value)
	}

	var total float64
	for i, part := range parts {
		last := i == len(parts)-1
		if last {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil || v < 0 {
				return 0, fmt.Errorf("parse timestamp %q: invalid seconds %q", value, part)
			}
			if len(parts) > 1 && v >= 60 {
				return 0, fmt.Errorf("parse timestamp %q: seconds out of range", value)
			}
			total = total*60 + v
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("parse timestamp %q: invalid field %q", value, part)
		}
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("parse timestamp %q: minutes out of range", value)
		}
		total = total*60 + float64(v)
	}
	return total, nil
}

func toMillis(seconds float64) int64 {
	return int64(math.Round(clamp(seconds) * 1000))
}

func clamp(seconds float64) float64 {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0
	}
	return seconds
}
