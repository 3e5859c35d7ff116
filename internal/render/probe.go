package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ProbeResult is the subset of ffprobe's JSON output we use.
type ProbeResult struct {
	Streams []ProbeStream `json:"streams"`
	Format  ProbeFormat   `json:"format"`
}

// ProbeStream describes one stream in the container.
type ProbeStream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Duration  string `json:"duration"`
}

// ProbeFormat holds container-level metadata.
type ProbeFormat struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Probe runs ffprobe on path and decodes its JSON report.
func (r *implRenderer) Probe(ctx context.Context, path string) (ProbeResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return ProbeResult{}, errors.New("ffprobe: empty path")
	}
	out, err := r.executor.Execute(ctx, r.opts.ProbeBinary,
		"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("ffprobe: %w", err)
	}
	return ParseProbe([]byte(out))
}

// ParseProbe decodes ffprobe -of json output.
func ParseProbe(data []byte) (ProbeResult, error) {
	var result ProbeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return ProbeResult{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// DurationSeconds returns the container duration, or 0 when unavailable.
func (p ProbeResult) DurationSeconds() float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(p.Format.Duration), 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0
	}
	return d
}

// VideoSize returns the first video stream's dimensions.
func (p ProbeResult) VideoSize() (Dimensions, bool) {
	for _, s := range p.Streams {
		if strings.EqualFold(s.CodecType, "video") {
			return Dimensions{Width: s.Width, Height: s.Height}, true
		}
	}
	return Dimensions{}, false
}
