package render

import (
	"fmt"
	"strings"
)

// Style configures burned-in subtitles. Colours use the ASS &HAABBGGRR form.
// Outline and Shadow may legitimately be 0, so nil marks them unset.
type Style struct {
	FontName      string
	FontSize      int
	PrimaryColour string
	OutlineColour string
	Outline       *int
	Shadow        *int
	Alignment     int
}

// DefaultStyle is white Arial 28 with a black outline, bottom centre.
func DefaultStyle() Style {
	return Style{
		FontName:      "Arial",
		FontSize:      28,
		PrimaryColour: "&H00FFFFFF",
		OutlineColour: "&H00000000",
		Outline:       intPtr(2),
		Shadow:        intPtr(1),
		Alignment:     2,
	}
}

func intPtr(v int) *int { return &v }

// withDefaults fills unset fields from DefaultStyle.
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.FontName == "" {
		s.FontName = d.FontName
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
	if s.PrimaryColour == "" {
		s.PrimaryColour = d.PrimaryColour
	}
	if s.OutlineColour == "" {
		s.OutlineColour = d.OutlineColour
	}
	if s.Outline == nil || *s.Outline < 0 {
		s.Outline = d.Outline
	}
	if s.Shadow == nil || *s.Shadow < 0 {
		s.Shadow = d.Shadow
	}
	if s.Alignment <= 0 {
		s.Alignment = d.Alignment
	}
	return s
}

// forceStyle renders the style as the subtitles filter's force_style value.
func (s Style) forceStyle() string {
	s = s.withDefaults()
	fields := []string{
		"FontName=" + strings.NewReplacer(",", "", "'", "", ":", "").Replace(s.FontName),
		fmt.Sprintf("FontSize=%d", s.FontSize),
		"PrimaryColour=" + s.PrimaryColour,
		"OutlineColour=" + s.OutlineColour,
		"BorderStyle=1",
		fmt.Sprintf("Outline=%d", *s.Outline),
		fmt.Sprintf("Shadow=%d", *s.Shadow),
		fmt.Sprintf("Alignment=%d", s.Alignment),
	}
	return strings.Join(fields, ",")
}
