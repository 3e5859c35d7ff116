package render

import "fmt"

// Dimensions is an output frame size in pixels.
type Dimensions struct {
	Width  int
	Height int
}

var aspects = map[string]Dimensions{
	"9:16": {Width: 1080, Height: 1920},
	"16:9": {Width: 1920, Height: 1080},
	"1:1":  {Width: 1080, Height: 1080},
}

// ThumbnailSize is used for every thumbnail regardless of the video's aspect.
var ThumbnailSize = Dimensions{Width: 1080, Height: 1920}

// AspectDimensions maps an aspect ratio name to its output size.
func AspectDimensions(aspect string) (Dimensions, error) {
	if aspect == "" {
		aspect = "9:16"
	}
	d, ok := aspects[aspect]
	if !ok {
		return Dimensions{}, fmt.Errorf("unsupported aspect ratio %q", aspect)
	}
	return d, nil
}

// fitFilter scales into the frame keeping the aspect ratio, then pads the
// remainder with black bars, centered.
func fitFilter(d Dimensions) string {
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1",
		d.Width, d.Height, d.Width, d.Height,
	)
}
