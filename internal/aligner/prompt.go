package aligner

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/shortreel/internal/models"
)

const matchPrompt = `You are aligning a narrated voiceover with the scenes of a short video script.

The voiceover lasts %.2f seconds. Below are the script scenes in order, followed by
the transcript segments with their timestamps in seconds.

SCENES:
%s
TRANSCRIPT SEGMENTS:
%s
Assign every scene the time range during which its text is spoken.

Rules:
- Return exactly %d entries, one per scene, using the scene index shown above.
- Scenes stay in their original order and must not overlap.
- The first scene starts at 0 and the last scene ends at %.2f.
- Each scene starts where the previous one ends; leave no gaps.
- Use numbers for all times.

Return ONLY a JSON array, for example:
[{"sceneIndex": 0, "startTime": 0, "endTime": 4.2}, {"sceneIndex": 1, "startTime": 4.2, "endTime": 9.8}]`

func buildPrompt(scenes []models.ScriptScene, segments []models.Segment, duration float64) string {
	var sceneLines strings.Builder
	for i, scene := range scenes {
		fmt.Fprintf(&sceneLines, "[%d] %s\n", i, oneLine(scene.Text))
	}

	var segmentLines strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&segmentLines, "[%.2f - %.2f] %s\n", seg.Start, seg.End, oneLine(seg.Text))
	}

	return fmt.Sprintf(matchPrompt, duration, sceneLines.String(), segmentLines.String(), len(scenes), duration)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
