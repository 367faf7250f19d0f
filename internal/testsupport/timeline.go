package testsupport

import (
	"testing"

	"kinescope/internal/timeline"
)

// LinearTimeline builds a single-segment camera timeline animating from one
// transform to another with linear easing.
func LinearTimeline(t testing.TB, start, end float64, from, to timeline.CameraTarget) *timeline.Timeline {
	t.Helper()

	tl, err := timeline.New([]timeline.CameraSegment{
		{
			Start:  start,
			End:    end,
			From:   from,
			To:     to,
			Easing: timeline.Easing{Kind: timeline.EaseLinear},
		},
	}, nil, nil)
	if err != nil {
		t.Fatalf("timeline.New: %v", err)
	}
	return tl
}

// Target is shorthand for a camera target keyframe value.
func Target(zoom, cx, cy float64) timeline.CameraTarget {
	return timeline.CameraTarget{Zoom: zoom, CenterX: cx, CenterY: cy}
}
