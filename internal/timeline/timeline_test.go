package timeline_test

import (
	"testing"

	"kinescope/internal/timeline"
)

func TestNewSortsSegments(t *testing.T) {
	tl, err := timeline.New(
		[]timeline.CameraSegment{
			{Start: 5, End: 6, From: timeline.CameraTarget{Zoom: 1, CenterX: 0.5, CenterY: 0.5}, To: timeline.CameraTarget{Zoom: 2, CenterX: 0.5, CenterY: 0.5}},
			{Start: 1, End: 2, From: timeline.CameraTarget{Zoom: 1, CenterX: 0.5, CenterY: 0.5}, To: timeline.CameraTarget{Zoom: 1.5, CenterX: 0.5, CenterY: 0.5}},
		},
		nil,
		[]timeline.KeystrokeSegment{
			{Start: 3, End: 4, Label: "B"},
			{Start: 0, End: 1, Label: "A"},
		},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tl.Camera[0].Start != 1 || tl.Camera[1].Start != 5 {
		t.Fatalf("camera segments not sorted: %+v", tl.Camera)
	}
	if tl.Keystrokes[0].Label != "A" {
		t.Fatalf("keystroke segments not sorted: %+v", tl.Keystrokes)
	}
	if got := tl.Duration(); got != 6 {
		t.Fatalf("Duration = %v; want 6", got)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	cases := []struct {
		name   string
		camera []timeline.CameraSegment
	}{
		{
			"zoom below one",
			[]timeline.CameraSegment{{Start: 0, End: 1, From: timeline.CameraTarget{Zoom: 0.5, CenterX: 0.5, CenterY: 0.5}, To: timeline.CameraTarget{Zoom: 1, CenterX: 0.5, CenterY: 0.5}}},
		},
		{
			"center outside range",
			[]timeline.CameraSegment{{Start: 0, End: 1, From: timeline.CameraTarget{Zoom: 1, CenterX: 1.5, CenterY: 0.5}, To: timeline.CameraTarget{Zoom: 1, CenterX: 0.5, CenterY: 0.5}}},
		},
		{
			"end before start",
			[]timeline.CameraSegment{{Start: 2, End: 1, From: timeline.CameraTarget{Zoom: 1, CenterX: 0.5, CenterY: 0.5}, To: timeline.CameraTarget{Zoom: 1, CenterX: 0.5, CenterY: 0.5}}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := timeline.New(tc.camera, nil, nil); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCameraSegmentAt(t *testing.T) {
	tl, err := timeline.New([]timeline.CameraSegment{
		{Start: 1, End: 2, From: timeline.CameraTarget{Zoom: 1, CenterX: 0.5, CenterY: 0.5}, To: timeline.CameraTarget{Zoom: 2, CenterX: 0.5, CenterY: 0.5}},
		{Start: 4, End: 5, From: timeline.CameraTarget{Zoom: 2, CenterX: 0.5, CenterY: 0.5}, To: timeline.CameraTarget{Zoom: 1, CenterX: 0.5, CenterY: 0.5}},
	}, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if seg := tl.CameraSegmentAt(0.5); seg != nil {
		t.Fatalf("expected nil before first segment, got %+v", seg)
	}
	if seg := tl.CameraSegmentAt(1.5); seg == nil || seg.Start != 1 {
		t.Fatalf("expected first segment at 1.5, got %+v", seg)
	}
	// A gap resolves to the nearest earlier segment so the camera holds.
	if seg := tl.CameraSegmentAt(3); seg == nil || seg.Start != 1 {
		t.Fatalf("expected held first segment at 3, got %+v", seg)
	}
	if seg := tl.CameraSegmentAt(10); seg == nil || seg.Start != 4 {
		t.Fatalf("expected last segment at 10, got %+v", seg)
	}
}
