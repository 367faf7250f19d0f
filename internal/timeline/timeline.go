package timeline

import (
	"fmt"
	"sort"
)

// TrackKind identifies the visual aspect a track drives.
type TrackKind int

const (
	TrackCamera TrackKind = iota
	TrackCursor
	TrackKeystroke
)

func (k TrackKind) String() string {
	switch k {
	case TrackCamera:
		return "camera"
	case TrackCursor:
		return "cursor"
	case TrackKeystroke:
		return "keystroke"
	default:
		return fmt.Sprintf("track(%d)", int(k))
	}
}

// CameraTarget is the zoom/pan state a camera segment moves between. Zoom is
// 1 for the full frame; CenterX/CenterY are normalized to [0,1].
type CameraTarget struct {
	Zoom    float64
	CenterX float64
	CenterY float64
}

func (c CameraTarget) Lerp(other CameraTarget, t float64) CameraTarget {
	return CameraTarget{
		Zoom:    c.Zoom + (other.Zoom-c.Zoom)*t,
		CenterX: c.CenterX + (other.CenterX-c.CenterX)*t,
		CenterY: c.CenterY + (other.CenterY-c.CenterY)*t,
	}
}

// CameraSegment animates the camera from one target to another across
// [Start, End] seconds using its easing.
type CameraSegment struct {
	Start  float64
	End    float64
	From   CameraTarget
	To     CameraTarget
	Easing Easing
}

// KeystrokeSegment displays a keystroke label across [Start, End] seconds,
// ramping opacity linearly over the fade windows at either edge.
type KeystrokeSegment struct {
	Start   float64
	End     float64
	Label   string
	FadeIn  float64
	FadeOut float64
}

// Timeline is the immutable per-evaluation snapshot of every track. Build one
// with New, which sorts and validates; never mutate it afterwards.
type Timeline struct {
	Camera          []CameraSegment
	CursorOverrides []Keyframe[Point]
	Keystrokes      []KeystrokeSegment
}

// New copies, sorts, and validates the given tracks into a Timeline snapshot.
func New(camera []CameraSegment, cursorOverrides []Keyframe[Point], keystrokes []KeystrokeSegment) (*Timeline, error) {
	tl := &Timeline{
		Camera:          append([]CameraSegment(nil), camera...),
		CursorOverrides: append([]Keyframe[Point](nil), cursorOverrides...),
		Keystrokes:      append([]KeystrokeSegment(nil), keystrokes...),
	}

	sort.SliceStable(tl.Camera, func(i, j int) bool { return tl.Camera[i].Start < tl.Camera[j].Start })
	SortKeyframes(tl.CursorOverrides)
	sort.SliceStable(tl.Keystrokes, func(i, j int) bool { return tl.Keystrokes[i].Start < tl.Keystrokes[j].Start })

	if err := tl.validate(); err != nil {
		return nil, err
	}
	return tl, nil
}

func (tl *Timeline) validate() error {
	for i, seg := range tl.Camera {
		if seg.End < seg.Start {
			return fmt.Errorf("camera segment %d: end %.4f before start %.4f", i, seg.End, seg.Start)
		}
		for _, target := range []CameraTarget{seg.From, seg.To} {
			if target.Zoom < 1 {
				return fmt.Errorf("camera segment %d: zoom %.4f below 1", i, target.Zoom)
			}
			if target.CenterX < 0 || target.CenterX > 1 || target.CenterY < 0 || target.CenterY > 1 {
				return fmt.Errorf("camera segment %d: center (%.4f, %.4f) outside [0,1]", i, target.CenterX, target.CenterY)
			}
		}
	}
	for i, kf := range tl.CursorOverrides {
		if kf.Value.X < 0 || kf.Value.X > 1 || kf.Value.Y < 0 || kf.Value.Y > 1 {
			return fmt.Errorf("cursor override %d: position (%.4f, %.4f) outside [0,1]", i, kf.Value.X, kf.Value.Y)
		}
	}
	for i, seg := range tl.Keystrokes {
		if seg.End < seg.Start {
			return fmt.Errorf("keystroke segment %d: end %.4f before start %.4f", i, seg.End, seg.Start)
		}
		if seg.FadeIn < 0 || seg.FadeOut < 0 {
			return fmt.Errorf("keystroke segment %d: negative fade window", i)
		}
	}
	return nil
}

// Duration returns the end of the latest segment or keyframe on any track.
func (tl *Timeline) Duration() float64 {
	var end float64
	for _, seg := range tl.Camera {
		if seg.End > end {
			end = seg.End
		}
	}
	for _, kf := range tl.CursorOverrides {
		if kf.Time > end {
			end = kf.Time
		}
	}
	for _, seg := range tl.Keystrokes {
		if seg.End > end {
			end = seg.End
		}
	}
	return end
}

// CameraSegmentAt returns the camera segment covering the given time, or the
// nearest earlier segment when the time falls in a gap, or nil before the
// first segment.
func (tl *Timeline) CameraSegmentAt(at float64) *CameraSegment {
	segs := tl.Camera
	i := sort.Search(len(segs), func(i int) bool { return segs[i].Start > at })
	if i == 0 {
		return nil
	}
	return &segs[i-1]
}
