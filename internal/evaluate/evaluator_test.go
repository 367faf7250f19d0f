package evaluate_test

import (
	"math"
	"reflect"
	"testing"

	"kinescope/internal/cursor"
	"kinescope/internal/evaluate"
	"kinescope/internal/timeline"
)

func mustTimeline(t *testing.T, camera []timeline.CameraSegment, overrides []timeline.Keyframe[timeline.Point], keys []timeline.KeystrokeSegment) *timeline.Timeline {
	t.Helper()
	tl, err := timeline.New(camera, overrides, keys)
	if err != nil {
		t.Fatalf("timeline.New: %v", err)
	}
	return tl
}

func TestLinearZoomScenario(t *testing.T) {
	// Camera zoom 1.0 -> 2.0 over 1s with linear easing: at 0.5s the zoom is
	// 1.5 and the zoom velocity is 1.0/s.
	tl := mustTimeline(t, []timeline.CameraSegment{{
		Start:  0,
		End:    1,
		From:   timeline.CameraTarget{Zoom: 1, CenterX: 0.5, CenterY: 0.5},
		To:     timeline.CameraTarget{Zoom: 2, CenterX: 0.5, CenterY: 0.5},
		Easing: timeline.Linear,
	}}, nil, nil)

	ev := evaluate.New(tl, nil, nil, nil, evaluate.DefaultOptions())
	state := ev.Evaluate(0.5)

	if math.Abs(state.Transform.Zoom-1.5) > 1e-9 {
		t.Fatalf("zoom = %v; want 1.5", state.Transform.Zoom)
	}
	if math.Abs(state.Transform.ZoomVelocity-1.0) > 1e-9 {
		t.Fatalf("zoom velocity = %v; want 1.0/s", state.Transform.ZoomVelocity)
	}
}

func TestScreenModeClampsPan(t *testing.T) {
	tl := mustTimeline(t, []timeline.CameraSegment{{
		Start:  0,
		End:    1,
		From:   timeline.CameraTarget{Zoom: 2, CenterX: 0.05, CenterY: 0.95},
		To:     timeline.CameraTarget{Zoom: 2, CenterX: 0.05, CenterY: 0.95},
		Easing: timeline.Linear,
	}}, nil, nil)

	screen := evaluate.New(tl, nil, nil, nil, evaluate.DefaultOptions())
	state := screen.Evaluate(0.5)
	if state.Transform.CenterX != 0.25 || state.Transform.CenterY != 0.75 {
		t.Fatalf("screen mode center = (%v, %v); want clamped (0.25, 0.75)", state.Transform.CenterX, state.Transform.CenterY)
	}

	opts := evaluate.DefaultOptions()
	opts.Mode = evaluate.ModeWindow
	window := evaluate.New(tl, nil, nil, nil, opts)
	state = window.Evaluate(0.5)
	if state.Transform.CenterX != 0.05 || state.Transform.CenterY != 0.95 {
		t.Fatalf("window mode center = (%v, %v); want unclamped (0.05, 0.95)", state.Transform.CenterX, state.Transform.CenterY)
	}
}

func TestTransformPrefersDenseSamples(t *testing.T) {
	// Segments say zoom 5; the baked samples say zoom 1->2. Samples win.
	tl := mustTimeline(t, []timeline.CameraSegment{{
		Start:  0,
		End:    1,
		From:   timeline.CameraTarget{Zoom: 5, CenterX: 0.5, CenterY: 0.5},
		To:     timeline.CameraTarget{Zoom: 5, CenterX: 0.5, CenterY: 0.5},
		Easing: timeline.Linear,
	}}, nil, nil)
	samples := []evaluate.TransformSample{
		{Time: 0, Zoom: 1, CenterX: 0.5, CenterY: 0.5},
		{Time: 1, Zoom: 2, CenterX: 0.5, CenterY: 0.5},
	}

	ev := evaluate.New(tl, nil, nil, samples, evaluate.DefaultOptions())
	state := ev.Evaluate(0.25)
	if math.Abs(state.Transform.Zoom-1.25) > 1e-9 {
		t.Fatalf("zoom = %v; want 1.25 from samples", state.Transform.Zoom)
	}
	if math.Abs(state.Transform.ZoomVelocity-1.0) > 1e-9 {
		t.Fatalf("zoom velocity = %v; want 1.0/s finite difference", state.Transform.ZoomVelocity)
	}
}

func TestClickScenario(t *testing.T) {
	// Click at 1.0s for 0.1s evaluated at 1.05s: clicking, press scale 0.8.
	clicks := []cursor.ClickEvent{{Time: 1.0, Duration: 0.1, Button: 1}}
	ev := evaluate.New(nil, nil, clicks, nil, evaluate.DefaultOptions())

	state := ev.Evaluate(1.05)
	if !state.Cursor.IsClicking {
		t.Fatal("expected IsClicking at 1.05")
	}
	if math.Abs(state.Cursor.PressScale-0.8) > 1e-9 {
		t.Fatalf("press scale = %v; want 0.8", state.Cursor.PressScale)
	}

	// Outside the click and settle window the scale returns to 1.
	state = ev.Evaluate(2.0)
	if state.Cursor.IsClicking || state.Cursor.PressScale != 1 {
		t.Fatalf("expected idle cursor at 2.0, got %+v", state.Cursor)
	}

	// Halfway through the settle window the scale is rising back toward 1.
	state = ev.Evaluate(1.14)
	if state.Cursor.PressScale <= 0.8 || state.Cursor.PressScale >= 1 {
		t.Fatalf("settle scale = %v; want inside (0.8, 1)", state.Cursor.PressScale)
	}
}

func TestOverlappingPressCandidatesMostPressedWins(t *testing.T) {
	clicks := []cursor.ClickEvent{
		{Time: 1.0, Duration: 0.5, Button: 1}, // holding at 0.8
		{Time: 1.3, Duration: 0.1, Button: 1}, // also holding at 0.8
	}
	ev := evaluate.New(nil, nil, clicks, nil, evaluate.DefaultOptions())
	state := ev.Evaluate(1.35)
	if math.Abs(state.Cursor.PressScale-0.8) > 1e-9 {
		t.Fatalf("press scale = %v; want 0.8 (minimum of candidates)", state.Cursor.PressScale)
	}
}

func TestCursorFromSmoothedPath(t *testing.T) {
	mouse := []cursor.MousePosition{
		{Time: 0.0, X: 0.0, Y: 0.0},
		{Time: 0.1, X: 0.1, Y: 0.1},
		{Time: 0.2, X: 0.2, Y: 0.2},
		{Time: 0.3, X: 0.3, Y: 0.3},
	}
	ev := evaluate.New(nil, mouse, nil, nil, evaluate.DefaultOptions())
	state := ev.Evaluate(0.15)
	if math.Abs(state.Cursor.X-0.15) > 0.01 || math.Abs(state.Cursor.Y-0.15) > 0.01 {
		t.Fatalf("cursor = (%v, %v); want near (0.15, 0.15)", state.Cursor.X, state.Cursor.Y)
	}
	if state.Cursor.Velocity <= 0 {
		t.Fatalf("expected positive path velocity, got %v", state.Cursor.Velocity)
	}
}

func TestCursorOverrideWins(t *testing.T) {
	tl := mustTimeline(t, nil, []timeline.Keyframe[timeline.Point]{
		{Time: 0, Value: timeline.Point{X: 0.9, Y: 0.9}, Easing: timeline.Linear},
		{Time: 1, Value: timeline.Point{X: 0.9, Y: 0.9}, Easing: timeline.Linear},
	}, nil)
	mouse := []cursor.MousePosition{
		{Time: 0, X: 0.1, Y: 0.1},
		{Time: 1, X: 0.1, Y: 0.1},
	}
	ev := evaluate.New(tl, mouse, nil, nil, evaluate.DefaultOptions())
	state := ev.Evaluate(0.5)
	if state.Cursor.X != 0.9 || state.Cursor.Y != 0.9 {
		t.Fatalf("override ignored: cursor = (%v, %v)", state.Cursor.X, state.Cursor.Y)
	}
}

func TestKeystrokeOpacityRamps(t *testing.T) {
	tl := mustTimeline(t, nil, nil, []timeline.KeystrokeSegment{
		{Start: 1, End: 2, Label: "⌘ C", FadeIn: 0.2, FadeOut: 0.4},
	})
	ev := evaluate.New(tl, nil, nil, nil, evaluate.DefaultOptions())

	cases := []struct {
		at   float64
		want float64
	}{
		{0.5, -1}, // not visible
		{1.1, 0.5},
		{1.5, 1.0},
		{1.9, 0.25},
		{2.5, -1}, // gone
	}
	for _, tc := range cases {
		state := ev.Evaluate(tc.at)
		if tc.want < 0 {
			if len(state.Keystrokes) != 0 {
				t.Fatalf("at %v: expected no keystrokes, got %+v", tc.at, state.Keystrokes)
			}
			continue
		}
		if len(state.Keystrokes) != 1 {
			t.Fatalf("at %v: expected one keystroke, got %+v", tc.at, state.Keystrokes)
		}
		if got := state.Keystrokes[0].Opacity; math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("at %v: opacity = %v; want %v", tc.at, got, tc.want)
		}
		if state.Keystrokes[0].Label != "⌘ C" {
			t.Fatalf("at %v: label = %q", tc.at, state.Keystrokes[0].Label)
		}
	}
}

func TestEvaluateIsPure(t *testing.T) {
	tl := mustTimeline(t, []timeline.CameraSegment{{
		Start:  0,
		End:    2,
		From:   timeline.CameraTarget{Zoom: 1, CenterX: 0.5, CenterY: 0.5},
		To:     timeline.CameraTarget{Zoom: 2, CenterX: 0.3, CenterY: 0.7},
		Easing: timeline.Easing{Kind: timeline.EaseInOutQuad},
	}}, nil, []timeline.KeystrokeSegment{{Start: 0.5, End: 1.5, Label: "A", FadeIn: 0.1, FadeOut: 0.1}})
	mouse := []cursor.MousePosition{
		{Time: 0, X: 0.1, Y: 0.1}, {Time: 0.5, X: 0.3, Y: 0.2},
		{Time: 1.0, X: 0.5, Y: 0.4}, {Time: 1.5, X: 0.7, Y: 0.6},
	}
	clicks := []cursor.ClickEvent{{Time: 0.9, Duration: 0.2, Button: 1}}

	ev := evaluate.New(tl, mouse, clicks, nil, evaluate.DefaultOptions())
	for _, at := range []float64{0, 0.7, 1.0, 1.9} {
		first := ev.Evaluate(at)
		second := ev.Evaluate(at)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("evaluation at %v not deterministic:\n%+v\n%+v", at, first, second)
		}
	}
}
