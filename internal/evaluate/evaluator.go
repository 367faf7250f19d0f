package evaluate

import (
	"sort"

	"kinescope/internal/cursor"
	"kinescope/internal/keystroke"
	"kinescope/internal/timeline"
)

// RenderMode selects the pan-clamping behavior of the camera crop.
type RenderMode int

const (
	// ModeScreen records the whole display: the crop must never exceed the
	// source bounds, so the pan center is clamped once zoomed in.
	ModeScreen RenderMode = iota
	// ModeWindow records a single window floating on a backdrop: the crop may
	// wander past the window edges, so the center is never clamped.
	ModeWindow
)

const (
	defaultPressScale    = 0.8
	defaultPressDuration = 0.08
)

// Options carries the render settings an Evaluator is built with.
type Options struct {
	Mode RenderMode
	// Tension for the cursor path spline; zero means cursor.DefaultTension.
	Tension float64
	// CursorScale is the authored base cursor size multiplier.
	CursorScale float64
	// PressScale is the cursor shrink target while a click is held.
	PressScale float64
	// PressDuration is the press and settle window length in seconds.
	PressDuration float64
	// Style colors the keystroke badges.
	Style keystroke.Style
}

// DefaultOptions returns the stock render settings.
func DefaultOptions() Options {
	return Options{
		Mode:          ModeScreen,
		Tension:       cursor.DefaultTension,
		CursorScale:   1,
		PressScale:    defaultPressScale,
		PressDuration: defaultPressDuration,
		Style:         keystroke.DefaultStyle(),
	}
}

// Evaluator computes frame states. It is immutable after construction; build
// a new one and swap it when tracks or render settings change.
type Evaluator struct {
	tl      *timeline.Timeline
	mouse   []cursor.MousePosition
	clicks  []cursor.ClickEvent
	samples []TransformSample
	opts    Options
}

// New constructs an Evaluator over an already-smoothed mouse projection.
// The dense transform samples are optional; pass nil to evaluate camera
// segments directly.
func New(tl *timeline.Timeline, mouse []cursor.MousePosition, clicks []cursor.ClickEvent, samples []TransformSample, opts Options) *Evaluator {
	if opts.Tension == 0 {
		opts.Tension = cursor.DefaultTension
	}
	if opts.CursorScale <= 0 {
		opts.CursorScale = 1
	}
	if opts.PressScale <= 0 {
		opts.PressScale = defaultPressScale
	}
	if opts.PressDuration <= 0 {
		opts.PressDuration = defaultPressDuration
	}
	return &Evaluator{
		tl:      tl,
		mouse:   mouse,
		clicks:  clicks,
		samples: samples,
		opts:    opts,
	}
}

// Evaluate returns the complete visual state at the given time. It is pure:
// the same evaluator and time always produce the same state.
func (e *Evaluator) Evaluate(at float64) FrameState {
	return FrameState{
		Time:       at,
		Transform:  e.evaluateTransform(at),
		Cursor:     e.evaluateCursor(at),
		Keystrokes: e.evaluateKeystrokes(at),
	}
}

func (e *Evaluator) evaluateTransform(at float64) TransformState {
	if len(e.samples) >= 2 {
		return e.transformFromSamples(at)
	}
	return e.transformFromSegments(at)
}

// transformFromSamples interpolates the pre-computed dense array: binary
// search plus linear blend, with velocity from the finite difference of the
// bracketing neighbors.
func (e *Evaluator) transformFromSamples(at float64) TransformState {
	samples := e.samples
	if at <= samples[0].Time {
		return e.clampTransform(TransformState{Zoom: samples[0].Zoom, CenterX: samples[0].CenterX, CenterY: samples[0].CenterY})
	}
	last := samples[len(samples)-1]
	if at >= last.Time {
		return e.clampTransform(TransformState{Zoom: last.Zoom, CenterX: last.CenterX, CenterY: last.CenterY})
	}

	i := sort.Search(len(samples), func(i int) bool { return samples[i].Time > at })
	before := samples[i-1]
	after := samples[i]
	dt := after.Time - before.Time

	var t float64
	if dt > 0 {
		t = (at - before.Time) / dt
	}

	state := TransformState{
		Zoom:    before.Zoom + (after.Zoom-before.Zoom)*t,
		CenterX: before.CenterX + (after.CenterX-before.CenterX)*t,
		CenterY: before.CenterY + (after.CenterY-before.CenterY)*t,
	}
	if dt > 0 {
		state.ZoomVelocity = (after.Zoom - before.Zoom) / dt
		state.PanVelocityX = (after.CenterX - before.CenterX) / dt
		state.PanVelocityY = (after.CenterY - before.CenterY) / dt
	}
	return e.clampTransform(state)
}

// transformFromSegments evaluates the discrete camera track with the active
// segment's easing, deriving velocities analytically from the easing
// derivative.
func (e *Evaluator) transformFromSegments(at float64) TransformState {
	if e.tl == nil {
		return IdentityTransform()
	}
	seg := e.tl.CameraSegmentAt(at)
	if seg == nil {
		return IdentityTransform()
	}

	duration := seg.End - seg.Start
	if at >= seg.End || duration <= 0 {
		return e.clampTransform(TransformState{Zoom: seg.To.Zoom, CenterX: seg.To.CenterX, CenterY: seg.To.CenterY})
	}

	progress := (at - seg.Start) / duration
	eased := seg.Easing.Value(progress, duration)
	value := seg.From.Lerp(seg.To, eased)

	rate := seg.Easing.Derivative(progress, duration) / duration
	state := TransformState{
		Zoom:         value.Zoom,
		CenterX:      value.CenterX,
		CenterY:      value.CenterY,
		ZoomVelocity: (seg.To.Zoom - seg.From.Zoom) * rate,
		PanVelocityX: (seg.To.CenterX - seg.From.CenterX) * rate,
		PanVelocityY: (seg.To.CenterY - seg.From.CenterY) * rate,
	}
	return e.clampTransform(state)
}

// clampTransform keeps the crop inside the source bounds in screen mode. With
// zoom z the visible half-extent is 0.5/z, so each center axis is limited to
// [0.5/z, 1-0.5/z]. Window mode never clamps.
func (e *Evaluator) clampTransform(state TransformState) TransformState {
	if e.opts.Mode != ModeScreen {
		return state
	}
	if state.Zoom < 1 {
		state.Zoom = 1
	}
	half := 0.5 / state.Zoom
	state.CenterX = clampRange(state.CenterX, half, 1-half)
	state.CenterY = clampRange(state.CenterY, half, 1-half)
	return state
}

func (e *Evaluator) evaluateCursor(at float64) CursorState {
	state := CursorState{
		Scale:      e.opts.CursorScale,
		PressScale: 1,
	}

	if e.tl != nil && len(e.tl.CursorOverrides) > 0 {
		if p, ok := timeline.Interpolate(e.tl.CursorOverrides, at); ok {
			state.X, state.Y = p.X, p.Y
		}
	} else {
		state.X, state.Y, state.Velocity = cursor.InterpolatePath(e.mouse, at, e.opts.Tension)
	}

	for _, click := range e.clicks {
		if click.Active(at) {
			state.IsClicking = true
			state.Button = click.Button
			break
		}
	}
	state.PressScale = e.pressScale(at)
	return state
}

// pressScale animates the cursor shrink around clicks: eased press to the
// press target over the press window, hold through the click, eased settle
// back to 1. Overlapping candidates resolve to the most-pressed value unless
// every candidate is at or above 1, in which case the largest wins.
func (e *Evaluator) pressScale(at float64) float64 {
	window := e.opts.PressDuration
	target := e.opts.PressScale
	easeOut := timeline.Easing{Kind: timeline.EaseOutQuad}

	var candidates []float64
	for _, click := range e.clicks {
		// The press ramp leads the down time so the cursor has already
		// reached the press target when the click lands.
		pressStart := click.Time - window
		releaseAt := click.Time + click.Duration
		switch {
		case at < pressStart || at > releaseAt+window:
			continue
		case at < click.Time:
			t := easeOut.Value((at-pressStart)/window, window)
			candidates = append(candidates, 1+(target-1)*t)
		case at <= releaseAt:
			candidates = append(candidates, target)
		default:
			t := easeOut.Value((at-releaseAt)/window, window)
			candidates = append(candidates, target+(1-target)*t)
		}
	}
	if len(candidates) == 0 {
		return 1
	}

	min, max := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	if min < 1 {
		return min
	}
	return max
}

func (e *Evaluator) evaluateKeystrokes(at float64) []KeystrokeState {
	if e.tl == nil {
		return nil
	}
	var out []KeystrokeState
	for _, seg := range e.tl.Keystrokes {
		if at < seg.Start || at > seg.End {
			continue
		}
		opacity := 1.0
		if seg.FadeIn > 0 && at-seg.Start < seg.FadeIn {
			opacity = (at - seg.Start) / seg.FadeIn
		}
		if seg.FadeOut > 0 && seg.End-at < seg.FadeOut {
			if fade := (seg.End - at) / seg.FadeOut; fade < opacity {
				opacity = fade
			}
		}
		background, text := e.opts.Style.Blend(opacity)
		out = append(out, KeystrokeState{
			Label:      seg.Label,
			Opacity:    opacity,
			Background: background,
			Text:       text,
		})
	}
	return out
}

func clampRange(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
