package timeline

import "sort"

// boundaryEpsilon absorbs float jitter from repeated seeks near the first and
// last keyframe so the exact boundary value is returned instead of a hairline
// interpolation.
const boundaryEpsilon = 1e-4

// minSegmentDuration is the floor below which a keyframe pair is treated as
// degenerate and the earlier keyframe's value wins outright.
const minSegmentDuration = 1e-3

// DefaultKeyframeTolerance is one display frame at 60 fps, the nearest-match
// window used when callers do not supply their own.
const DefaultKeyframeTolerance = 1.0 / 60.0

// Interpolable is any value that can be linearly blended toward another value
// of the same type. t is in [0,1] after easing has been applied.
type Interpolable[V any] interface {
	Lerp(other V, t float64) V
}

// Keyframe pins a value at a point in time. The easing on a keyframe governs
// the transition from this keyframe to the next one.
type Keyframe[V Interpolable[V]] struct {
	Time   float64
	Value  V
	Easing Easing
}

// Scalar is a float64 that satisfies Interpolable.
type Scalar float64

func (s Scalar) Lerp(other Scalar, t float64) Scalar {
	return s + (other-s)*Scalar(t)
}

// Point is a normalized 2D position that satisfies Interpolable.
type Point struct {
	X, Y float64
}

func (p Point) Lerp(other Point, t float64) Point {
	return Point{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
	}
}

// Interpolate evaluates a sorted keyframe slice at the given time. The second
// return is false only when the slice is empty, in which case callers supply
// their own default.
//
// Times at or beyond the boundary keyframes (within boundaryEpsilon) return
// the exact boundary value. Interior times binary-search for the bracketing
// pair and blend using the earlier keyframe's easing.
func Interpolate[V Interpolable[V]](frames []Keyframe[V], at float64) (V, bool) {
	switch len(frames) {
	case 0:
		var zero V
		return zero, false
	case 1:
		return frames[0].Value, true
	}

	if at <= frames[0].Time+boundaryEpsilon {
		return frames[0].Value, true
	}
	last := frames[len(frames)-1]
	if at >= last.Time-boundaryEpsilon {
		return last.Value, true
	}

	idx := IndexBefore(frames, at)
	if idx < 0 {
		return frames[0].Value, true
	}
	if idx >= len(frames)-1 {
		return last.Value, true
	}

	before := frames[idx]
	after := frames[idx+1]
	duration := after.Time - before.Time
	if duration < minSegmentDuration {
		return before.Value, true
	}

	progress := (at - before.Time) / duration
	eased := before.Easing.Value(progress, duration)
	return before.Value.Lerp(after.Value, eased), true
}

// DerivativeScale returns the easing-derivative factor for the keyframe pair
// active at the given time, already divided by the pair's duration. A velocity
// is obtained as (after.Value − before.Value) · scale, which the second and
// third returns identify. ok is false when the time falls outside any pair.
func DerivativeScale[V Interpolable[V]](frames []Keyframe[V], at float64) (scale float64, before, after Keyframe[V], ok bool) {
	if len(frames) < 2 {
		return 0, before, after, false
	}
	if at <= frames[0].Time+boundaryEpsilon || at >= frames[len(frames)-1].Time-boundaryEpsilon {
		return 0, before, after, false
	}
	idx := IndexBefore(frames, at)
	if idx < 0 || idx >= len(frames)-1 {
		return 0, before, after, false
	}
	before = frames[idx]
	after = frames[idx+1]
	duration := after.Time - before.Time
	if duration < minSegmentDuration {
		return 0, before, after, false
	}
	progress := (at - before.Time) / duration
	return before.Easing.Derivative(progress, duration) / duration, before, after, true
}

// IndexBefore returns the largest index whose keyframe time is at or before
// the target, or -1 when every keyframe is later.
func IndexBefore[V Interpolable[V]](frames []Keyframe[V], at float64) int {
	i := sort.Search(len(frames), func(i int) bool { return frames[i].Time > at })
	return i - 1
}

// IndexAfter returns the smallest index whose keyframe time is strictly after
// the target, or -1 when no keyframe is later.
func IndexAfter[V Interpolable[V]](frames []Keyframe[V], at float64) int {
	i := sort.Search(len(frames), func(i int) bool { return frames[i].Time > at })
	if i == len(frames) {
		return -1
	}
	return i
}

// FindKeyframeAt returns the index of the keyframe nearest to the target time
// within tolerance, or -1. A non-positive tolerance means
// DefaultKeyframeTolerance.
func FindKeyframeAt[V Interpolable[V]](frames []Keyframe[V], at, tolerance float64) int {
	if tolerance <= 0 {
		tolerance = DefaultKeyframeTolerance
	}
	if len(frames) == 0 {
		return -1
	}
	best := -1
	bestDist := tolerance
	idx := IndexBefore(frames, at)
	for _, i := range []int{idx, idx + 1} {
		if i < 0 || i >= len(frames) {
			continue
		}
		dist := at - frames[i].Time
		if dist < 0 {
			dist = -dist
		}
		if dist <= bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

// SortKeyframes orders frames by time in place, preserving the relative order
// of duplicates.
func SortKeyframes[V Interpolable[V]](frames []Keyframe[V]) {
	sort.SliceStable(frames, func(i, j int) bool { return frames[i].Time < frames[j].Time })
}
