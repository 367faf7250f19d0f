package cursor

import (
	"math"
	"sort"
)

// MousePosition is one normalized cursor sample. Slices of samples are always
// time-sorted and treated as immutable once built.
type MousePosition struct {
	Time     float64
	X        float64
	Y        float64
	Velocity float64
}

// ClickEvent is a normalized projection of one recorded click. A click is
// active for times in [Time, Time+Duration].
type ClickEvent struct {
	Time     float64
	Duration float64
	Button   int
}

// Active reports whether the click is held at the given time.
func (c ClickEvent) Active(at float64) bool {
	return at >= c.Time && at <= c.Time+c.Duration
}

// SortSamples orders samples by time in place.
func SortSamples(samples []MousePosition) {
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Time < samples[j].Time })
}

// IndexBefore returns the largest index whose sample time is at or before the
// target, or -1.
func IndexBefore(samples []MousePosition, at float64) int {
	i := sort.Search(len(samples), func(i int) bool { return samples[i].Time > at })
	return i - 1
}

// GaussianSmooth low-passes sample positions with a discrete Gaussian kernel
// of the given radius (sigma = radius/2). Timestamps are untouched, so the
// filter removes sub-pixel jitter without shifting the path in time. The input
// slice is not modified.
func GaussianSmooth(samples []MousePosition, radius int) []MousePosition {
	if radius <= 0 || len(samples) < 3 {
		return append([]MousePosition(nil), samples...)
	}

	sigma := float64(radius) / 2
	weights := make([]float64, 2*radius+1)
	for i := -radius; i <= radius; i++ {
		weights[i+radius] = math.Exp(-float64(i*i) / (2 * sigma * sigma))
	}

	out := make([]MousePosition, len(samples))
	for i := range samples {
		var sumX, sumY, sumW float64
		for j := -radius; j <= radius; j++ {
			k := i + j
			if k < 0 || k >= len(samples) {
				continue
			}
			w := weights[j+radius]
			sumX += samples[k].X * w
			sumY += samples[k].Y * w
			sumW += w
		}
		out[i] = samples[i]
		out[i].X = sumX / sumW
		out[i].Y = sumY / sumW
	}
	return out
}

// Dedupe drops samples spaced closer than half a frame interval, keeping the
// later of each colliding pair so the freshest position survives.
func Dedupe(samples []MousePosition, frameInterval float64) []MousePosition {
	if len(samples) < 2 || frameInterval <= 0 {
		return append([]MousePosition(nil), samples...)
	}
	minGap := frameInterval / 2
	out := make([]MousePosition, 0, len(samples))
	for _, s := range samples {
		if len(out) > 0 && s.Time-out[len(out)-1].Time < minGap {
			out[len(out)-1] = s
			continue
		}
		out = append(out, s)
	}
	return out
}
