package cursor

import "math"

// DefaultTension is the cardinal-spline tension used for cursor paths. Lower
// values track the raw samples more tightly; 0.2 keeps path fidelity without
// the corner-cutting a looser spline introduces.
const DefaultTension = 0.2

// CatmullRomPoint evaluates a cardinal (tensioned Catmull-Rom) spline segment
// between p1 and p2 at parameter t in [0,1].
func CatmullRomPoint(p0, p1, p2, p3 [2]float64, t, tension float64) [2]float64 {
	s := (1 - tension) / 2
	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	var out [2]float64
	for axis := 0; axis < 2; axis++ {
		m1 := s * (p2[axis] - p0[axis])
		m2 := s * (p3[axis] - p1[axis])
		out[axis] = h00*p1[axis] + h10*m1 + h01*p2[axis] + h11*m2
	}
	return out
}

// CatmullRomDerivative evaluates the spline segment's derivative with respect
// to the parameter t.
func CatmullRomDerivative(p0, p1, p2, p3 [2]float64, t, tension float64) [2]float64 {
	s := (1 - tension) / 2
	t2 := t * t

	h00 := 6*t2 - 6*t
	h10 := 3*t2 - 4*t + 1
	h01 := -6*t2 + 6*t
	h11 := 3*t2 - 2*t

	var out [2]float64
	for axis := 0; axis < 2; axis++ {
		m1 := s * (p2[axis] - p0[axis])
		m2 := s * (p3[axis] - p1[axis])
		out[axis] = h00*p1[axis] + h10*m1 + h01*p2[axis] + h11*m2
	}
	return out
}

// ResampleCatmullRom fills one output sample per frame interval along the
// spline through the input samples. Boundary segments use reflected virtual
// neighbors (2*edge - adjacentEdge) so the path does not flatten at the ends.
// Per-point velocity is the spline derivative magnitude over the local sample
// spacing, in normalized units per second.
//
// Fewer than four samples fall back to linear interpolation between the
// available pairs.
func ResampleCatmullRom(samples []MousePosition, frameInterval, tension float64) []MousePosition {
	if len(samples) < 2 || frameInterval <= 0 {
		return append([]MousePosition(nil), samples...)
	}
	if len(samples) < 4 {
		return resampleLinear(samples, frameInterval)
	}

	first := samples[0].Time
	last := samples[len(samples)-1].Time
	out := make([]MousePosition, 0, int((last-first)/frameInterval)+2)

	seg := 0
	for at := first; at <= last+1e-9; at += frameInterval {
		for seg < len(samples)-2 && samples[seg+1].Time <= at {
			seg++
		}
		p1 := samples[seg]
		p2 := samples[seg+1]
		dt := p2.Time - p1.Time
		var t float64
		if dt > 0 {
			t = clamp01((at - p1.Time) / dt)
		}

		p0 := virtualNeighbor(samples, seg-1, seg, seg+1)
		p3 := virtualNeighbor(samples, seg+2, seg+1, seg)

		pos := CatmullRomPoint(p0, point(p1), point(p2), p3, t, tension)
		deriv := CatmullRomDerivative(p0, point(p1), point(p2), p3, t, tension)

		velocity := 0.0
		if dt > 0 {
			velocity = math.Hypot(deriv[0], deriv[1]) / dt
		}

		out = append(out, MousePosition{Time: at, X: pos[0], Y: pos[1], Velocity: velocity})
	}
	return out
}

func resampleLinear(samples []MousePosition, frameInterval float64) []MousePosition {
	first := samples[0].Time
	last := samples[len(samples)-1].Time
	out := make([]MousePosition, 0, int((last-first)/frameInterval)+2)
	seg := 0
	for at := first; at <= last+1e-9; at += frameInterval {
		for seg < len(samples)-2 && samples[seg+1].Time <= at {
			seg++
		}
		p1 := samples[seg]
		p2 := samples[seg+1]
		dt := p2.Time - p1.Time
		var t float64
		if dt > 0 {
			t = clamp01((at - p1.Time) / dt)
		}
		velocity := 0.0
		if dt > 0 {
			velocity = math.Hypot(p2.X-p1.X, p2.Y-p1.Y) / dt
		}
		out = append(out, MousePosition{
			Time:     at,
			X:        p1.X + (p2.X-p1.X)*t,
			Y:        p1.Y + (p2.Y-p1.Y)*t,
			Velocity: velocity,
		})
	}
	return out
}

// InterpolatePath evaluates the spline through the samples at one arbitrary
// time, locating the bracketing pair by binary search. Times outside the
// sample range pin to the nearest endpoint. Fewer than four samples fall back
// to linear interpolation.
func InterpolatePath(samples []MousePosition, at, tension float64) (x, y, velocity float64) {
	switch len(samples) {
	case 0:
		return 0, 0, 0
	case 1:
		return samples[0].X, samples[0].Y, 0
	}
	if at <= samples[0].Time {
		return samples[0].X, samples[0].Y, 0
	}
	last := samples[len(samples)-1]
	if at >= last.Time {
		return last.X, last.Y, 0
	}

	seg := IndexBefore(samples, at)
	if seg < 0 {
		seg = 0
	}
	if seg > len(samples)-2 {
		seg = len(samples) - 2
	}
	p1 := samples[seg]
	p2 := samples[seg+1]
	dt := p2.Time - p1.Time
	var t float64
	if dt > 0 {
		t = clamp01((at - p1.Time) / dt)
	}

	if len(samples) < 4 {
		if dt > 0 {
			velocity = math.Hypot(p2.X-p1.X, p2.Y-p1.Y) / dt
		}
		return p1.X + (p2.X-p1.X)*t, p1.Y + (p2.Y-p1.Y)*t, velocity
	}

	p0 := virtualNeighbor(samples, seg-1, seg, seg+1)
	p3 := virtualNeighbor(samples, seg+2, seg+1, seg)
	pos := CatmullRomPoint(p0, point(p1), point(p2), p3, t, tension)
	deriv := CatmullRomDerivative(p0, point(p1), point(p2), p3, t, tension)
	if dt > 0 {
		velocity = math.Hypot(deriv[0], deriv[1]) / dt
	}
	return pos[0], pos[1], velocity
}

// virtualNeighbor returns the control point at idx, or a reflection of the
// edge sample when idx falls outside the slice.
func virtualNeighbor(samples []MousePosition, idx, edge, adjacent int) [2]float64 {
	if idx >= 0 && idx < len(samples) {
		return point(samples[idx])
	}
	e := samples[edge]
	a := samples[adjacent]
	return [2]float64{2*e.X - a.X, 2*e.Y - a.Y}
}

func point(s MousePosition) [2]float64 {
	return [2]float64{s.X, s.Y}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
