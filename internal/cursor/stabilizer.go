package cursor

import "math"

const (
	// DefaultIdleVelocityThreshold is the normalized speed below which the
	// cursor is considered stationary.
	DefaultIdleVelocityThreshold = 0.001
	// DefaultIdleDecayRate controls how fast the stabilizer blends in and out,
	// in 1/seconds.
	DefaultIdleDecayRate = 8.0
)

// IdleStabilizer removes stationary jitter by freezing the rendered position
// toward an anchor while the cursor is effectively still. The blend factor
// grows toward 1 at rate 1-e^(-decayRate*dt) while idle and decays back at
// the same rate once motion resumes, so neither transition snaps.
type IdleStabilizer struct {
	velocityThreshold float64
	decayRate         float64

	blend     float64
	anchor    [2]float64
	hasAnchor bool
}

// NewIdleStabilizer builds a stabilizer. Non-positive parameters fall back to
// the package defaults.
func NewIdleStabilizer(velocityThreshold, decayRate float64) *IdleStabilizer {
	if velocityThreshold <= 0 {
		velocityThreshold = DefaultIdleVelocityThreshold
	}
	if decayRate <= 0 {
		decayRate = DefaultIdleDecayRate
	}
	return &IdleStabilizer{
		velocityThreshold: velocityThreshold,
		decayRate:         decayRate,
	}
}

// Step advances the stabilizer by dt seconds with the given raw sample and
// returns the stabilized position.
func (s *IdleStabilizer) Step(raw MousePosition, dt float64) (x, y float64) {
	if dt < 0 {
		dt = 0
	}
	rate := 1 - math.Exp(-s.decayRate*dt)

	idle := raw.Velocity < s.velocityThreshold
	if idle {
		if !s.hasAnchor {
			s.anchor = [2]float64{raw.X, raw.Y}
			s.hasAnchor = true
		}
		s.blend += (1 - s.blend) * rate
	} else {
		s.blend += (0 - s.blend) * rate
		if s.blend < 1e-3 {
			s.blend = 0
			s.hasAnchor = false
		}
	}

	if !s.hasAnchor {
		return raw.X, raw.Y
	}
	x = raw.X + (s.anchor[0]-raw.X)*s.blend
	y = raw.Y + (s.anchor[1]-raw.Y)*s.blend
	return x, y
}

// Stabilize runs an idle stabilizer over a time-sorted stream and returns the
// stabilized copy. Timestamps and velocities are untouched; only positions
// move toward the idle anchor.
func Stabilize(samples []MousePosition, velocityThreshold, decayRate float64) []MousePosition {
	if len(samples) == 0 {
		return nil
	}
	stab := NewIdleStabilizer(velocityThreshold, decayRate)
	out := make([]MousePosition, len(samples))
	prev := samples[0].Time
	for i, s := range samples {
		x, y := stab.Step(s, s.Time-prev)
		prev = s.Time
		out[i] = s
		out[i].X = x
		out[i].Y = y
	}
	return out
}

// Blend exposes the current blend factor, mainly for tests and diagnostics.
func (s *IdleStabilizer) Blend() float64 {
	return s.blend
}

// Reset clears the anchor and blend, used after seeks.
func (s *IdleStabilizer) Reset() {
	s.blend = 0
	s.hasAnchor = false
}
