package cursor

import "math"

// SpringConfig parameterizes the damped harmonic follower.
type SpringConfig struct {
	// Stiffness is the spring constant; omega = sqrt(Stiffness).
	Stiffness float64
	// Damping is the raw damping coefficient; zeta = Damping/(2*sqrt(Stiffness)).
	Damping float64
	// MaxVelocity is the speed at which the adaptive response reaches its
	// shortest; zero disables adaptation.
	MaxVelocity float64
	// MinResponseScale floors the adaptive shortening (0 < scale <= 1).
	MinResponseScale float64
}

// DefaultSpringConfig follows the cursor closely without visible lag spikes.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Stiffness:        170,
		Damping:          26,
		MaxVelocity:      2.5,
		MinResponseScale: 0.35,
	}
}

// SpringSimulator follows a moving target with an analytically solved 2D
// damped harmonic oscillator. Each Step assumes the target is constant for
// the step and applies the closed-form position/velocity solution, so the
// simulation is stable at any dt with no integration error.
type SpringSimulator struct {
	cfg SpringConfig

	pos    [2]float64
	vel    [2]float64
	primed bool
}

// NewSpringSimulator builds a simulator with the given config; zero-value
// fields fall back to DefaultSpringConfig.
func NewSpringSimulator(cfg SpringConfig) *SpringSimulator {
	def := DefaultSpringConfig()
	if cfg.Stiffness <= 0 {
		cfg.Stiffness = def.Stiffness
	}
	if cfg.Damping <= 0 {
		cfg.Damping = def.Damping
	}
	if cfg.MinResponseScale <= 0 || cfg.MinResponseScale > 1 {
		cfg.MinResponseScale = def.MinResponseScale
	}
	return &SpringSimulator{cfg: cfg}
}

// Reset snaps the simulator to the given position with zero velocity.
func (s *SpringSimulator) Reset(x, y float64) {
	s.pos = [2]float64{x, y}
	s.vel = [2]float64{0, 0}
	s.primed = true
}

// Position returns the current follower position.
func (s *SpringSimulator) Position() (x, y float64) {
	return s.pos[0], s.pos[1]
}

// Velocity returns the current follower speed in normalized units per second.
func (s *SpringSimulator) Velocity() float64 {
	return math.Hypot(s.vel[0], s.vel[1])
}

// Step advances the follower toward the target by dt seconds and returns the
// new position. The first step snaps to the target.
func (s *SpringSimulator) Step(targetX, targetY, dt float64) (x, y float64) {
	if !s.primed {
		s.Reset(targetX, targetY)
		return targetX, targetY
	}
	if dt <= 0 {
		return s.pos[0], s.pos[1]
	}

	omega := math.Sqrt(s.cfg.Stiffness)
	zeta := s.cfg.Damping / (2 * math.Sqrt(s.cfg.Stiffness))

	// Adaptive response: the faster the follower moves relative to
	// MaxVelocity, the shorter the effective response time, floored at
	// MinResponseScale.
	if s.cfg.MaxVelocity > 0 {
		speed := s.Velocity()
		ratio := speed / s.cfg.MaxVelocity
		if ratio > 1 {
			ratio = 1
		}
		scale := 1 - (1-s.cfg.MinResponseScale)*ratio
		omega /= scale
	}

	target := [2]float64{targetX, targetY}
	for axis := 0; axis < 2; axis++ {
		x0 := s.pos[axis] - target[axis]
		v0 := s.vel[axis]
		s.pos[axis], s.vel[axis] = springStep(x0, v0, omega, zeta, dt)
		s.pos[axis] += target[axis]
	}
	return s.pos[0], s.pos[1]
}

// ResampleSpring replays the raw path through the damped spring follower,
// emitting one sample per frame interval. The target for each step is the
// linear interpolation of the raw samples at the output time, so the follower
// sees the same motion the live recorder produced. Per-point velocity is the
// follower's own speed, which is what the idle stabilizer keys on.
func ResampleSpring(samples []MousePosition, frameInterval float64, cfg SpringConfig) []MousePosition {
	if len(samples) < 2 || frameInterval <= 0 {
		return append([]MousePosition(nil), samples...)
	}

	sim := NewSpringSimulator(cfg)
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
		targetX := p1.X + (p2.X-p1.X)*t
		targetY := p1.Y + (p2.Y-p1.Y)*t

		x, y := sim.Step(targetX, targetY, frameInterval)
		out = append(out, MousePosition{Time: at, X: x, Y: y, Velocity: sim.Velocity()})
	}
	return out
}

// springStep solves one axis of x'' + 2*zeta*omega*x' + omega^2*x = 0 with
// initial offset x0 and velocity v0, returning the state after dt.
func springStep(x0, v0, omega, zeta, dt float64) (x, v float64) {
	switch {
	case zeta < 1:
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * omega * dt)
		cos := math.Cos(omegaD * dt)
		sin := math.Sin(omegaD * dt)
		a := x0
		b := (v0 + zeta*omega*x0) / omegaD
		x = envelope * (a*cos + b*sin)
		v = envelope * ((b*omegaD-zeta*omega*a)*cos - (a*omegaD+zeta*omega*b)*sin)
	case zeta == 1:
		envelope := math.Exp(-omega * dt)
		c := v0 + omega*x0
		x = envelope * (x0 + c*dt)
		v = envelope * (v0 - omega*c*dt)
	default:
		root := omega * math.Sqrt(zeta*zeta-1)
		r1 := -omega*zeta + root
		r2 := -omega*zeta - root
		c1 := (v0 - r2*x0) / (r1 - r2)
		c2 := x0 - c1
		x = c1*math.Exp(r1*dt) + c2*math.Exp(r2*dt)
		v = c1*r1*math.Exp(r1*dt) + c2*r2*math.Exp(r2*dt)
	}
	return x, v
}
