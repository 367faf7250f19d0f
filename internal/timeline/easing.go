package timeline

import (
	"fmt"
	"math"

	"github.com/fogleman/ease"
)

// EasingKind identifies one of the supported easing curves. The set is closed:
// evaluation switches exhaustively over it, and unknown values are treated as
// linear rather than panicking mid-render.
type EasingKind int

const (
	EaseLinear EasingKind = iota
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInOutCubic
	EaseOutExpo
	EaseSpring
)

// String returns the config-file spelling of the easing kind.
func (k EasingKind) String() string {
	switch k {
	case EaseLinear:
		return "linear"
	case EaseInQuad:
		return "ease-in-quad"
	case EaseOutQuad:
		return "ease-out-quad"
	case EaseInOutQuad:
		return "ease-in-out-quad"
	case EaseInOutCubic:
		return "ease-in-out-cubic"
	case EaseOutExpo:
		return "ease-out-expo"
	case EaseSpring:
		return "spring"
	default:
		return fmt.Sprintf("easing(%d)", int(k))
	}
}

// ParseEasingKind maps a config-file spelling back to its EasingKind.
func ParseEasingKind(name string) (EasingKind, error) {
	for k := EaseLinear; k <= EaseSpring; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return EaseLinear, fmt.Errorf("unknown easing %q", name)
}

// Easing describes how a segment progresses from its start value to its end
// value. Stiffness and Damping only matter for EaseSpring; zero values fall
// back to the defaults below.
type Easing struct {
	Kind      EasingKind
	Stiffness float64
	Damping   float64
}

const (
	defaultSpringStiffness = 170.0
	defaultSpringDamping   = 26.0
)

// Linear is the zero-value easing, spelled out for readability at call sites.
var Linear = Easing{Kind: EaseLinear}

// Value maps progress in [0,1] to the eased progress. Duration is the real
// elapsed length of the segment in seconds; curve-based easings ignore it, but
// the spring solution is a function of physical time and needs it to stay
// frame-rate independent.
func (e Easing) Value(progress, duration float64) float64 {
	progress = clamp01(progress)
	switch e.Kind {
	case EaseLinear:
		return ease.Linear(progress)
	case EaseInQuad:
		return ease.InQuad(progress)
	case EaseOutQuad:
		return ease.OutQuad(progress)
	case EaseInOutQuad:
		return ease.InOutQuad(progress)
	case EaseInOutCubic:
		return ease.InOutCubic(progress)
	case EaseOutExpo:
		return ease.OutExpo(progress)
	case EaseSpring:
		return e.springValue(progress * duration)
	default:
		return progress
	}
}

// Derivative returns the instantaneous rate of the eased progress with respect
// to raw progress. Callers derive velocities by scaling with
// (valueDelta / duration).
func (e Easing) Derivative(progress, duration float64) float64 {
	progress = clamp01(progress)
	switch e.Kind {
	case EaseLinear:
		return 1
	case EaseInQuad:
		return 2 * progress
	case EaseOutQuad:
		return 2 * (1 - progress)
	case EaseInOutQuad:
		if progress < 0.5 {
			return 4 * progress
		}
		return 4 * (1 - progress)
	case EaseInOutCubic:
		if progress < 0.5 {
			return 12 * progress * progress
		}
		return 12 * (1 - progress) * (1 - progress)
	case EaseOutExpo:
		if progress >= 1 {
			return 0
		}
		return 10 * math.Ln2 * math.Exp2(-10*progress)
	case EaseSpring:
		// Spring rate is physical; convert d/dt back to d/dprogress.
		return e.springVelocity(progress*duration) * duration
	default:
		return 1
	}
}

func (e Easing) springParams() (omega, zeta float64) {
	stiffness := e.Stiffness
	if stiffness <= 0 {
		stiffness = defaultSpringStiffness
	}
	damping := e.Damping
	if damping <= 0 {
		damping = defaultSpringDamping
	}
	omega = math.Sqrt(stiffness)
	zeta = damping / (2 * math.Sqrt(stiffness))
	return omega, zeta
}

// springValue is the closed-form response of a unit spring released at 0 with
// zero velocity and pulled toward 1, evaluated at elapsed seconds.
func (e Easing) springValue(elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	omega, zeta := e.springParams()
	switch {
	case zeta < 1:
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * omega * elapsed)
		return 1 - envelope*(math.Cos(omegaD*elapsed)+(zeta*omega/omegaD)*math.Sin(omegaD*elapsed))
	case zeta == 1:
		return 1 - math.Exp(-omega*elapsed)*(1+omega*elapsed)
	default:
		root := omega * math.Sqrt(zeta*zeta-1)
		r1 := -omega*zeta + root
		r2 := -omega*zeta - root
		a := r2 / (r2 - r1)
		b := -r1 / (r2 - r1)
		return 1 - (a*math.Exp(r1*elapsed) + b*math.Exp(r2*elapsed))
	}
}

func (e Easing) springVelocity(elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	omega, zeta := e.springParams()
	switch {
	case zeta < 1:
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * omega * elapsed)
		return envelope * (omega * omega / omegaD) * math.Sin(omegaD*elapsed)
	case zeta == 1:
		return omega * omega * elapsed * math.Exp(-omega*elapsed)
	default:
		root := omega * math.Sqrt(zeta*zeta-1)
		r1 := -omega*zeta + root
		r2 := -omega*zeta - root
		a := r2 / (r2 - r1)
		b := -r1 / (r2 - r1)
		return -(a*r1*math.Exp(r1*elapsed) + b*r2*math.Exp(r2*elapsed))
	}
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
