package timeline_test

import (
	"math"
	"testing"

	"kinescope/internal/timeline"
)

func TestEasingEndpoints(t *testing.T) {
	kinds := []timeline.EasingKind{
		timeline.EaseLinear,
		timeline.EaseInQuad,
		timeline.EaseOutQuad,
		timeline.EaseInOutQuad,
		timeline.EaseInOutCubic,
		timeline.EaseOutExpo,
	}
	for _, kind := range kinds {
		easing := timeline.Easing{Kind: kind}
		if got := easing.Value(0, 1); math.Abs(got) > 1e-3 {
			t.Errorf("%v: Value(0) = %v; want 0", kind, got)
		}
		if got := easing.Value(1, 1); math.Abs(got-1) > 1e-3 {
			t.Errorf("%v: Value(1) = %v; want 1", kind, got)
		}
	}
}

func TestEasingDerivativeMatchesFiniteDifference(t *testing.T) {
	kinds := []timeline.EasingKind{
		timeline.EaseLinear,
		timeline.EaseInQuad,
		timeline.EaseOutQuad,
		timeline.EaseInOutQuad,
		timeline.EaseInOutCubic,
		timeline.EaseOutExpo,
		timeline.EaseSpring,
	}
	const duration = 0.75
	const h = 1e-5
	for _, kind := range kinds {
		easing := timeline.Easing{Kind: kind}
		for _, progress := range []float64{0.1, 0.3, 0.45, 0.6, 0.9} {
			numeric := (easing.Value(progress+h, duration) - easing.Value(progress-h, duration)) / (2 * h)
			analytic := easing.Derivative(progress, duration)
			if math.Abs(numeric-analytic) > 1e-2*(1+math.Abs(numeric)) {
				t.Errorf("%v at %.2f: derivative %v vs finite difference %v", kind, progress, analytic, numeric)
			}
		}
	}
}

func TestSpringEasingSettles(t *testing.T) {
	easing := timeline.Easing{Kind: timeline.EaseSpring}
	if got := easing.Value(1, 2.0); math.Abs(got-1) > 0.02 {
		t.Fatalf("spring should settle near 1 after 2s, got %v", got)
	}
	if got := easing.Value(0, 2.0); got != 0 {
		t.Fatalf("spring starts at 0, got %v", got)
	}
}

func TestSpringOverdampedMonotone(t *testing.T) {
	// Heavy damping keeps zeta above 1; the response must never overshoot.
	easing := timeline.Easing{Kind: timeline.EaseSpring, Stiffness: 100, Damping: 60}
	prev := -1.0
	for p := 0.0; p <= 1.0; p += 0.01 {
		v := easing.Value(p, 3.0)
		if v < prev-1e-9 {
			t.Fatalf("overdamped spring regressed at progress %.2f: %v < %v", p, v, prev)
		}
		if v > 1+1e-9 {
			t.Fatalf("overdamped spring overshot at progress %.2f: %v", p, v)
		}
		prev = v
	}
}

func TestParseEasingKindRoundTrip(t *testing.T) {
	for k := timeline.EaseLinear; k <= timeline.EaseSpring; k++ {
		parsed, err := timeline.ParseEasingKind(k.String())
		if err != nil {
			t.Fatalf("ParseEasingKind(%q): %v", k.String(), err)
		}
		if parsed != k {
			t.Fatalf("round trip %v -> %v", k, parsed)
		}
	}
	if _, err := timeline.ParseEasingKind("bounce"); err == nil {
		t.Fatal("expected error for unknown easing")
	}
}
