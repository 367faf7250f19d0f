package recording

import (
	"context"
	"fmt"

	"kinescope/internal/config"
	"kinescope/internal/cursor"
	"kinescope/internal/keystroke"
	"kinescope/internal/timeline"
)

// Projection is the evaluator-ready view of a recording: normalized, smoothed,
// time-sorted event slices.
type Projection struct {
	Session    Session
	Mouse      []cursor.MousePosition
	Clicks     []cursor.ClickEvent
	Keystrokes []timeline.KeystrokeSegment
}

// Projections reads the raw events and runs the smoothing pipeline configured
// in cfg: normalize to [0,1], gaussian pre-filter, then either a spline
// resample or a spring-follower replay per smoothing.mode, idle stabilization,
// dedupe. Key events collapse into chorded overlay segments.
func (s *Store) Projections(ctx context.Context, cfg *config.Config) (*Projection, error) {
	ctx = ensureContext(ctx)

	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("recording %s has no session metadata", s.path)
	}
	if session.Width <= 0 || session.Height <= 0 {
		return nil, fmt.Errorf("recording %s has invalid capture size %dx%d", s.path, session.Width, session.Height)
	}

	raw, err := s.MouseSamples(ctx)
	if err != nil {
		return nil, err
	}
	rawClicks, err := s.Clicks(ctx)
	if err != nil {
		return nil, err
	}
	rawKeys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}

	frameInterval := cfg.FrameInterval()

	mouse := make([]cursor.MousePosition, len(raw))
	for i, sample := range raw {
		mouse[i] = cursor.MousePosition{
			Time: sample.Time,
			X:    sample.X / float64(session.Width),
			Y:    sample.Y / float64(session.Height),
		}
	}
	cursor.SortSamples(mouse)
	mouse = cursor.GaussianSmooth(mouse, cfg.Smoothing.GaussianRadius)
	switch cfg.Smoothing.Mode {
	case "spring":
		mouse = cursor.ResampleSpring(mouse, frameInterval, cursor.SpringConfig{
			Stiffness:        cfg.Smoothing.SpringStiffness,
			Damping:          cfg.Smoothing.SpringDamping,
			MaxVelocity:      cfg.Smoothing.SpringMaxVelocity,
			MinResponseScale: cfg.Smoothing.SpringMinResponseScale,
		})
	default:
		mouse = cursor.ResampleCatmullRom(mouse, frameInterval, cfg.Smoothing.CatmullRomTension)
	}
	mouse = cursor.Stabilize(mouse, cfg.Smoothing.IdleVelocityThreshold, cfg.Smoothing.IdleDecayRate)
	mouse = cursor.Dedupe(mouse, frameInterval)

	clicks := make([]cursor.ClickEvent, len(rawClicks))
	for i, click := range rawClicks {
		clicks[i] = cursor.ClickEvent{Time: click.Time, Duration: click.Duration, Button: click.Button}
	}

	events := make([]keystroke.KeyEvent, len(rawKeys))
	for i, key := range rawKeys {
		events[i] = keystroke.KeyEvent{Time: key.Time, Key: key.Key, Modifiers: key.Modifiers}
	}
	opts := keystroke.Options{
		ChordWindow: float64(cfg.Cursor.ChordWindowMs) / 1000,
		MinDisplay:  float64(cfg.Cursor.MinDisplayMs) / 1000,
		FadeIn:      keystroke.DefaultOptions().FadeIn,
		FadeOut:     keystroke.DefaultOptions().FadeOut,
	}

	return &Projection{
		Session:    *session,
		Mouse:      mouse,
		Clicks:     clicks,
		Keystrokes: keystroke.Segments(events, opts),
	}, nil
}
