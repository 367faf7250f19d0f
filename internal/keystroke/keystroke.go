package keystroke

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"kinescope/internal/timeline"
)

// KeyEvent is one recorded key press.
type KeyEvent struct {
	Time      float64
	Key       string
	Modifiers []string
}

// Options controls how key events are grouped into overlay segments.
type Options struct {
	// ChordWindow groups events pressed within this many seconds into one
	// label.
	ChordWindow float64
	// MinDisplay keeps a segment visible at least this long.
	MinDisplay float64
	// FadeIn and FadeOut are the opacity ramp windows.
	FadeIn  float64
	FadeOut float64
}

// DefaultOptions match a readable overlay at typical typing speed.
func DefaultOptions() Options {
	return Options{
		ChordWindow: 0.5,
		MinDisplay:  0.8,
		FadeIn:      0.1,
		FadeOut:     0.25,
	}
}

var titler = cases.Title(language.English)

var modifierSymbols = map[string]string{
	"cmd":     "⌘",
	"command": "⌘",
	"meta":    "⌘",
	"ctrl":    "⌃",
	"control": "⌃",
	"alt":     "⌥",
	"option":  "⌥",
	"shift":   "⇧",
}

var namedKeys = map[string]string{
	"space":     "Space",
	"return":    "↩",
	"enter":     "↩",
	"tab":       "⇥",
	"escape":    "Esc",
	"esc":       "Esc",
	"backspace": "⌫",
	"delete":    "⌦",
	"up":        "↑",
	"down":      "↓",
	"left":      "←",
	"right":     "→",
}

// Label renders one key event as its overlay text: modifier symbols first,
// then the key, with named keys title-cased ("space" -> "Space") and single
// letters upper-cased.
func Label(ev KeyEvent) string {
	parts := make([]string, 0, len(ev.Modifiers)+1)
	for _, mod := range ev.Modifiers {
		if sym, ok := modifierSymbols[strings.ToLower(mod)]; ok {
			parts = append(parts, sym)
		} else {
			parts = append(parts, titler.String(mod))
		}
	}

	key := strings.ToLower(strings.TrimSpace(ev.Key))
	switch {
	case key == "":
		// Modifier-only chord, e.g. a held ⌘.
	case namedKeys[key] != "":
		parts = append(parts, namedKeys[key])
	case len([]rune(key)) == 1:
		parts = append(parts, strings.ToUpper(key))
	default:
		parts = append(parts, titler.String(key))
	}
	return strings.Join(parts, " ")
}

// Segments groups key events into keystroke overlay segments. Events inside
// the chord window extend the open segment and append to its label; a pause
// longer than the window closes it. Each segment displays for at least
// MinDisplay seconds.
func Segments(events []KeyEvent, opts Options) []timeline.KeystrokeSegment {
	if len(events) == 0 {
		return nil
	}
	if opts.ChordWindow <= 0 {
		opts = DefaultOptions()
	}

	var segments []timeline.KeystrokeSegment
	var open *timeline.KeystrokeSegment
	var lastEventTime float64

	for _, ev := range events {
		label := Label(ev)
		if label == "" {
			continue
		}
		if open != nil && ev.Time-lastEventTime <= opts.ChordWindow {
			open.Label += " " + label
			open.End = ev.Time + opts.MinDisplay
		} else {
			if open != nil {
				segments = append(segments, *open)
			}
			open = &timeline.KeystrokeSegment{
				Start:   ev.Time,
				End:     ev.Time + opts.MinDisplay,
				Label:   label,
				FadeIn:  opts.FadeIn,
				FadeOut: opts.FadeOut,
			}
		}
		lastEventTime = ev.Time
	}
	if open != nil {
		segments = append(segments, *open)
	}
	return segments
}
