package recording

// Session describes a recording's capture parameters.
type Session struct {
	Title     string
	Width     int
	Height    int
	NativeFPS float64
	Duration  float64
	CreatedAt string
}

// MouseSample is one raw cursor position in capture pixel coordinates.
type MouseSample struct {
	Time float64
	X    float64
	Y    float64
}

// Click is one raw mouse button press.
type Click struct {
	Time     float64
	Duration float64
	Button   int
}

// Key is one raw key press.
type Key struct {
	Time      float64
	Key       string
	Modifiers []string
}

// EventCounts summarizes how many events a recording holds.
type EventCounts struct {
	MouseSamples int64
	Clicks       int64
	Keys         int64
}
