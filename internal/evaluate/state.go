package evaluate

import "github.com/lucasb-eyer/go-colorful"

// TransformState is the camera crop at one frame. Zoom is 1 for the full
// frame; CenterX/CenterY are normalized crop centers. Velocities support
// motion-dependent effects downstream, in units per second.
type TransformState struct {
	Zoom         float64
	CenterX      float64
	CenterY      float64
	ZoomVelocity float64
	PanVelocityX float64
	PanVelocityY float64
}

// IdentityTransform is the full, uncropped frame.
func IdentityTransform() TransformState {
	return TransformState{Zoom: 1, CenterX: 0.5, CenterY: 0.5}
}

// CursorState is the rendered cursor at one frame. PressScale carries the
// click press/settle animation; Scale is the authored base size.
type CursorState struct {
	X          float64
	Y          float64
	Scale      float64
	PressScale float64
	Velocity   float64
	IsClicking bool
	Button     int
}

// KeystrokeState is one visible keystroke badge at one frame.
type KeystrokeState struct {
	Label      string
	Opacity    float64
	Background colorful.Color
	Text       colorful.Color
}

// FrameState is the complete evaluated visual state for one timestamp: the
// single contract between evaluation and compositing.
type FrameState struct {
	Time       float64
	Transform  TransformState
	Cursor     CursorState
	Keystrokes []KeystrokeState
}

// TransformSample is one entry of a pre-computed dense transform array.
// When a track has been baked (scrubbing a long pan, export), evaluation
// prefers these samples over re-deriving segment easings.
type TransformSample struct {
	Time    float64
	Zoom    float64
	CenterX float64
	CenterY float64
}
