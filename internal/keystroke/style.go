package keystroke

import "github.com/lucasb-eyer/go-colorful"

// Style holds the overlay colors for keystroke badges. Active blends the idle
// colors toward their pressed variants in HCL space, which keeps perceived
// lightness steady through the transition.
type Style struct {
	Background        colorful.Color
	Text              colorful.Color
	PressedBackground colorful.Color
	PressedText       colorful.Color
}

// DefaultStyle is a dark badge with light text.
func DefaultStyle() Style {
	background, _ := colorful.Hex("#1c1c1e")
	text, _ := colorful.Hex("#f2f2f7")
	pressedBackground, _ := colorful.Hex("#3a3a3c")
	pressedText, _ := colorful.Hex("#ffffff")
	return Style{
		Background:        background,
		Text:              text,
		PressedBackground: pressedBackground,
		PressedText:       pressedText,
	}
}

// Blend returns the background and text colors at the given press activation
// in [0,1].
func (s Style) Blend(active float64) (background, text colorful.Color) {
	if active <= 0 {
		return s.Background, s.Text
	}
	if active >= 1 {
		return s.PressedBackground, s.PressedText
	}
	return s.Background.BlendHcl(s.PressedBackground, active).Clamped(),
		s.Text.BlendHcl(s.PressedText, active).Clamped()
}
