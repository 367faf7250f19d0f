package render

import (
	"image"
	"image/draw"

	"kinescope/internal/evaluate"
	"kinescope/internal/previewcache"
)

// Compositor draws an evaluated frame. Implementations reuse the provided
// target when it is non-nil and the right size; otherwise they allocate.
type Compositor interface {
	Render(src image.Image, state evaluate.FrameState, reuse previewcache.RenderTarget) previewcache.RenderTarget
}

// ImageTarget is a render target backed by an RGBA image.
type ImageTarget struct {
	Img *image.RGBA
}

// NewImageTarget allocates a target of the given size.
func NewImageTarget(width, height int) *ImageTarget {
	return &ImageTarget{Img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Size returns the pixel dimensions of the target.
func (t *ImageTarget) Size() (int, int) {
	bounds := t.Img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// PassthroughCompositor copies the source frame into the target unchanged,
// ignoring the evaluated state. The simulate command uses it to exercise the
// coordinator without a GPU surface.
type PassthroughCompositor struct{}

// Render implements Compositor.
func (PassthroughCompositor) Render(src image.Image, _ evaluate.FrameState, reuse previewcache.RenderTarget) previewcache.RenderTarget {
	bounds := src.Bounds()
	target, ok := reuse.(*ImageTarget)
	if !ok || target == nil {
		target = NewImageTarget(bounds.Dx(), bounds.Dy())
	} else if w, h := target.Size(); w != bounds.Dx() || h != bounds.Dy() {
		target = NewImageTarget(bounds.Dx(), bounds.Dy())
	}
	draw.Draw(target.Img, target.Img.Bounds(), src, bounds.Min, draw.Src)
	return target
}
