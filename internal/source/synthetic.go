package source

import (
	"context"
	"image"
	"image/color"
	"math"
	"sync"
)

// Synthetic generates flat-color frames at a fixed native rate. It implements
// both Sequential and RandomAccess, which makes it useful for driving the
// render coordinator without a real decoder (the simulate command, tests).
type Synthetic struct {
	mu       sync.Mutex
	duration float64
	fps      float64
	width    int
	height   int
	next     int
	stopped  bool
}

// NewSynthetic builds a generator covering [0, duration] at the given rate.
func NewSynthetic(duration, fps float64, width, height int) *Synthetic {
	if fps <= 0 {
		fps = 30
	}
	if width <= 0 {
		width = 64
	}
	if height <= 0 {
		height = 36
	}
	return &Synthetic{duration: duration, fps: fps, width: width, height: height}
}

func (s *Synthetic) frameAt(at float64) *Frame {
	// Shade varies with time so consecutive frames are distinguishable.
	shade := uint8(128 + 127*math.Sin(at))
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	c := color.RGBA{R: shade, G: shade, B: shade, A: 255}
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return &Frame{Time: at, Image: img}
}

// NextFrame yields the next frame in native order.
func (s *Synthetic) NextFrame() (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, ErrExhausted
	}
	at := float64(s.next) / s.fps
	if at > s.duration {
		return nil, ErrExhausted
	}
	s.next++
	return s.frameAt(at), nil
}

// Seek repositions the stream to the first native frame at or after the time.
func (s *Synthetic) Seek(to float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if to < 0 {
		to = 0
	}
	s.next = int(math.Ceil(to * s.fps))
	return nil
}

// Stop ends the stream.
func (s *Synthetic) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// ExtractFrame renders the frame covering the requested time.
func (s *Synthetic) ExtractFrame(ctx context.Context, at float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if at < 0 || at > s.duration {
		return nil, ErrExtractionFailed
	}
	return s.frameAt(at).Image, nil
}

// CancelAll is a no-op; synthetic extraction completes synchronously.
func (s *Synthetic) CancelAll() {}
