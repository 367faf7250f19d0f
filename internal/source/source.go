package source

import (
	"context"
	"errors"
	"image"
)

// ErrExhausted reports that a sequential source has no more frames. It is the
// terminal condition of a read stream, not a failure.
var ErrExhausted = errors.New("frame source exhausted")

// ErrExtractionFailed reports a single-frame decode failure. Readers log and
// skip it; it never aborts the stream.
var ErrExtractionFailed = errors.New("frame extraction failed")

// Frame is one decoded frame stamped with its timeline time in seconds.
type Frame struct {
	Time  float64
	Image image.Image
}

// Sequential yields frames in presentation order at the source's native,
// possibly variable rate. NextFrame returns ErrExhausted once the stream
// ends; Seek repositions the stream and may fail, which surfaces to the
// caller as a load/seek error.
type Sequential interface {
	NextFrame() (*Frame, error)
	Seek(to float64) error
	Stop()
}

// RandomAccess extracts a frame at an arbitrary time, used for scrubbing.
// CancelAll abandons outstanding extraction requests after a seek.
type RandomAccess interface {
	ExtractFrame(ctx context.Context, at float64) (image.Image, error)
	CancelAll()
}
