package source

import (
	"errors"
	"fmt"
	"log/slog"

	"kinescope/internal/logging"
)

// CFRReader adapts a variable-rate Sequential source into a constant-rate,
// gap-free stream. FrameAt always returns the latest source frame at or
// before the requested time, re-stamped to the requested time, so a caller
// querying on a fixed cadence sees neither gaps nor native timestamps.
//
// The reader holds at most two frames: the frame currently being served and
// one lookahead frame pulled past the last request. Calls outside seeks are
// amortized O(1).
// maxConsecutiveFailures bounds how long the reader keeps pulling through a
// corrupt stretch before treating the stream as ended.
const maxConsecutiveFailures = 120

type CFRReader struct {
	src    Sequential
	logger *slog.Logger

	held      *Frame
	lookahead *Frame
	exhausted bool
}

// NewCFRReader wraps the sequential source. A nil logger is replaced with a
// no-op logger.
func NewCFRReader(src Sequential, logger *slog.Logger) *CFRReader {
	return &CFRReader{
		src:    src,
		logger: logging.NewComponentLogger(logger, "cfr-reader"),
	}
}

// FrameAt returns the frame covering the requested time, stamped with that
// time. It returns nil before the first source frame has arrived and once
// the source is exhausted with nothing held.
func (r *CFRReader) FrameAt(at float64) *Frame {
	if r.lookahead != nil && r.lookahead.Time <= at {
		r.held = r.lookahead
		r.lookahead = nil
	}

	failures := 0
	for r.lookahead == nil && !r.exhausted {
		frame, err := r.pull()
		if err != nil {
			// A corrupt stretch of source should not wedge the reader.
			failures++
			if failures >= maxConsecutiveFailures {
				r.logger.Error("giving up on source after repeated extraction failures", logging.Int("failures", failures))
				r.exhausted = true
			}
			continue
		}
		if frame == nil {
			break
		}
		failures = 0
		if frame.Time <= at {
			r.held = frame
			continue
		}
		r.lookahead = frame
	}

	if r.held == nil {
		return nil
	}
	out := *r.held
	out.Time = at
	return &out
}

// pull reads one source frame, skipping single-frame extraction failures and
// latching the exhausted flag at stream end.
func (r *CFRReader) pull() (*Frame, error) {
	frame, err := r.src.NextFrame()
	if err != nil {
		if errors.Is(err, ErrExhausted) {
			r.exhausted = true
			return nil, nil
		}
		r.logger.Warn("skipping unreadable frame", logging.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	if frame == nil {
		r.exhausted = true
	}
	return frame, nil
}

// Seek drops both buffers and repositions the underlying source.
func (r *CFRReader) Seek(to float64) error {
	r.held = nil
	r.lookahead = nil
	r.exhausted = false
	if err := r.src.Seek(to); err != nil {
		return fmt.Errorf("seek source to %.4f: %w", to, err)
	}
	return nil
}

// Stop releases the underlying source.
func (r *CFRReader) Stop() {
	r.src.Stop()
}
