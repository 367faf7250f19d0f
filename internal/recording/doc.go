// Package recording persists the raw input events captured during a screen
// recording session: mouse samples, click events, key presses, and session
// metadata, one SQLite database per recording.
//
// Raw events are stored exactly as captured. Projections converts them into
// the normalized, smoothed slices the frame evaluator consumes.
package recording
