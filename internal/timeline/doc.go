// Package timeline defines the declarative edit model the engine evaluates:
// tracks of time-sorted segments and keyframes with easing curves, plus the
// generic binary-search interpolation used by every evaluator.
//
// Timelines are immutable snapshots. Editing code builds a new Timeline and
// swaps it into the evaluator wholesale; nothing here mutates after
// construction, which is what makes evaluation safe to run off the UI thread.
package timeline
