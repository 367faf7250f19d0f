// Package evaluate combines the timeline tracks into the single per-frame
// contract of the engine: an evaluated frame state at one timestamp.
//
// An Evaluator is immutable after construction and evaluation is a pure
// function of (timeline snapshot, mouse projections, time). Editing code
// builds a replacement Evaluator and swaps the reference; render workers read
// the reference under the coordinator's mutex, so edits are observed
// atomically and never torn mid-render.
package evaluate
