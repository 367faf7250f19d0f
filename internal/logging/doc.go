// Package logging assembles the structured slog loggers used across the
// engine.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and standardizes the attribute keys render components tag their lines with
// (component, render session, generation, frame time). A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
