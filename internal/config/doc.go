// Package config loads, normalizes, and validates Kinescope configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates every knob the engine and CLI
// need: playback frame rates, cursor smoothing parameters, click animation
// timing, and preview cache capacity.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
