package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if err := c.validateSmoothing(); err != nil {
		return err
	}
	if err := c.validateCursor(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.TargetFPS < 1 || c.Playback.TargetFPS > 240 {
		return errors.New("playback.target_fps must be between 1 and 240")
	}
	if c.Playback.CacheQuantizationFPS < c.Playback.TargetFPS {
		return errors.New("playback.cache_quantization_fps must be at least playback.target_fps")
	}
	return nil
}

func (c *Config) validateSmoothing() error {
	switch c.Smoothing.Mode {
	case "resample", "spring":
	default:
		return fmt.Errorf("smoothing.mode must be \"resample\" or \"spring\", got %q", c.Smoothing.Mode)
	}
	if c.Smoothing.CatmullRomTension < 0 || c.Smoothing.CatmullRomTension >= 1 {
		return errors.New("smoothing.catmull_rom_tension must be in [0, 1)")
	}
	if c.Smoothing.SpringMinResponseScale <= 0 || c.Smoothing.SpringMinResponseScale > 1 {
		return errors.New("smoothing.spring_min_response_scale must be in (0, 1]")
	}
	if err := ensurePositiveMap(map[string]float64{
		"smoothing.idle_velocity_threshold": c.Smoothing.IdleVelocityThreshold,
		"smoothing.idle_decay_rate":         c.Smoothing.IdleDecayRate,
		"smoothing.spring_stiffness":        c.Smoothing.SpringStiffness,
		"smoothing.spring_damping":          c.Smoothing.SpringDamping,
		"smoothing.spring_max_velocity":     c.Smoothing.SpringMaxVelocity,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCursor() error {
	if c.Cursor.PressScale <= 0 || c.Cursor.PressScale > 1 {
		return errors.New("cursor.press_scale must be in (0, 1]")
	}
	if c.Cursor.PressDurationMs > 1000 {
		return errors.New("cursor.press_duration_ms must be at most 1000")
	}
	if c.Cursor.ChordWindowMs > 5000 {
		return errors.New("cursor.chord_window_ms must be at most 5000")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.MaxEntries < 1 {
		return errors.New("cache.max_entries must be >= 1")
	}
	return nil
}

func ensurePositiveMap(values map[string]float64) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
