package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlayback()
	c.normalizeSmoothing()
	c.normalizeCursor()
	c.normalizeCache()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.RecordingsDir) == "" {
		c.Paths.RecordingsDir = defaultRecordingsDir
	}
	if c.Paths.RecordingsDir, err = expandPath(c.Paths.RecordingsDir); err != nil {
		return fmt.Errorf("paths.recordings_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlayback() {
	if c.Playback.TargetFPS <= 0 {
		c.Playback.TargetFPS = defaultTargetFPS
	}
	if c.Playback.CacheQuantizationFPS <= 0 {
		c.Playback.CacheQuantizationFPS = defaultCacheQuantizationFPS
	}
}

func (c *Config) normalizeSmoothing() {
	c.Smoothing.Mode = strings.ToLower(strings.TrimSpace(c.Smoothing.Mode))
	if c.Smoothing.Mode == "" {
		c.Smoothing.Mode = defaultSmoothingMode
	}
	if c.Smoothing.GaussianRadius <= 0 {
		c.Smoothing.GaussianRadius = defaultGaussianRadius
	}
	if c.Smoothing.CatmullRomTension == 0 {
		c.Smoothing.CatmullRomTension = defaultCatmullRomTension
	}
	if c.Smoothing.IdleVelocityThreshold <= 0 {
		c.Smoothing.IdleVelocityThreshold = defaultIdleVelocityThreshold
	}
	if c.Smoothing.IdleDecayRate <= 0 {
		c.Smoothing.IdleDecayRate = defaultIdleDecayRate
	}
	if c.Smoothing.SpringStiffness <= 0 {
		c.Smoothing.SpringStiffness = defaultSpringStiffness
	}
	if c.Smoothing.SpringDamping <= 0 {
		c.Smoothing.SpringDamping = defaultSpringDamping
	}
	if c.Smoothing.SpringMaxVelocity <= 0 {
		c.Smoothing.SpringMaxVelocity = defaultSpringMaxVelocity
	}
	if c.Smoothing.SpringMinResponseScale <= 0 {
		c.Smoothing.SpringMinResponseScale = defaultSpringMinResponseScale
	}
}

func (c *Config) normalizeCursor() {
	if c.Cursor.PressScale <= 0 {
		c.Cursor.PressScale = defaultPressScale
	}
	if c.Cursor.PressDurationMs <= 0 {
		c.Cursor.PressDurationMs = defaultPressDurationMs
	}
	if c.Cursor.ChordWindowMs <= 0 {
		c.Cursor.ChordWindowMs = defaultChordWindowMs
	}
	if c.Cursor.MinDisplayMs <= 0 {
		c.Cursor.MinDisplayMs = defaultMinDisplayMs
	}
}

func (c *Config) normalizeCache() {
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = defaultCacheMaxEntries
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
