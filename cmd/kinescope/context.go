package main

import (
	"fmt"
	"strings"
	"sync"

	"kinescope/internal/config"
	"kinescope/internal/recording"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withRecording opens the recording database named by the argument and closes
// it after fn returns.
func (c *commandContext) withRecording(path string, fn func(*config.Config, *recording.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("resolve recording path: %w", err)
	}
	store, err := recording.Open(expanded)
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer store.Close()
	return fn(cfg, store)
}
