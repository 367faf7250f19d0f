package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	RecordingsDir string `toml:"recordings_dir"`
	LogDir        string `toml:"log_dir"`
}

// Playback contains frame timing configuration.
type Playback struct {
	TargetFPS            int `toml:"target_fps"`
	CacheQuantizationFPS int `toml:"cache_quantization_fps"`
}

// Smoothing contains cursor path smoothing configuration.
type Smoothing struct {
	// Mode selects the smoothing strategy: "resample" (offline spline
	// resampling) or "spring" (live spring follower).
	Mode                   string  `toml:"mode"`
	GaussianRadius         int     `toml:"gaussian_radius"`
	CatmullRomTension      float64 `toml:"catmull_rom_tension"`
	IdleVelocityThreshold  float64 `toml:"idle_velocity_threshold"`
	IdleDecayRate          float64 `toml:"idle_decay_rate"`
	SpringStiffness        float64 `toml:"spring_stiffness"`
	SpringDamping          float64 `toml:"spring_damping"`
	SpringMaxVelocity      float64 `toml:"spring_max_velocity"`
	SpringMinResponseScale float64 `toml:"spring_min_response_scale"`
}

// Cursor contains click animation and keystroke overlay configuration.
type Cursor struct {
	PressScale      float64 `toml:"press_scale"`
	PressDurationMs int     `toml:"press_duration_ms"`
	ChordWindowMs   int     `toml:"chord_window_ms"`
	MinDisplayMs    int     `toml:"min_display_ms"`
}

// Cache contains preview frame cache configuration.
type Cache struct {
	MaxEntries int `toml:"max_entries"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Kinescope.
//
// Configuration sections by subsystem:
//   - Paths: recording database and log directories
//   - Playback: target frame rate and cache key quantization
//   - Smoothing: cursor smoothing pipeline parameters
//   - Cursor: click press animation and keystroke overlay timing
//   - Cache: preview frame cache capacity
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Playback  Playback  `toml:"playback"`
	Smoothing Smoothing `toml:"smoothing"`
	Cursor    Cursor    `toml:"cursor"`
	Cache     Cache     `toml:"cache"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/kinescope/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("kinescope.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for engine operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.RecordingsDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FrameInterval returns the playback frame interval in seconds.
func (c *Config) FrameInterval() float64 {
	return 1.0 / float64(c.Playback.TargetFPS)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
