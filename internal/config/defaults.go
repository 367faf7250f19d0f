package config

const (
	defaultRecordingsDir          = "~/.local/share/kinescope/recordings"
	defaultLogDir                 = "~/.local/share/kinescope/logs"
	defaultTargetFPS              = 60
	defaultCacheQuantizationFPS   = 60
	defaultSmoothingMode          = "resample"
	defaultGaussianRadius         = 3
	defaultCatmullRomTension      = 0.2
	defaultIdleVelocityThreshold  = 0.001
	defaultIdleDecayRate          = 8.0
	defaultSpringStiffness        = 170.0
	defaultSpringDamping          = 26.0
	defaultSpringMaxVelocity      = 2.5
	defaultSpringMinResponseScale = 0.35
	defaultPressScale             = 0.8
	defaultPressDurationMs        = 80
	defaultChordWindowMs          = 500
	defaultMinDisplayMs           = 800
	defaultCacheMaxEntries        = 120
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RecordingsDir: defaultRecordingsDir,
			LogDir:        defaultLogDir,
		},
		Playback: Playback{
			TargetFPS:            defaultTargetFPS,
			CacheQuantizationFPS: defaultCacheQuantizationFPS,
		},
		Smoothing: Smoothing{
			Mode:                   defaultSmoothingMode,
			GaussianRadius:         defaultGaussianRadius,
			CatmullRomTension:      defaultCatmullRomTension,
			IdleVelocityThreshold:  defaultIdleVelocityThreshold,
			IdleDecayRate:          defaultIdleDecayRate,
			SpringStiffness:        defaultSpringStiffness,
			SpringDamping:          defaultSpringDamping,
			SpringMaxVelocity:      defaultSpringMaxVelocity,
			SpringMinResponseScale: defaultSpringMinResponseScale,
		},
		Cursor: Cursor{
			PressScale:      defaultPressScale,
			PressDurationMs: defaultPressDurationMs,
			ChordWindowMs:   defaultChordWindowMs,
			MinDisplayMs:    defaultMinDisplayMs,
		},
		Cache: Cache{
			MaxEntries: defaultCacheMaxEntries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
