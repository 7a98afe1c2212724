package config

const (
	defaultConfigPath             = "~/.config/captions/config.toml"
	defaultCacheDir               = "~/.cache/captions"
	defaultLogDir                 = "~/.local/share/captions/logs"
	defaultCacheFileName          = "cues.db"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultAPIBind                = "127.0.0.1:7490"
	defaultAPIMaxBodyBytes        = 8 << 20
	defaultExportFormat           = "json"
	defaultFallbackDisplaySeconds = 3.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Cache: Cache{
			Enabled: true,
		},
		API: API{
			Bind:         defaultAPIBind,
			MaxBodyBytes: defaultAPIMaxBodyBytes,
		},
		Export: Export{
			DefaultFormat:          defaultExportFormat,
			FallbackDisplaySeconds: defaultFallbackDisplaySeconds,
		},
	}
}
