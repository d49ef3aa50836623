package config

const (
	defaultDataDir      = "~/.local/share/sortd"
	defaultLogDir       = "~/.local/share/sortd/logs"
	defaultWatchMode    = "poll"
	defaultPollInterval = 5
	defaultDebounceMS   = 500
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults. The watch
// directory is left empty here and resolved to the platform Downloads
// location during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Watch: Watch{
			Mode:         defaultWatchMode,
			PollInterval: defaultPollInterval,
			DebounceMS:   defaultDebounceMS,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
