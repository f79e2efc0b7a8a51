package config

const (
	defaultInputDir    = "."
	defaultOutputDir   = "webp_output"
	defaultQuality     = 80
	defaultHistoryPath = "~/.local/share/webpify/history.db"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
		},
		Conversion: Conversion{
			Quality: defaultQuality,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
