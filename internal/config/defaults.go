package config

const (
	defaultDataDir   = "~/.local/share/apogee"
	defaultLogDir    = "~/.local/share/apogee/logs"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	databaseFileName = "academic.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Import: Import{
			StrictHeader: false,
		},
	}
}
