package config

const (
	EnvServerBaseURL = "GOPHCHAT_API_URL"
	EnvDatabasePath  = "GOPHCHAT_DB"
	EnvLogLevel      = "GOPHCHAT_LOG_LEVEL"
)

// parseEnv overlays cfg with non-empty environment variables.
func parseEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvServerBaseURL); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
