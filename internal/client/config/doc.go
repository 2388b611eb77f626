// Package config loads runtime configuration for the gophchat CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config: TOML when the name
//     ends in .toml, JSON otherwise.
//  3. Environment: GOPHCHAT_API_URL, GOPHCHAT_DB, GOPHCHAT_LOG_LEVEL.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the chat backend
//	-p string   API path prefix (default "/api")
//	-d string   local database path
//	-l string   log level
//	-w int      render width
//	-m string   message route: nested or flat
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:5000",
//	  "api_prefix": "/api",
//	  "message_route": "nested",
//	  "request_timeout": "30s",
//	  "database_path": "~/.gophchat/client.db",
//	  "log_backend": "zap",
//	  "log_file": "/tmp/gophchat.log"
//	}
//
// The same keys are used in TOML.
package config
