package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/notify"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

// Config holds runtime settings for the gophchat CLI.
//
// Units: RequestTimeout is a time.Duration where zero selects api.DefaultTimeout;
// RequestsPerSecond of zero disables client-side rate limiting.
// NotificationDuration is how long a notification stays listed by "notes".
type Config struct {
	ServerBaseURL     string
	APIPrefix         string
	MessageRoute      string
	RequestTimeout    time.Duration
	RequestsPerSecond float64

	DatabasePath string

	LogLevel   string
	LogFormat  string
	LogBackend string
	LogFile    string

	RenderWidth int
	RenderStyle string

	NotificationDuration time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.APIPrefix = api.DefaultPrefix
	c.MessageRoute = string(api.RouteNested)
	c.RequestTimeout = 0
	c.RequestsPerSecond = 0
	c.DatabasePath = "~/.gophchat/client.db"
	c.LogLevel = "warn"
	c.LogFormat = logging.FormatText
	c.LogBackend = logging.BackendSlog
	c.LogFile = ""
	c.RenderWidth = 0
	c.RenderStyle = "auto"
	c.NotificationDuration = notify.DefaultDuration
}

// Load builds a Config from defaults, the optional config file named by
// -c/-config, the environment, and flags, in that order of precedence
// (later wins). getenv may be nil.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if getenv != nil {
		parseEnv(cfg, getenv)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args and the process environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.Getenv)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServerBaseURL) == "" {
		return fmt.Errorf("config: server base url is empty")
	}
	switch api.MessageRoute(c.MessageRoute) {
	case api.RouteNested, api.RouteFlat:
	default:
		return fmt.Errorf("config: message route must be %q or %q, got %q", api.RouteNested, api.RouteFlat, c.MessageRoute)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config: negative request timeout")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("config: negative requests per second")
	}
	if c.NotificationDuration <= 0 {
		return fmt.Errorf("config: notification duration must be positive")
	}
	if c.RenderWidth < 0 {
		return fmt.Errorf("config: negative render width")
	}
	return nil
}
