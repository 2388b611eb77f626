package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dmitrijs2005/gophchat/internal/flagx"
	"github.com/dmitrijs2005/gophchat/internal/timex"
)

// fileConfig is a DTO for the JSON and TOML config files. Pointer fields
// distinguish "absent" from "zero" so a file only overrides what it names.
// Durations accept "30s" strings or integer nanoseconds via timex.Duration.
type fileConfig struct {
	ServerBaseURL     *string         `json:"server_base_url" toml:"server_base_url"`
	APIPrefix         *string         `json:"api_prefix" toml:"api_prefix"`
	MessageRoute      *string         `json:"message_route" toml:"message_route"`
	RequestTimeout    *timex.Duration `json:"request_timeout" toml:"request_timeout"`
	RequestsPerSecond *float64        `json:"requests_per_second" toml:"requests_per_second"`
	DatabasePath      *string         `json:"database_path" toml:"database_path"`
	LogLevel          *string         `json:"log_level" toml:"log_level"`
	LogFormat         *string         `json:"log_format" toml:"log_format"`
	LogBackend        *string         `json:"log_backend" toml:"log_backend"`
	LogFile           *string         `json:"log_file" toml:"log_file"`
	RenderWidth       *int            `json:"render_width" toml:"render_width"`
	RenderStyle       *string         `json:"render_style" toml:"render_style"`

	NotificationDuration *timex.Duration `json:"notification_duration" toml:"notification_duration"`
}

// parseFile overlays cfg with the file selected by -c/-config. The format
// follows the extension: .toml is TOML, anything else JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse json config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	setString(&cfg.ServerBaseURL, fc.ServerBaseURL)
	setString(&cfg.APIPrefix, fc.APIPrefix)
	setString(&cfg.MessageRoute, fc.MessageRoute)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *fc.RequestsPerSecond
	}
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogBackend, fc.LogBackend)
	setString(&cfg.LogFile, fc.LogFile)
	if fc.RenderWidth != nil {
		cfg.RenderWidth = *fc.RenderWidth
	}
	setString(&cfg.RenderStyle, fc.RenderStyle)
	if fc.NotificationDuration != nil {
		cfg.NotificationDuration = fc.NotificationDuration.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
