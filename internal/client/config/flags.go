package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophchat/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the chat backend
//	-p string   API path prefix
//	-d string   local database path
//	-l string   log level (debug, info, warn, error)
//	-w int      render width in columns, 0 for the terminal width
//	-m string   message route: nested or flat
//
// args is filtered with flagx.FilterArgs first so flags owned by other
// components (such as -c) do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-p", "-d", "-l", "-w", "-m"})

	fs := flag.NewFlagSet("gophchat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the chat backend")
	fs.StringVar(&cfg.APIPrefix, "p", cfg.APIPrefix, "API path prefix")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.RenderWidth, "w", cfg.RenderWidth, "render width in columns")
	fs.StringVar(&cfg.MessageRoute, "m", cfg.MessageRoute, "message route: nested or flat")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
