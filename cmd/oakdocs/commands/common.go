// Package commands implements the oakdocs subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/oakdocs/internal/config"
)

// LogLevelEnv overrides the log level chosen by --verbose.
const LogLevelEnv = "OAKDOCS_LOG_LEVEL"

// Global carries state shared by subcommands.
type Global struct {
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Tool configuration file (default: oakdocs.yaml when present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Write the site configuration artifacts"`
	Check    CheckCmd    `cmd:"" help:"Validate the configuration and verify links without writing"`
	Resolve  ResolveCmd  `cmd:"" help:"Show the sidebar selected for a page path"`
	Serve    ServeCmd    `cmd:"" help:"Serve the configuration over HTTP and regenerate on change"`
	Init     InitCmd     `cmd:"" help:"Write a starter oakdocs.yaml"`
}

// AfterApply runs after flag parsing and sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	if env := os.Getenv(LogLevelEnv); env != "" {
		parsed, err := parseLevel(env)
		if err != nil {
			return err
		}
		level = parsed
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return level, fmt.Errorf("invalid %s %q: %w", LogLevelEnv, s, err)
	}
	return level, nil
}

// loadConfig reads the tool configuration. Without --config a missing
// oakdocs.yaml falls back to defaults; a named file must exist.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.Config == "" {
		return config.LoadOrDefault(config.DefaultPath)
	}
	return config.Load(c.Config)
}
