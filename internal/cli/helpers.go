// Package cli implements the actions behind the paramkit subcommands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/NikitaCOEUR/paramkit/internal/config"
	"github.com/NikitaCOEUR/paramkit/internal/console"
	"github.com/NikitaCOEUR/paramkit/internal/host"
	"github.com/NikitaCOEUR/paramkit/internal/logger"
)

// Params holds the global options shared by every subcommand
type Params struct {
	// ConfigPath overrides the config file search
	ConfigPath string
	// As is the sender commands run as; empty means the console
	As string
	// LogLevel overrides the level of the config file when set
	LogLevel string
	// Dir is where the config search starts; empty means the working dir
	Dir string
	// Out receives command output, stdout when nil
	Out io.Writer
	// Log receives log lines, stderr when nil
	Log io.Writer
}

func (p Params) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// components holds initialized paramkit components
type components struct {
	log     *logger.Logger
	host    *host.Host
	console *console.Console
	sender  *host.Sender
}

// initializeComponents loads the config and builds the host around it
func initializeComponents(p Params) (*components, error) {
	dir := p.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}

	cfg, path, err := config.New().Resolve(p.ConfigPath, dir)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if p.LogLevel != "" {
		level = p.LogLevel
	}
	log := logger.New(level, p.Log)
	log.Debug().Str("path", path).Int("commands", len(cfg.Commands)).Msg("Loaded config")

	h, err := host.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build commands: %w", err)
	}

	sender, err := h.Senders.Lookup(p.As)
	if err != nil {
		return nil, err
	}

	return &components{
		log:     log,
		host:    h,
		console: console.New(h, log.With("sender", sender.Name())),
		sender:  sender,
	}, nil
}

// joinArgs rebuilds a command line from shell arguments so that tokenizing
// it gives the arguments back. An empty last argument becomes trailing
// whitespace, which completion reads as a new token.
func joinArgs(args []string) string {
	parts := make([]string, 0, len(args))
	for i, a := range args {
		if needsQuotes(a, i == len(args)-1) {
			a = `"` + quoteEscaper.Replace(a) + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func needsQuotes(a string, last bool) bool {
	if a == "" {
		return !last
	}
	return strings.HasPrefix(a, `"`) || strings.HasPrefix(a, "'") || strings.ContainsFunc(a, unicode.IsSpace)
}
