// Package main is the entry point for the paramkit CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	pkcli "github.com/NikitaCOEUR/paramkit/internal/cli"
	"github.com/NikitaCOEUR/paramkit/internal/trace"
	"github.com/NikitaCOEUR/paramkit/pkg/version"
)

func params(cmd *cli.Command, out io.Writer) pkcli.Params {
	return pkcli.Params{
		ConfigPath: cmd.String("config"),
		As:         cmd.String("as"),
		LogLevel:   cmd.String("log-level"),
		Out:        out,
	}
}

func newApp(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  "paramkit",
		Usage:                 "Parse, complete and run commands declared in a config file",
		Version:               version.String(),
		EnableShellCompletion: true,
		Writer:                out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (searched upward from the current directory if not set)",
				Sources: cli.EnvVars("PARAMKIT_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "as",
				Usage:   "Sender to run commands as",
				Value:   "console",
				Sources: cli.EnvVars("PARAMKIT_AS"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error), overrides the config file",
				Sources: cli.EnvVars("PARAMKIT_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:            "run",
				Usage:           "Run a command line",
				ArgsUsage:       "<command> [args...]",
				SkipFlagParsing: true,
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pkcli.Run(params(cmd, out), cmd.Args().Slice())
				},
			},
			{
				Name:            "complete",
				Usage:           "Print completions for the last argument (pass '' to complete a new one)",
				ArgsUsage:       "<command> [args...]",
				SkipFlagParsing: true,
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pkcli.Complete(params(cmd, out), cmd.Args().Slice())
				},
			},
			{
				Name:      "usage",
				Usage:     "Show the usage of a command, or of every command",
				ArgsUsage: "[command]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pkcli.Usage(params(cmd, out), cmd.Args().First())
				},
			},
			{
				Name:  "shell",
				Usage: "Read command lines interactively",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return pkcli.Shell(ctx, params(cmd, out), in)
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a paramkit configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.Args().First()
					if configPath == "" {
						configPath = cmd.String("config")
					}
					return pkcli.Validate(params(cmd, out), configPath)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for paramkit configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" {
						outputPath = cmd.Args().First()
					}
					return pkcli.Schema(params(cmd, out), outputPath)
				},
			},
		},
	}
}

func main() {
	stop := trace.Init()
	err := newApp(os.Stdin, os.Stdout).Run(context.Background(), os.Args)
	stop()
	if err != nil {
		if !errors.Is(err, pkcli.ErrCommandFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
