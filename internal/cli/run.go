package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/NikitaCOEUR/paramkit/internal/console"
)

// ErrCommandFailed is returned once a failure has been shown to the user
var ErrCommandFailed = errors.New("command failed")

// Run executes one command line built from args
func Run(p Params, args []string) error {
	c, err := initializeComponents(p)
	if err != nil {
		return err
	}

	line := joinArgs(args)
	out, err := c.console.Run(c.sender, line)
	if err != nil {
		_, _ = fmt.Fprintln(p.out(), console.RenderFailure(line, err))
		return ErrCommandFailed
	}
	_, _ = fmt.Fprintln(p.out(), console.RenderReply(out.Reply))
	return nil
}

// Complete prints the completion candidates for args, one per line. An empty
// last argument completes a new token.
func Complete(p Params, args []string) error {
	c, err := initializeComponents(p)
	if err != nil {
		return err
	}

	for _, candidate := range c.console.Complete(c.sender, joinArgs(args)) {
		_, _ = fmt.Fprintln(p.out(), candidate)
	}
	return nil
}

// Usage prints the usage of a command, or of every command when name is
// empty
func Usage(p Params, name string) error {
	c, err := initializeComponents(p)
	if err != nil {
		return err
	}

	if name == "" {
		_, _ = fmt.Fprintln(p.out(), c.console.Help(c.sender))
		return nil
	}

	usage, err := c.console.Usage(c.sender, name)
	if err != nil {
		_, _ = fmt.Fprintln(p.out(), console.RenderFailure(name, err))
		return ErrCommandFailed
	}
	_, _ = fmt.Fprintln(p.out(), usage)
	return nil
}

// Shell runs the interactive loop on in
func Shell(ctx context.Context, p Params, in io.Reader) error {
	c, err := initializeComponents(p)
	if err != nil {
		return err
	}
	c.log.Info().Int("commands", len(c.host.CommandNames())).Msg("Starting shell")
	return c.console.Loop(ctx, c.sender, in, p.out())
}
