// Package command binds a sender validator and a parameter tree to the
// function that runs a command.
package command

import (
	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/param"
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

// MsgTooManyArgs is reported when tokens are left after the parameters
const MsgTooManyArgs = "Too many arguments"

// UserValidator converts the generic sender into the sender type a command
// needs, or rejects it
type UserValidator[S any] interface {
	Validate(src param.Source) (S, error)
}

// ValidatorFunc adapts a function to UserValidator
type ValidatorFunc[S any] func(src param.Source) (S, error)

// Validate calls f
func (f ValidatorFunc[S]) Validate(src param.Source) (S, error) {
	return f(src)
}

// AnySource accepts every sender as is
func AnySource() UserValidator[param.Source] {
	return ValidatorFunc[param.Source](func(src param.Source) (param.Source, error) {
		return src, nil
	})
}

// Success is the result of a command that ran
type Success[R any] struct {
	Result R
}

// RunFunc runs a command once its sender and parameters are validated
type RunFunc[S, P, R any] func(sender S, ctx param.RunContext, p P) (Success[R], error)

// Executor is a command with its sender and parameter types hidden, so that
// commands of different shapes can share a table
type Executor[R any] interface {
	Execute(src param.Source, ctx param.RunContext, args []rawarg.RawArg) (Success[R], error)
	Suggestions(src param.Source, ctx param.RunContext, args []rawarg.RawArg) []string
	Usage(src param.Source) string
}

// Command is a runnable command
type Command[S, P, R any] struct {
	validator UserValidator[S]
	param     param.Parameter[P]
	run       RunFunc[S, P, R]
}

// New creates a command
func New[S, P, R any](validator UserValidator[S], p param.Parameter[P], run RunFunc[S, P, R]) *Command[S, P, R] {
	return &Command[S, P, R]{
		validator: validator,
		param:     p,
		run:       run,
	}
}

var _ Executor[int] = (*Command[param.Source, int, int])(nil)

// Execute validates the sender, parses args and runs the command. Every
// returned error is a cmderr.Failure.
func (c *Command[S, P, R]) Execute(src param.Source, ctx param.RunContext, args []rawarg.RawArg) (Success[R], error) {
	var zero Success[R]

	sender, err := c.validator.Validate(src)
	if err != nil {
		return zero, cmderr.From(err)
	}

	rest, p, err := c.param.Parse(src, ctx, args)
	if err != nil {
		return zero, cmderr.From(err)
	}
	if len(rest) > 0 {
		return zero, cmderr.NewUsageError(MsgTooManyArgs, rest[0].Start)
	}

	res, err := c.run(sender, ctx, p)
	if err != nil {
		return zero, cmderr.From(err)
	}
	return res, nil
}

// Suggestions completes the last token of args
func (c *Command[S, P, R]) Suggestions(src param.Source, ctx param.RunContext, args []rawarg.RawArg) []string {
	_, suggestions := c.param.Suggestions(src, ctx, args)
	return suggestions
}

// Usage renders the parameters of the command
func (c *Command[S, P, R]) Usage(src param.Source) string {
	return c.param.Usage(src)
}
