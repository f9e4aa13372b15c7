// Package param provides the parameter contract and the combinators built on it.
//
// A Parameter consumes a prefix of a token slice and produces a typed value, or
// a cmderr.Failure describing where and why the input was rejected. Parameters
// are stateless: a tree of them is built once when a command is defined and is
// then shared by every invocation, possibly from several goroutines.
package param

import (
	"strings"
	"time"

	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

// Source is whoever issued the command
type Source interface {
	Name() string
}

// PermissionFunc reports whether src holds perm
type PermissionFunc func(src Source, perm string) bool

// RunContext carries the host collaborators for a single invocation.
// The zero value grants no permissions and uses the system clock.
type RunContext struct {
	// Permissions checks permissions for NeedPermission
	Permissions PermissionFunc
	// Now is the clock used by date and time parameters
	Now func() time.Time
	// ShowChoices lists the valid values when a choice is rejected
	ShowChoices bool
}

// HasPermission reports whether src holds perm
func (c RunContext) HasPermission(src Source, perm string) bool {
	if c.Permissions == nil {
		return false
	}
	return c.Permissions(src, perm)
}

func (c RunContext) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Parameter parses a value of type A from the front of a token slice
type Parameter[A any] interface {
	// Name is used for usage strings and error messages
	Name() string

	// Parse consumes the tokens it needs and returns the rest along with the
	// value. On failure the returned error is a cmderr.Failure.
	Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, A, error)

	// Suggestions never fails. It returns the candidates for the token being
	// completed, along with the tokens this parameter did not need.
	Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string)

	// Usage renders a placeholder for help output
	Usage(src Source) string
}

// DefaultUsage is the usage of a parameter with no special rendering
func DefaultUsage(name string) string {
	return "<" + name + ">"
}

// single parses exactly one token with a conversion function
type single[A any] struct {
	name    string
	convert func(ctx RunContext, s string) (A, error)
}

// Single builds a parameter that converts exactly one token. Conversion
// errors become syntax errors at the token position.
func Single[A any](name string, convert func(s string) (A, error)) Parameter[A] {
	return &single[A]{
		name: name,
		convert: func(_ RunContext, s string) (A, error) {
			return convert(s)
		},
	}
}

// SingleContext is like Single for conversions that need the run context
func SingleContext[A any](name string, convert func(ctx RunContext, s string) (A, error)) Parameter[A] {
	return &single[A]{name: name, convert: convert}
}

func (p *single[A]) Name() string { return p.name }

func (p *single[A]) Parse(_ Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, A, error) {
	var zero A
	if len(args) == 0 {
		return args, zero, cmderr.NotEnoughArgs()
	}

	head := args[0]
	v, err := p.convert(ctx, head.Content)
	if err != nil {
		return args, zero, cmderr.WrapSyntaxError(err, head.Start)
	}
	return args[1:], v, nil
}

func (p *single[A]) Suggestions(_ Source, _ RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return dropOne(args), nil
}

func (p *single[A]) Usage(_ Source) string { return DefaultUsage(p.name) }

func dropOne(args []rawarg.RawArg) []rawarg.RawArg {
	if len(args) == 0 {
		return nil
	}
	return args[1:]
}

// joinUsage joins the non-empty usages with sep
func joinUsage(sep string, usages ...string) string {
	parts := make([]string, 0, len(usages))
	for _, u := range usages {
		if u != "" {
			parts = append(parts, u)
		}
	}
	return strings.Join(parts, sep)
}

// prefixed returns the candidates that extend partial, ignoring case
func prefixed(candidates []string, partial string) []string {
	lower := strings.ToLower(partial)
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			out = append(out, c)
		}
	}
	return out
}

// appendUnique appends the elements of extra not already in list
func appendUnique(list []string, extra ...string) []string {
	seen := make(map[string]struct{}, len(list)+len(extra))
	for _, s := range list {
		seen[s] = struct{}{}
	}
	for _, s := range extra {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		list = append(list, s)
	}
	return list
}
