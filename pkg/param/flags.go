package param

import (
	"strings"

	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

// FlagToken renders the token that enables a flag: -x for single character
// names, --name otherwise
func FlagToken(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

func indexOf(args []rawarg.RawArg, content string) int {
	for i, a := range args {
		if a.Content == content {
			return i
		}
	}
	return -1
}

// completesFlag reports whether the last arg is a partially typed tok
func completesFlag(args []rawarg.RawArg, tok string) bool {
	if len(args) == 0 {
		return false
	}
	last := args[len(args)-1].Content
	return strings.HasPrefix(last, "-") && strings.HasPrefix(tok, last)
}

type boolFlag struct {
	name string
	tok  string
}

// BoolFlag is true when its flag token appears anywhere in the input. The
// token is removed, every other token keeps its order.
func BoolFlag(name string) Parameter[bool] {
	return &boolFlag{name: name, tok: FlagToken(name)}
}

func (f *boolFlag) Name() string { return f.name }

func (f *boolFlag) Parse(_ Source, _ RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, bool, error) {
	if i := indexOf(args, f.tok); i >= 0 {
		return rawarg.Without(args, i), true, nil
	}
	return args, false, nil
}

// Suggestions removes a completed occurrence of the flag and offers the flag
// token when the last arg is a prefix of it. The last arg is always kept so
// that further flags can complete it too.
func (f *boolFlag) Suggestions(_ Source, _ RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	if len(args) == 0 {
		return args, nil
	}
	if i := indexOf(args[:len(args)-1], f.tok); i >= 0 {
		return rawarg.Without(args, i), nil
	}
	if completesFlag(args, f.tok) {
		return args, []string{f.tok}
	}
	return args, nil
}

func (f *boolFlag) Usage(_ Source) string { return "[" + f.tok + "]" }

type valueFlag[A any] struct {
	name string
	tok  string
	p    Parameter[A]
}

// ValueFlag looks for its flag token anywhere in the input and parses the
// tokens after it with p. The flag token and the value tokens are removed.
// The value is nil when the flag is absent.
func ValueFlag[A any](name string, p Parameter[A]) Parameter[*A] {
	return &valueFlag[A]{name: name, tok: FlagToken(name), p: p}
}

func (f *valueFlag[A]) Name() string { return f.name }

func (f *valueFlag[A]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, *A, error) {
	i := indexOf(args, f.tok)
	if i < 0 {
		return args, nil, nil
	}

	rest, v, err := f.p.Parse(src, ctx, args[i+1:])
	if err != nil {
		return args, nil, err
	}
	return rawarg.Splice(args, i, rest), &v, nil
}

func (f *valueFlag[A]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	if len(args) == 0 {
		return args, nil
	}

	i := indexOf(args[:len(args)-1], f.tok)
	if i < 0 {
		if completesFlag(args, f.tok) {
			return args, []string{f.tok}
		}
		return args, nil
	}

	rest, suggestions := f.p.Suggestions(src, ctx, args[i+1:])
	if len(rest) == 0 {
		// The value is what is being typed
		return nil, suggestions
	}
	return rawarg.Splice(args, i, rest), suggestions
}

func (f *valueFlag[A]) Usage(src Source) string {
	return "[" + f.tok + " " + f.p.Usage(src) + "]"
}

// Flagged is the result of Flags
type Flagged[F, P any] struct {
	Flags F
	Value P
}

type flags[F, P any] struct {
	flags      Parameter[F]
	positional Parameter[P]
}

// Flags parses flags against the whole input first, then positional against
// whatever the flags left
func Flags[F, P any](flagParam Parameter[F], positional Parameter[P]) Parameter[Flagged[F, P]] {
	return &flags[F, P]{flags: flagParam, positional: positional}
}

func (f *flags[F, P]) Name() string { return f.positional.Name() }

func (f *flags[F, P]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, Flagged[F, P], error) {
	var out Flagged[F, P]

	rest, fv, err := f.flags.Parse(src, ctx, args)
	if err != nil {
		return args, out, err
	}
	rest, pv, err := f.positional.Parse(src, ctx, rest)
	if err != nil {
		return args, out, err
	}

	out.Flags = fv
	out.Value = pv
	return rest, out, nil
}

// Suggestions offers flag names first and only falls back to the positional
// parameters when no flag matches
func (f *flags[F, P]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	rest, suggestions := f.flags.Suggestions(src, ctx, args)
	if len(suggestions) > 0 || len(rest) == 0 {
		return nil, suggestions
	}
	return f.positional.Suggestions(src, ctx, rest)
}

func (f *flags[F, P]) Usage(src Source) string {
	return joinUsage(" ", f.flags.Usage(src), f.positional.Usage(src))
}
