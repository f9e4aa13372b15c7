package param

import (
	"strings"

	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

// Messages of the failures raised by the combinators in this file
const (
	MsgNoValues      = "No values found"
	MsgMultiple      = "More than one possible value"
	MsgNoPermissions = "You do not have the permissions needed to use this parameter"
)

type optional[A any] struct {
	p Parameter[A]
}

// Optional never fails: when p fails nothing is consumed and the value is nil
func Optional[A any](p Parameter[A]) Parameter[*A] {
	return &optional[A]{p: p}
}

func (o *optional[A]) Name() string { return o.p.Name() }

func (o *optional[A]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, *A, error) {
	rest, v, err := o.p.Parse(src, ctx, args)
	if err != nil {
		return args, nil, nil
	}
	return rest, &v, nil
}

func (o *optional[A]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return o.p.Suggestions(src, ctx, args)
}

func (o *optional[A]) Usage(src Source) string {
	u := o.p.Usage(src)
	if u == "" {
		return ""
	}
	return "[" + u + "]"
}

type repeated[A any] struct {
	p Parameter[A]
}

// Repeated applies p until it fails or the input runs out. The failure that
// stops the repetition is dropped, so Repeated itself never fails.
func Repeated[A any](p Parameter[A]) Parameter[[]A] {
	return &repeated[A]{p: p}
}

func (r *repeated[A]) Name() string { return r.p.Name() }

func (r *repeated[A]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []A, error) {
	var out []A
	xs := args
	for len(xs) > 0 {
		rest, v, err := r.p.Parse(src, ctx, xs)
		// A success that consumes nothing would repeat forever
		if err != nil || len(rest) == len(xs) {
			break
		}
		out = append(out, v)
		xs = rest
	}
	return xs, out, nil
}

// Suggestions walks the input with Parse and completes at the token where
// parsing would stop
func (r *repeated[A]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	xs := args
	for len(xs) > 0 {
		rest, _, err := r.p.Parse(src, ctx, xs)
		if err == nil && len(rest) > 0 && len(rest) < len(xs) {
			xs = rest
			continue
		}
		if err != nil && len(xs) > 1 {
			return xs, nil
		}

		ys, suggestions := r.p.Suggestions(src, ctx, xs)
		if len(suggestions) == 0 && err != nil {
			// Leave the token for whatever follows
			return xs, nil
		}
		return ys, suggestions
	}
	return xs, nil
}

func (r *repeated[A]) Usage(src Source) string {
	u := r.p.Usage(src)
	if u == "" {
		return ""
	}
	return u + "..."
}

type onlyOne[A any] struct {
	p Parameter[[]A]
}

// OnlyOne requires p to resolve to exactly one value
func OnlyOne[A any](p Parameter[[]A]) Parameter[A] {
	return &onlyOne[A]{p: p}
}

func (o *onlyOne[A]) Name() string { return o.p.Name() }

func (o *onlyOne[A]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, A, error) {
	var zero A
	rest, vs, err := o.p.Parse(src, ctx, args)
	if err != nil {
		return args, zero, err
	}

	switch len(vs) {
	case 0:
		return args, zero, cmderr.NewUsageError(MsgNoValues, rawarg.Pos(args))
	case 1:
		return rest, vs[0], nil
	default:
		return args, zero, cmderr.NewUsageError(MsgMultiple, rawarg.Pos(args))
	}
}

func (o *onlyOne[A]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return o.p.Suggestions(src, ctx, args)
}

func (o *onlyOne[A]) Usage(src Source) string { return o.p.Usage(src) }

type named[A any] struct {
	name string
	p    Parameter[A]
}

// Named renames p. Parsing and suggestions are unchanged; the usage keeps its
// shape with the placeholder relabelled.
func Named[A any](name string, p Parameter[A]) Parameter[A] {
	return &named[A]{name: name, p: p}
}

func (n *named[A]) Name() string { return n.name }

func (n *named[A]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, A, error) {
	return n.p.Parse(src, ctx, args)
}

func (n *named[A]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return n.p.Suggestions(src, ctx, args)
}

func (n *named[A]) Usage(src Source) string {
	return strings.Replace(n.p.Usage(src), DefaultUsage(n.p.Name()), DefaultUsage(n.name), 1)
}

type needPermission[A any] struct {
	perm string
	p    Parameter[A]
}

// NeedPermission only lets sources holding perm use p
func NeedPermission[A any](perm string, p Parameter[A]) Parameter[A] {
	return &needPermission[A]{perm: perm, p: p}
}

func (n *needPermission[A]) Name() string { return n.p.Name() }

func (n *needPermission[A]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, A, error) {
	if !ctx.HasPermission(src, n.perm) {
		var zero A
		return args, zero, cmderr.NewUsageError(MsgNoPermissions, rawarg.Pos(args))
	}
	return n.p.Parse(src, ctx, args)
}

func (n *needPermission[A]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	if !ctx.HasPermission(src, n.perm) {
		return dropOne(args), nil
	}
	return n.p.Suggestions(src, ctx, args)
}

func (n *needPermission[A]) Usage(src Source) string {
	return n.p.Usage(src)
}

type or[A any] struct {
	a, b Parameter[A]
}

// Or tries a, then b against the same input. When both fail the failures
// are merged.
func Or[A any](a, b Parameter[A]) Parameter[A] {
	return &or[A]{a: a, b: b}
}

func (o *or[A]) Name() string { return o.a.Name() }

func (o *or[A]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, A, error) {
	rest, v, errA := o.a.Parse(src, ctx, args)
	if errA == nil {
		return rest, v, nil
	}
	rest, v, errB := o.b.Parse(src, ctx, args)
	if errB == nil {
		return rest, v, nil
	}
	var zero A
	return args, zero, cmderr.Merge(errA, errB)
}

func (o *or[A]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return suggestFirstOf(src, ctx, args, o.a, o.b)
}

func (o *or[A]) Usage(src Source) string {
	return joinUsage("|", o.a.Usage(src), o.b.Usage(src))
}

// suggestFirstOf completes over several alternatives. An alternative that
// parses and leaves tokens behind is past its input, so it alone decides the
// remainder. Otherwise every alternative contributes candidates.
func suggestFirstOf[A any](src Source, ctx RunContext, args []rawarg.RawArg, ps ...Parameter[A]) ([]rawarg.RawArg, []string) {
	for _, p := range ps {
		if rest, _, err := p.Parse(src, ctx, args); err == nil && len(rest) > 0 {
			return p.Suggestions(src, ctx, args)
		}
	}

	var remaining []rawarg.RawArg
	var candidates []string
	for i, p := range ps {
		ys, s := p.Suggestions(src, ctx, args)
		if i == 0 {
			remaining = ys
		}
		candidates = appendUnique(candidates, s...)
	}
	return remaining, candidates
}

type orSource[A any] struct {
	p        Parameter[A]
	fallback func(src Source, ctx RunContext) (A, error)
}

// OrSource uses p, or derives the value from the source when p fails. If the
// source cannot provide a value either, the failure of p is reported.
func OrSource[A any](p Parameter[A], fallback func(src Source, ctx RunContext) (A, error)) Parameter[A] {
	return &orSource[A]{p: p, fallback: fallback}
}

func (o *orSource[A]) Name() string { return o.p.Name() }

func (o *orSource[A]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, A, error) {
	rest, v, err := o.p.Parse(src, ctx, args)
	if err == nil {
		return rest, v, nil
	}
	fv, ferr := o.fallback(src, ctx)
	if ferr != nil {
		var zero A
		return args, zero, err
	}
	return args, fv, nil
}

func (o *orSource[A]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return o.p.Suggestions(src, ctx, args)
}

func (o *orSource[A]) Usage(src Source) string {
	return "[" + o.p.Usage(src) + "]"
}

type mapped[A, B any] struct {
	p Parameter[A]
	f func(A) (B, error)
}

// Map converts the value of p. Errors from f are reported as usage errors at
// the first token p was given.
func Map[A, B any](p Parameter[A], f func(A) (B, error)) Parameter[B] {
	return &mapped[A, B]{p: p, f: f}
}

func (m *mapped[A, B]) Name() string { return m.p.Name() }

func (m *mapped[A, B]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, B, error) {
	var zero B
	rest, v, err := m.p.Parse(src, ctx, args)
	if err != nil {
		return args, zero, err
	}
	out, err := m.f(v)
	if err != nil {
		return args, zero, cmderr.NewUsageError(err.Error(), rawarg.Pos(args))
	}
	return rest, out, nil
}

func (m *mapped[A, B]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return m.p.Suggestions(src, ctx, args)
}

func (m *mapped[A, B]) Usage(src Source) string { return m.p.Usage(src) }

// Untyped erases the value type of p so it can sit next to parameters of
// other types in a record or an alternative
func Untyped[A any](p Parameter[A]) Parameter[any] {
	return Map(p, func(v A) (any, error) { return v, nil })
}
