package param

import (
	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

// Variant is the result of an alternative: the tag of the variant that
// parsed and its value
type Variant struct {
	Tag   string
	Value any
}

type variant struct {
	tag string
	p   Parameter[any]
}

// AlternativesBuilder declares the variants of a tagged alternative
type AlternativesBuilder struct {
	name     string
	variants []variant
}

// NewAlternatives starts a tagged alternative declaration
func NewAlternatives(name string) *AlternativesBuilder {
	return &AlternativesBuilder{name: name}
}

// Variant appends a variant. Variants are tried in declaration order.
func (b *AlternativesBuilder) Variant(tag string, p Parameter[any]) *AlternativesBuilder {
	b.variants = append(b.variants, variant{tag: tag, p: p})
	return b
}

// Build returns the alternative parameter
func (b *AlternativesBuilder) Build() Parameter[Variant] {
	variants := make([]variant, len(b.variants))
	copy(variants, b.variants)
	return &alternatives{name: b.name, variants: variants}
}

type alternatives struct {
	name     string
	variants []variant
}

func (a *alternatives) Name() string { return a.name }

// Parse tries every variant against the same input. The first success wins;
// when all fail their failures are merged.
func (a *alternatives) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, Variant, error) {
	var failure error
	for _, v := range a.variants {
		rest, val, err := v.p.Parse(src, ctx, args)
		if err == nil {
			return rest, Variant{Tag: v.tag, Value: val}, nil
		}
		if failure == nil {
			failure = err
		} else {
			failure = cmderr.Merge(failure, err)
		}
	}
	if failure == nil {
		failure = cmderr.NewUsageError("No alternatives to choose from", rawarg.Pos(args))
	}
	return args, Variant{}, failure
}

func (a *alternatives) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	ps := make([]Parameter[any], 0, len(a.variants))
	for _, v := range a.variants {
		ps = append(ps, v.p)
	}
	return suggestFirstOf(src, ctx, args, ps...)
}

func (a *alternatives) Usage(src Source) string {
	usages := make([]string, 0, len(a.variants))
	for _, v := range a.variants {
		usages = append(usages, v.p.Usage(src))
	}
	return "(" + joinUsage("|", usages...) + ")"
}
