package param

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

// FieldValue is one parsed field of a Record
type FieldValue struct {
	Name  string
	Value any
}

// Record holds the fields of a sequential record in declaration order
type Record struct {
	Fields []FieldValue
}

// Get returns the value of the named field
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in order
func (r Record) Names() []string {
	names := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Map returns the fields keyed by name
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// Decode copies the fields into out, which must be a pointer to a struct.
// Struct fields are matched by their `param` tag, or by name.
func (r Record) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "param",
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(r.Map()); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}

// Field returns the named field as a T
func Field[T any](r Record, name string) (T, bool) {
	v, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

type recordField struct {
	label string
	p     Parameter[any]
}

// RecordBuilder declares the fields of a sequential record
type RecordBuilder struct {
	name   string
	fields []recordField
}

// NewRecord starts a record declaration
func NewRecord(name string) *RecordBuilder {
	return &RecordBuilder{name: name}
}

// Field appends a field. Use Untyped to pass a typed parameter.
func (b *RecordBuilder) Field(label string, p Parameter[any]) *RecordBuilder {
	b.fields = append(b.fields, recordField{label: label, p: Named(label, p)})
	return b
}

// Build returns the record parameter. The builder can keep being used; the
// parameter is not affected.
func (b *RecordBuilder) Build() Parameter[Record] {
	fields := make([]recordField, len(b.fields))
	copy(fields, b.fields)
	return &record{name: b.name, fields: fields}
}

type record struct {
	name   string
	fields []recordField
}

func (r *record) Name() string { return r.name }

// Parse parses every field in order. The first failing field aborts the
// record.
func (r *record) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, Record, error) {
	out := Record{Fields: make([]FieldValue, 0, len(r.fields))}
	xs := args
	for _, f := range r.fields {
		rest, v, err := f.p.Parse(src, ctx, xs)
		if err != nil {
			return args, Record{}, err
		}
		out.Fields = append(out.Fields, FieldValue{Name: f.label, Value: v})
		xs = rest
	}
	return xs, out, nil
}

// Suggestions chains the fields left to right, feeding each one the
// remainder declared by the previous one, and stops once a field has taken
// the last token
func (r *record) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	steps := make([]suggestFunc, 0, len(r.fields))
	for _, f := range r.fields {
		steps = append(steps, f.p.Suggestions)
	}
	return chainSuggestions(src, ctx, args, steps...)
}

func (r *record) Usage(src Source) string {
	usages := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		usages = append(usages, f.p.Usage(src))
	}
	return joinUsage(" ", usages...)
}

// Tuple2 is the result of Seq2
type Tuple2[A, B any] struct {
	First  A
	Second B
}

// Tuple3 is the result of Seq3
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

type seq2[A, B any] struct {
	a Parameter[A]
	b Parameter[B]
}

// Seq2 parses a then b
func Seq2[A, B any](a Parameter[A], b Parameter[B]) Parameter[Tuple2[A, B]] {
	return &seq2[A, B]{a: a, b: b}
}

func (s *seq2[A, B]) Name() string { return s.a.Name() }

func (s *seq2[A, B]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, Tuple2[A, B], error) {
	var out Tuple2[A, B]
	rest, a, err := s.a.Parse(src, ctx, args)
	if err != nil {
		return args, out, err
	}
	rest, b, err := s.b.Parse(src, ctx, rest)
	if err != nil {
		return args, out, err
	}
	return rest, Tuple2[A, B]{First: a, Second: b}, nil
}

func (s *seq2[A, B]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return chainSuggestions(src, ctx, args, s.a.Suggestions, s.b.Suggestions)
}

func (s *seq2[A, B]) Usage(src Source) string {
	return joinUsage(" ", s.a.Usage(src), s.b.Usage(src))
}

type seq3[A, B, C any] struct {
	a Parameter[A]
	b Parameter[B]
	c Parameter[C]
}

// Seq3 parses a, b and c in order
func Seq3[A, B, C any](a Parameter[A], b Parameter[B], c Parameter[C]) Parameter[Tuple3[A, B, C]] {
	return &seq3[A, B, C]{a: a, b: b, c: c}
}

func (s *seq3[A, B, C]) Name() string { return s.a.Name() }

func (s *seq3[A, B, C]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, Tuple3[A, B, C], error) {
	var out Tuple3[A, B, C]
	rest, a, err := s.a.Parse(src, ctx, args)
	if err != nil {
		return args, out, err
	}
	rest, b, err := s.b.Parse(src, ctx, rest)
	if err != nil {
		return args, out, err
	}
	rest, c, err := s.c.Parse(src, ctx, rest)
	if err != nil {
		return args, out, err
	}
	return rest, Tuple3[A, B, C]{First: a, Second: b, Third: c}, nil
}

func (s *seq3[A, B, C]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return chainSuggestions(src, ctx, args, s.a.Suggestions, s.b.Suggestions, s.c.Suggestions)
}

func (s *seq3[A, B, C]) Usage(src Source) string {
	return joinUsage(" ", s.a.Usage(src), s.b.Usage(src), s.c.Usage(src))
}

type suggestFunc func(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string)

func chainSuggestions(src Source, ctx RunContext, args []rawarg.RawArg, steps ...suggestFunc) ([]rawarg.RawArg, []string) {
	var out []string
	xs := args
	for _, step := range steps {
		if len(xs) == 0 {
			break
		}
		rest, s := step(src, ctx, xs)
		out = appendUnique(out, s...)
		xs = rest
	}
	return xs, out
}
