package param

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

// maxHintDistance bounds the edit distance of a "did you mean" hint
const maxHintDistance = 2

type choices[A any] struct {
	name   string
	values map[string]A
	keys   []string
	show   bool
}

// Choices matches a token against a fixed set of literals. Exact matches win
// over case-insensitive ones.
func Choices[A any](name string, values map[string]A) Parameter[A] {
	return newChoices(name, values, false)
}

// ChoicesShown is like Choices but always lists the valid choices when a
// token is rejected
func ChoicesShown[A any](name string, values map[string]A) Parameter[A] {
	return newChoices(name, values, true)
}

// Enum builds a choice parameter from the names of a list of values
func Enum[A any](name string, values []A, nameOf func(A) string) Parameter[A] {
	m := make(map[string]A, len(values))
	for _, v := range values {
		m[nameOf(v)] = v
	}
	return newChoices(name, m, false)
}

func newChoices[A any](name string, values map[string]A, show bool) *choices[A] {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &choices[A]{name: name, values: values, keys: keys, show: show}
}

func (c *choices[A]) Name() string { return c.name }

func (c *choices[A]) Parse(_ Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, A, error) {
	var zero A
	if len(args) == 0 {
		return args, zero, cmderr.NotEnoughArgs()
	}

	head := args[0]
	if v, ok := c.values[head.Content]; ok {
		return args[1:], v, nil
	}
	for _, k := range c.keys {
		if strings.EqualFold(k, head.Content) {
			return args[1:], c.values[k], nil
		}
	}

	msg := fmt.Sprintf("%s is not a valid %s", head.Content, c.name)
	if hint := Closest(head.Content, c.keys); hint != "" {
		msg += fmt.Sprintf(". Did you mean %s?", hint)
	}
	if c.show || ctx.ShowChoices {
		msg += fmt.Sprintf(" Valid choices: %s", strings.Join(c.keys, ", "))
	}
	return args, zero, cmderr.NewUsageError(msg, head.Start)
}

func (c *choices[A]) Suggestions(_ Source, _ RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return suggestWords(args, c.keys)
}

func (c *choices[A]) Usage(_ Source) string { return DefaultUsage(c.name) }

// suggestWords completes the head token from words when it is the last token
func suggestWords(args []rawarg.RawArg, words []string) ([]rawarg.RawArg, []string) {
	switch len(args) {
	case 0:
		return args, nil
	case 1:
		return nil, prefixed(words, args[0].Content)
	default:
		return args[1:], nil
	}
}

// Closest returns the candidate that best matches a mistyped input, or ""
// when nothing is close enough. A hint must be within maxHintDistance edits
// and need fewer edits than the input has characters.
func Closest(input string, candidates []string) string {
	if input == "" || len(candidates) == 0 {
		return ""
	}
	closeEnough := func(d int) bool {
		return d <= maxHintDistance && d < utf8.RuneCountInString(input)
	}

	ranks := fuzzy.RankFindFold(input, candidates)
	sort.Sort(ranks)
	if len(ranks) > 0 && closeEnough(ranks[0].Distance) {
		return ranks[0].Target
	}

	best, bestDist := "", maxHintDistance+1
	lower := strings.ToLower(input)
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c))
		if d < bestDist && closeEnough(d) {
			best, bestDist = c, d
		}
	}
	return best
}

// Entity is a named value supplied by the host, such as an online player
type Entity[A any] struct {
	Name  string
	Value A
}

type entities[A any] struct {
	name   string
	lookup func(src Source, ctx RunContext) []Entity[A]
}

// Entities resolves a token against the entities returned by lookup. A name
// equal to the token (ignoring case) is the only result, otherwise every
// entity whose name starts with the token matches. No match is not a failure;
// combine with OnlyOne to require a single entity.
func Entities[A any](name string, lookup func(src Source, ctx RunContext) []Entity[A]) Parameter[[]A] {
	return &entities[A]{name: name, lookup: lookup}
}

func (e *entities[A]) Name() string { return e.name }

func (e *entities[A]) Parse(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []A, error) {
	if len(args) == 0 {
		return args, nil, cmderr.NotEnoughArgs()
	}

	head := args[0].Content
	all := e.lookup(src, ctx)
	for _, ent := range all {
		if strings.EqualFold(ent.Name, head) {
			return args[1:], []A{ent.Value}, nil
		}
	}

	lower := strings.ToLower(head)
	var out []A
	for _, ent := range all {
		if strings.HasPrefix(strings.ToLower(ent.Name), lower) {
			out = append(out, ent.Value)
		}
	}
	return args[1:], out, nil
}

func (e *entities[A]) Suggestions(src Source, ctx RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	if len(args) != 1 {
		return suggestWords(args, nil)
	}
	all := e.lookup(src, ctx)
	names := make([]string, 0, len(all))
	for _, ent := range all {
		names = append(names, ent.Name)
	}
	return suggestWords(args, names)
}

func (e *entities[A]) Usage(_ Source) string { return DefaultUsage(e.name) }

type literal struct {
	word string
}

// Literal requires the exact keyword word, ignoring case
func Literal(word string) Parameter[string] {
	return &literal{word: word}
}

func (l *literal) Name() string { return l.word }

func (l *literal) Parse(_ Source, _ RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, string, error) {
	if len(args) == 0 {
		return args, "", cmderr.NotEnoughArgs()
	}
	if !strings.EqualFold(args[0].Content, l.word) {
		return args, "", cmderr.NewUsageError(fmt.Sprintf("Expected %s, got %s", l.word, args[0].Content), args[0].Start)
	}
	return args[1:], l.word, nil
}

func (l *literal) Suggestions(_ Source, _ RunContext, args []rawarg.RawArg) ([]rawarg.RawArg, []string) {
	return suggestWords(args, []string{l.word})
}

func (l *literal) Usage(_ Source) string { return l.word }
