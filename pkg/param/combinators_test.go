package param

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

var colors = map[string]string{"red": "#f00", "green": "#0f0", "blue": "#00f"}

func players() Parameter[[]string] {
	return Entities("player", func(Source, RunContext) []Entity[string] {
		return []Entity[string]{
			{Name: "alice", Value: "alice"},
			{Name: "alina", Value: "alina"},
			{Name: "bob", Value: "bob"},
		}
	})
}

func TestOptional(t *testing.T) {
	p := Optional(Int("n"))

	args := toks("abc def")
	rest, v, err := p.Parse(console, RunContext{}, args)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, args, rest)

	rest, v, err = p.Parse(console, RunContext{}, toks("5 x"))
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 5, *v)
	assert.Equal(t, []string{"x"}, rawarg.Contents(rest))

	_, v, err = p.Parse(console, RunContext{}, nil)
	assert.NoError(t, err)
	assert.Nil(t, v)

	assert.Equal(t, "[<n>]", p.Usage(console))
}

func TestRepeated(t *testing.T) {
	p := Repeated(Int("n"))

	tests := []struct {
		name     string
		line     string
		values   []int
		leftover []string
	}{
		{name: "stops at first failure", line: "1 2 3 x 4", values: []int{1, 2, 3}, leftover: []string{"x", "4"}},
		{name: "consumes everything", line: "1 2", values: []int{1, 2}, leftover: []string{}},
		{name: "empty input", line: "", values: nil, leftover: []string{}},
		{name: "fails immediately", line: "x", values: nil, leftover: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, v, err := p.Parse(console, RunContext{}, toks(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.values, v)
			assert.Equal(t, tt.leftover, rawarg.Contents(rest))
		})
	}

	assert.Equal(t, "<n>...", p.Usage(console))
}

func TestRepeated_NonConsumingInnerTerminates(t *testing.T) {
	rest, v, err := Repeated(Optional(Int("n"))).Parse(console, RunContext{}, toks("1 x"))
	require.NoError(t, err)
	assert.Len(t, v, 1)
	assert.Equal(t, []string{"x"}, rawarg.Contents(rest))
}

func TestRepeated_Suggestions(t *testing.T) {
	p := Repeated(Choices("color", colors))

	rest, suggestions := p.Suggestions(console, RunContext{}, completing("red gr"))
	assert.Equal(t, []string{"green"}, suggestions)
	assert.Empty(t, rest)

	rest, suggestions = p.Suggestions(console, RunContext{}, toks("red x blue"))
	assert.Empty(t, suggestions)
	assert.Equal(t, []string{"x", "blue"}, rawarg.Contents(rest))

	rest, suggestions = p.Suggestions(console, RunContext{}, completing("red zz"))
	assert.Empty(t, suggestions)
	assert.Equal(t, []string{"zz"}, rawarg.Contents(rest))
}

func TestOnlyOne(t *testing.T) {
	p := OnlyOne(players())

	rest, v, err := p.Parse(console, RunContext{}, toks("bob more"))
	require.NoError(t, err)
	assert.Equal(t, "bob", v)
	assert.Equal(t, []string{"more"}, rawarg.Contents(rest))

	_, v, err = p.Parse(console, RunContext{}, toks("ALICE"))
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	args := toks("give ali")[1:]
	_, _, err = p.Parse(console, RunContext{}, args)
	var usage *cmderr.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, MsgMultiple, usage.Error())
	assert.Equal(t, 5, usage.Position())

	_, _, err = p.Parse(console, RunContext{}, toks("zed"))
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, MsgNoValues, usage.Error())
	assert.Equal(t, 0, usage.Position())
}

func TestOnlyOne_PropagatesInnerFailure(t *testing.T) {
	_, _, err := OnlyOne(players()).Parse(console, RunContext{}, nil)
	var syntax *cmderr.SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, "Not enough arguments", syntax.Error())
}

func TestNamed(t *testing.T) {
	p := Named("amount", Int("n"))
	assert.Equal(t, "amount", p.Name())
	assert.Equal(t, "<amount>", p.Usage(console))

	_, v, err := p.Parse(console, RunContext{}, toks("3"))
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	assert.Equal(t, "[<amount>]", Named("amount", Optional(Int("n"))).Usage(console))
	assert.Equal(t, "[-s]", Named("silent", BoolFlag("s")).Usage(console))
}

func TestNeedPermission(t *testing.T) {
	p := NeedPermission("game.color", Choices("color", colors))

	args := toks("red")
	rest, _, err := p.Parse(console, RunContext{}, args)
	var usage *cmderr.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, MsgNoPermissions, usage.Error())
	assert.Equal(t, 0, usage.Position())
	assert.Equal(t, args, rest)

	_, v, err := p.Parse(console, grantAll(), args)
	require.NoError(t, err)
	assert.Equal(t, "#f00", v)

	rest, suggestions := p.Suggestions(console, RunContext{}, completing("re"))
	assert.Empty(t, suggestions)
	assert.Empty(t, rest)

	_, suggestions = p.Suggestions(console, grantAll(), completing("re"))
	assert.Equal(t, []string{"red"}, suggestions)
}

func TestNeedPermission_ChecksSpecificPermission(t *testing.T) {
	var asked []string
	ctx := RunContext{Permissions: func(src Source, perm string) bool {
		asked = append(asked, src.Name()+":"+perm)
		return perm == "game.color"
	}}

	_, _, err := NeedPermission("game.color", Choices("color", colors)).Parse(console, ctx, toks("blue"))
	require.NoError(t, err)
	_, _, err = NeedPermission("game.other", Choices("color", colors)).Parse(console, ctx, toks("blue"))
	require.Error(t, err)

	assert.Equal(t, []string{"console:game.color", "console:game.other"}, asked)
}

func TestOr(t *testing.T) {
	p := Or(Untyped(Int("n")), Untyped(String("s")))

	_, v, err := p.Parse(console, RunContext{}, toks("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	_, v, err = p.Parse(console, RunContext{}, toks("12"))
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	assert.Equal(t, "<n>|<s>", p.Usage(console))
}

func TestOr_BacktracksToOriginalInput(t *testing.T) {
	first := Map(Seq2(Int("a"), Int("b")), func(tup Tuple2[int, int]) (string, error) {
		return fmt.Sprint(tup.First + tup.Second), nil
	})
	p := Or(first, String("s"))

	rest, v, err := p.Parse(console, RunContext{}, toks("1 x"))
	require.NoError(t, err)
	assert.Equal(t, "1", v)
	assert.Equal(t, []string{"x"}, rawarg.Contents(rest))
}

func TestOr_MergesFailures(t *testing.T) {
	p := Or(Int("a"), Int("b"))

	args := toks("x")
	rest, _, err := p.Parse(console, RunContext{}, args)
	var multiple *cmderr.Multiple
	require.ErrorAs(t, err, &multiple)
	assert.Len(t, multiple.Failures, 2)
	assert.Equal(t, args, rest)

	nested := Or(Or(Int("a"), Int("b")), Int("c"))
	_, _, err = nested.Parse(console, RunContext{}, args)
	require.ErrorAs(t, err, &multiple)
	assert.Len(t, multiple.Failures, 3)
}

func TestOr_Suggestions(t *testing.T) {
	p := Or(Choices("color", colors), Choices("shade", map[string]string{"grey": "#888"}))

	_, suggestions := p.Suggestions(console, RunContext{}, completing("g"))
	assert.Equal(t, []string{"green", "grey"}, suggestions)
}

func TestOrSource(t *testing.T) {
	self := func(src Source, _ RunContext) (string, error) {
		return src.Name(), nil
	}
	p := OrSource(OnlyOne(players()), self)

	_, v, err := p.Parse(console, RunContext{}, toks("bob"))
	require.NoError(t, err)
	assert.Equal(t, "bob", v)

	rest, v, err := p.Parse(console, RunContext{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "console", v)
	assert.Empty(t, rest)

	failing := OrSource(Int("n"), func(Source, RunContext) (int, error) {
		return 0, errors.New("no default")
	})
	_, _, err = failing.Parse(console, RunContext{}, toks("x"))
	var syntax *cmderr.SyntaxError
	assert.ErrorAs(t, err, &syntax)

	assert.Equal(t, "[<player>]", p.Usage(console))
}

func TestMap(t *testing.T) {
	positive := Map(Int("n"), func(v int) (uint, error) {
		if v <= 0 {
			return 0, errors.New("must be positive")
		}
		return uint(v), nil
	})

	_, v, err := positive.Parse(console, RunContext{}, toks("4"))
	require.NoError(t, err)
	assert.Equal(t, uint(4), v)

	_, _, err = positive.Parse(console, RunContext{}, toks("  -4"))
	var usage *cmderr.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, "must be positive", usage.Error())
	assert.Equal(t, 2, usage.Position())
}
