package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/paramkit/internal/config"
	"github.com/NikitaCOEUR/paramkit/internal/derrors"
	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/param"
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

type sender string

func (s sender) Name() string { return string(s) }

const (
	console = sender("console")
	steve   = sender("steve")
)

type fakeResolver struct{}

func (fakeResolver) Players(param.Source) []param.Entity[string] {
	return []param.Entity[string]{
		{Name: "steve", Value: "steve"},
		{Name: "stella", Value: "stella"},
		{Name: "alex", Value: "alex"},
	}
}

func (fakeResolver) Worlds() []param.Entity[string] {
	return []param.Entity[string]{
		{Name: "overworld", Value: "overworld"},
		{Name: "nether", Value: "nether"},
	}
}

func (fakeResolver) Self(src param.Source) (string, bool) {
	if src == steve {
		return "steve", true
	}
	return "", false
}

func build(t *testing.T, params ...config.ParamConfig) param.Parameter[param.Record] {
	t.Helper()
	p, err := Build("cmd", params, fakeResolver{})
	require.NoError(t, err)
	return p
}

func parse(t *testing.T, p param.Parameter[param.Record], src param.Source, ctx param.RunContext, line string) (param.Record, error) {
	t.Helper()
	rest, rec, err := p.Parse(src, ctx, rawarg.Tokenize(line))
	if err == nil {
		assert.Empty(t, rest, "unconsumed tokens")
	}
	return rec, err
}

func TestBuild_ScalarTypes(t *testing.T) {
	p := build(t,
		config.ParamConfig{Name: "count", Type: "int"},
		config.ParamConfig{Name: "ratio", Type: "float"},
		config.ParamConfig{Name: "on", Type: "bool"},
		config.ParamConfig{Name: "label", Type: "string"},
	)

	rec, err := parse(t, p, console, param.RunContext{}, "3 0.5 yes hello")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": 3, "ratio": 0.5, "on": true, "label": "hello"}, rec.Map())
	assert.Equal(t, "<count> <ratio> <on> <label>", p.Usage(console))

	_, err = parse(t, p, console, param.RunContext{}, "3 half yes hello")
	var syntax *cmderr.SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, 2, syntax.Position())
}

func TestBuild_OptionalAndRepeated(t *testing.T) {
	p := build(t,
		config.ParamConfig{Name: "item", Type: "choice", Choices: []string{"sword", "bow"}},
		config.ParamConfig{Name: "amount", Type: "int", Optional: true},
		config.ParamConfig{Name: "tags", Type: "string", Repeated: true},
	)
	assert.Equal(t, "<item> [<amount>] <tags>...", p.Usage(console))

	rec, err := parse(t, p, console, param.RunContext{}, "bow 2 a b")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Map()["amount"])
	assert.Equal(t, []any{"a", "b"}, rec.Map()["tags"])

	rec, err = parse(t, p, console, param.RunContext{}, "sword")
	require.NoError(t, err)
	assert.Nil(t, rec.Map()["amount"])
	assert.Nil(t, rec.Map()["tags"])
}

func TestBuild_Players(t *testing.T) {
	p := build(t,
		config.ParamConfig{Name: "target", Type: "player", OrSelf: true},
		config.ParamConfig{Name: "where", Type: "world"},
	)
	assert.Equal(t, "[<target>] <where>", p.Usage(console))

	rec, err := parse(t, p, steve, param.RunContext{}, "alex nether")
	require.NoError(t, err)
	assert.Equal(t, "alex", rec.Map()["target"])
	assert.Equal(t, "nether", rec.Map()["where"])

	// Falls back to the sender without consuming the world
	rec, err = parse(t, p, steve, param.RunContext{}, "over")
	require.NoError(t, err)
	assert.Equal(t, "steve", rec.Map()["target"])
	assert.Equal(t, "overworld", rec.Map()["where"])

	// The console has no self to fall back on
	_, err = parse(t, p, console, param.RunContext{}, "ste")
	var usage *cmderr.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, param.MsgMultiple, usage.Error())
}

func TestBuild_PlayersList(t *testing.T) {
	p := build(t, config.ParamConfig{Name: "who", Type: "players"})

	rec, err := parse(t, p, console, param.RunContext{}, "ste")
	require.NoError(t, err)
	assert.Equal(t, []string{"steve", "stella"}, rec.Map()["who"])

	_, err = parse(t, p, console, param.RunContext{}, "nobody")
	var usage *cmderr.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, MsgNoPlayers, usage.Error())
	assert.Equal(t, 0, usage.Position())
}

func TestBuild_Flags(t *testing.T) {
	p := build(t,
		config.ParamConfig{Name: "target", Type: "player"},
		config.ParamConfig{Name: "s", Type: "bool", Flag: true},
		config.ParamConfig{Name: "count", Type: "int", Flag: true},
		config.ParamConfig{Name: "item", Type: "choice", Choices: []string{"sword", "bow"}},
	)
	assert.Equal(t, "[-s] [--count <count>] <target> <item>", p.Usage(console))

	rec, err := parse(t, p, console, param.RunContext{}, "alex --count 3 sword -s")
	require.NoError(t, err)
	assert.Equal(t, []string{"target", "s", "count", "item"}, rec.Names())
	assert.Equal(t, true, rec.Map()["s"])
	assert.Equal(t, 3, rec.Map()["count"])
	assert.Equal(t, "sword", rec.Map()["item"])

	rec, err = parse(t, p, console, param.RunContext{}, "alex bow")
	require.NoError(t, err)
	assert.Equal(t, false, rec.Map()["s"])
	assert.Nil(t, rec.Map()["count"])

	_, suggestions := p.Suggestions(console, param.RunContext{}, rawarg.TokenizeForCompletion("alex --c"))
	assert.Equal(t, []string{"--count"}, suggestions)

	_, suggestions = p.Suggestions(console, param.RunContext{}, rawarg.TokenizeForCompletion("alex -s "))
	assert.Equal(t, []string{"bow", "sword"}, suggestions)
}

func TestBuild_Permissions(t *testing.T) {
	p := build(t,
		config.ParamConfig{Name: "msg", Type: "string"},
		config.ParamConfig{Name: "loud", Type: "bool", Flag: true, Permission: "say.loud"},
		config.ParamConfig{Name: "color", Type: "choice", Choices: []string{"red"}, Optional: true, Permission: "say.color"},
	)

	grant := func(perms ...string) param.RunContext {
		return param.RunContext{Permissions: func(_ param.Source, perm string) bool {
			for _, p := range perms {
				if p == perm {
					return true
				}
			}
			return false
		}}
	}

	rec, err := parse(t, p, console, grant("say.loud", "say.color"), "hi --loud red")
	require.NoError(t, err)
	assert.Equal(t, true, rec.Map()["loud"])
	assert.Equal(t, "red", rec.Map()["color"])

	// Without permissions the flag is not recognised and the color is skipped
	rest, rec, err := p.Parse(console, grant(), rawarg.Tokenize("hi --loud red"))
	require.NoError(t, err)
	assert.Equal(t, false, rec.Map()["loud"])
	assert.Nil(t, rec.Map()["color"])
	assert.Equal(t, []string{"--loud", "red"}, rawarg.Contents(rest))
}

func TestBuild_RequiredPermission(t *testing.T) {
	p := build(t, config.ParamConfig{Name: "n", Type: "int", Permission: "admin"})

	_, err := parse(t, p, console, param.RunContext{}, "5")
	var usage *cmderr.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, param.MsgNoPermissions, usage.Error())
}

func TestBuild_AnyOf(t *testing.T) {
	p := build(t, config.ParamConfig{Name: "target", Type: "any_of", AnyOf: []config.ParamConfig{
		{Name: "everyone", Type: "literal", Value: "all"},
		{Name: "player", Type: "player"},
	}})
	assert.Equal(t, "(all|<player>)", p.Usage(console))

	rec, err := parse(t, p, console, param.RunContext{}, "ALL")
	require.NoError(t, err)
	assert.Equal(t, param.Variant{Tag: "everyone", Value: "all"}, rec.Map()["target"])

	rec, err = parse(t, p, console, param.RunContext{}, "alex")
	require.NoError(t, err)
	assert.Equal(t, param.Variant{Tag: "player", Value: "alex"}, rec.Map()["target"])

	_, err = parse(t, p, console, param.RunContext{}, "st")
	var multiple *cmderr.Multiple
	require.ErrorAs(t, err, &multiple)
	assert.Len(t, multiple.Failures, 2)
}

func TestBuild_MatchesHandBuiltRecord(t *testing.T) {
	derived := build(t,
		config.ParamConfig{Name: "amount", Type: "int"},
		config.ParamConfig{Name: "item", Type: "choice", Choices: []string{"sword", "bow"}},
	)
	manual := param.NewRecord("cmd").
		Field("amount", param.Untyped(param.Int("amount"))).
		Field("item", param.Untyped(param.Choices("item", map[string]string{"sword": "sword", "bow": "bow"}))).
		Build()

	for _, line := range []string{"3 bow", "x bow", "3 axe", "3", "3 bow extra"} {
		dRest, dRec, dErr := derived.Parse(console, param.RunContext{}, rawarg.Tokenize(line))
		mRest, mRec, mErr := manual.Parse(console, param.RunContext{}, rawarg.Tokenize(line))
		assert.Equal(t, mRec, dRec, line)
		assert.Equal(t, mErr, dErr, line)
		assert.Equal(t, mRest, dRest, line)
	}
	assert.Equal(t, manual.Usage(console), derived.Usage(console))
}

func TestBuild_DefinitionErrors(t *testing.T) {
	tests := []struct {
		name  string
		param config.ParamConfig
	}{
		{name: "unknown type", param: config.ParamConfig{Name: "v", Type: "vector"}},
		{name: "choice without choices", param: config.ParamConfig{Name: "c", Type: "choice"}},
		{name: "literal without value", param: config.ParamConfig{Name: "l", Type: "literal"}},
		{name: "empty any_of", param: config.ParamConfig{Name: "a", Type: "any_of"}},
		{name: "repeated flag", param: config.ParamConfig{Name: "f", Type: "int", Flag: true, Repeated: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build("cmd", []config.ParamConfig{tt.param}, fakeResolver{})
			var def *derrors.DefinitionError
			require.ErrorAs(t, err, &def)
			assert.Equal(t, "cmd", def.Command)
			assert.Equal(t, tt.param.Name, def.Field)
		})
	}
}
