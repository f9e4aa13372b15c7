package param

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

func TestInt(t *testing.T) {
	p := Int("amount")

	rest, v, err := p.Parse(console, RunContext{}, toks("42 rest"))
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, []string{"rest"}, rawarg.Contents(rest))

	_, _, err = p.Parse(console, RunContext{}, toks("   abc"))
	var syntax *cmderr.SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, 3, syntax.Position())
	assert.Contains(t, syntax.Error(), "invalid syntax")

	_, _, err = p.Parse(console, RunContext{}, nil)
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, cmderr.NoPosition, syntax.Position())
	assert.Equal(t, "Not enough arguments", syntax.Error())

	assert.Equal(t, "amount", p.Name())
	assert.Equal(t, "<amount>", p.Usage(console))
}

func TestNumericParsers(t *testing.T) {
	_, i64, err := Int64("n").Parse(console, RunContext{}, toks("9000000000"))
	require.NoError(t, err)
	assert.Equal(t, int64(9000000000), i64)

	_, u, err := Uint("n").Parse(console, RunContext{}, toks("7"))
	require.NoError(t, err)
	assert.Equal(t, uint(7), u)

	_, _, err = Uint("n").Parse(console, RunContext{}, toks("-1"))
	assert.Error(t, err)

	_, f, err := Float("n").Parse(console, RunContext{}, toks("2.5"))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, f, 1e-9)

	_, b, err := BigInt("n").Parse(console, RunContext{}, toks("123456789012345678901234567890"))
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", b.String())

	_, _, err = BigInt("n").Parse(console, RunContext{}, toks("12x"))
	assert.Error(t, err)

	_, d, err := Decimal("n").Parse(console, RunContext{}, toks("1.50"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.5").Equal(d))
}

func TestBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{input: "true", expected: true},
		{input: "YES", expected: true},
		{input: "on", expected: true},
		{input: "1", expected: true},
		{input: "f", expected: false},
		{input: "no", expected: false},
		{input: "off", expected: false},
		{input: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, v, err := Bool("flag").Parse(console, RunContext{}, toks(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestUUID(t *testing.T) {
	id := "123e4567-e89b-12d3-a456-426614174000"
	_, v, err := UUID("id").Parse(console, RunContext{}, toks(id))
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse(id), v)

	_, _, err = UUID("id").Parse(console, RunContext{}, toks("nope"))
	var syntax *cmderr.SyntaxError
	assert.ErrorAs(t, err, &syntax)
}

func TestURL(t *testing.T) {
	_, v, err := URL("link").Parse(console, RunContext{}, toks("https://example.com/a?b=c"))
	require.NoError(t, err)
	assert.Equal(t, "example.com", v.Host)

	_, _, err = URL("link").Parse(console, RunContext{}, toks("example.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no protocol")
}

func TestString(t *testing.T) {
	rest, v, err := String("word").Parse(console, RunContext{}, toks(`"two words" next`))
	require.NoError(t, err)
	assert.Equal(t, "two words", v)
	assert.Len(t, rest, 1)
}

func TestRemainingString(t *testing.T) {
	p := RemainingString("message")

	rest, v, err := p.Parse(console, RunContext{}, toks("hello   big world"))
	require.NoError(t, err)
	assert.Equal(t, "hello big world", v)
	assert.Empty(t, rest)

	_, _, err = p.Parse(console, RunContext{}, nil)
	assert.Error(t, err)

	assert.Equal(t, "<message>...", p.Usage(console))
}

func TestSingle_Suggestions(t *testing.T) {
	rest, suggestions := Int("n").Suggestions(console, RunContext{}, toks("1 2"))
	assert.Empty(t, suggestions)
	assert.Equal(t, []string{"2"}, rawarg.Contents(rest))

	rest, suggestions = Int("n").Suggestions(console, RunContext{}, nil)
	assert.Empty(t, suggestions)
	assert.Empty(t, rest)
}
