package rawarg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []RawArg
	}{
		{
			name:     "empty line",
			line:     "",
			expected: nil,
		},
		{
			name: "simple words",
			line: "give alice 5",
			expected: []RawArg{
				{Start: 0, End: 4, Content: "give"},
				{Start: 5, End: 10, Content: "alice"},
				{Start: 11, End: 12, Content: "5"},
			},
		},
		{
			name: "repeated whitespace",
			line: "  a \t  bc ",
			expected: []RawArg{
				{Start: 2, End: 3, Content: "a"},
				{Start: 7, End: 9, Content: "bc"},
			},
		},
		{
			name: "double quoted token",
			line: `say "hello world" now`,
			expected: []RawArg{
				{Start: 0, End: 3, Content: "say"},
				{Start: 4, End: 17, Content: "hello world"},
				{Start: 18, End: 21, Content: "now"},
			},
		},
		{
			name: "quotes inside a word are literal",
			line: `msg bob don't go`,
			expected: []RawArg{
				{Start: 0, End: 3, Content: "msg"},
				{Start: 4, End: 7, Content: "bob"},
				{Start: 8, End: 13, Content: "don't"},
				{Start: 14, End: 16, Content: "go"},
			},
		},
		{
			name: "single quoted token",
			line: `say 'a b'`,
			expected: []RawArg{
				{Start: 0, End: 3, Content: "say"},
				{Start: 4, End: 9, Content: "a b"},
			},
		},
		{
			name: "escaped quote inside quotes",
			line: `say "a \"b\" \\ c"`,
			expected: []RawArg{
				{Start: 0, End: 3, Content: "say"},
				{Start: 4, End: 18, Content: `a "b" \ c`},
			},
		},
		{
			name: "empty quoted token",
			line: `wait ""`,
			expected: []RawArg{
				{Start: 0, End: 4, Content: "wait"},
				{Start: 5, End: 7, Content: ""},
			},
		},
		{
			name: "multibyte characters",
			line: "give voilà 3",
			expected: []RawArg{
				{Start: 0, End: 4, Content: "give"},
				{Start: 5, End: 11, Content: "voilà"},
				{Start: 12, End: 13, Content: "3"},
			},
		},
		{
			name: "multibyte leading character",
			line: "tp Åsa",
			expected: []RawArg{
				{Start: 0, End: 2, Content: "tp"},
				{Start: 3, End: 7, Content: "Åsa"},
			},
		},
		{
			name: "unicode whitespace separates",
			line: "a\u00a0b",
			expected: []RawArg{
				{Start: 0, End: 1, Content: "a"},
				{Start: 3, End: 4, Content: "b"},
			},
		},
		{
			name: "unterminated quote",
			line: `x "open end`,
			expected: []RawArg{
				{Start: 0, End: 1, Content: "x"},
				{Start: 2, End: 11, Content: "open end"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.line))
		})
	}
}

func TestTokenizeForCompletion(t *testing.T) {
	args := TokenizeForCompletion("give ")
	assert.Equal(t, []RawArg{
		{Start: 0, End: 4, Content: "give"},
		{Start: 5, End: 5, Content: ""},
	}, args)

	args = TokenizeForCompletion("give al")
	assert.Len(t, args, 2)
	assert.Equal(t, "al", args[1].Content)

	args = TokenizeForCompletion("")
	assert.Equal(t, []RawArg{{Start: 0, End: 0, Content: ""}}, args)

	args = TokenizeForCompletion("tp voilà")
	assert.Equal(t, []string{"tp", "voilà"}, Contents(args))

	args = TokenizeForCompletion("tp\u00a0")
	assert.Equal(t, []RawArg{
		{Start: 0, End: 2, Content: "tp"},
		{Start: 4, End: 4, Content: ""},
	}, args)
}

func TestPos(t *testing.T) {
	assert.Equal(t, -1, Pos(nil))
	assert.Equal(t, 7, Pos([]RawArg{New(7, "x")}))
}

func TestWithoutAndSplice(t *testing.T) {
	args := Tokenize("a b c d")

	without := Without(args, 1)
	assert.Equal(t, []string{"a", "c", "d"}, Contents(without))
	// Original slice is untouched
	assert.Equal(t, []string{"a", "b", "c", "d"}, Contents(args))

	spliced := Splice(args, 1, args[3:])
	assert.Equal(t, []string{"a", "d"}, Contents(spliced))
	assert.Equal(t, []string{"a", "b", "c", "d"}, Contents(args))
}

func TestNew(t *testing.T) {
	arg := New(3, "abc")
	assert.Equal(t, RawArg{Start: 3, End: 6, Content: "abc"}, arg)
}
