// Package rawarg models the raw tokens of a command line.
//
// A command line is split once per invocation into an ordered slice of RawArg
// values. Parameters consume that slice from the front and never modify it in
// place.
package rawarg

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// RawArg is a single token of the input together with its byte offsets.
// End is exclusive.
type RawArg struct {
	Start   int
	End     int
	Content string
}

// New creates a RawArg spanning content starting at start
func New(start int, content string) RawArg {
	return RawArg{Start: start, End: start + len(content), Content: content}
}

// Contents returns the content of every arg, in order
func Contents(args []RawArg) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, a.Content)
	}
	return out
}

// Pos returns the start of the first arg, or -1 if there is none
func Pos(args []RawArg) int {
	if len(args) == 0 {
		return -1
	}
	return args[0].Start
}

// Tokenize splits line on Unicode whitespace. A token that opens with a
// double or single quote runs to the matching quote, whitespace included; the
// quotes are not part of the content but are part of the span. Inside quotes a
// backslash escapes the quote character and itself. Quotes elsewhere in a
// token are ordinary characters. An unterminated quote runs to the end of the
// line.
func Tokenize(line string) []RawArg {
	var args []RawArg

	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}

		start := i
		var b strings.Builder
		var quote rune
		if r == '"' || r == '\'' {
			quote = r
			i += size
		}
		for i < len(line) {
			r, size = utf8.DecodeRuneInString(line[i:])
			if quote == 0 {
				if unicode.IsSpace(r) {
					break
				}
				b.WriteString(line[i : i+size])
				i += size
				continue
			}

			switch {
			case r == quote:
				quote = 0
			case r == '\\' && i+1 < len(line) && (rune(line[i+1]) == quote || line[i+1] == '\\'):
				i++
				b.WriteByte(line[i])
			default:
				b.WriteString(line[i : i+size])
			}
			i += size
		}
		args = append(args, RawArg{Start: start, End: i, Content: b.String()})
	}

	return args
}

// TokenizeForCompletion tokenizes line like Tokenize, but when the line is
// empty or ends in whitespace an empty trailing arg is appended so the next
// parameter has something to complete.
func TokenizeForCompletion(line string) []RawArg {
	args := Tokenize(line)
	if last, _ := utf8.DecodeLastRuneInString(line); line == "" || unicode.IsSpace(last) {
		args = append(args, RawArg{Start: len(line), End: len(line), Content: ""})
	}
	return args
}

// Without returns a copy of args with the element at index i removed
func Without(args []RawArg, i int) []RawArg {
	out := make([]RawArg, 0, len(args)-1)
	out = append(out, args[:i]...)
	return append(out, args[i+1:]...)
}

// Splice returns a copy of args[:i] followed by rest
func Splice(args []RawArg, i int, rest []RawArg) []RawArg {
	out := make([]RawArg, 0, i+len(rest))
	out = append(out, args[:i]...)
	return append(out, rest...)
}
