package param

import (
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

type testSource string

func (s testSource) Name() string { return string(s) }

var console = testSource("console")

func toks(line string) []rawarg.RawArg {
	return rawarg.Tokenize(line)
}

func completing(line string) []rawarg.RawArg {
	return rawarg.TokenizeForCompletion(line)
}

func grantAll() RunContext {
	return RunContext{Permissions: func(Source, string) bool { return true }}
}
