// Package console runs, completes and describes command lines against a host.
package console

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/NikitaCOEUR/paramkit/internal/host"
	"github.com/NikitaCOEUR/paramkit/internal/logger"
	"github.com/NikitaCOEUR/paramkit/internal/timing"
	"github.com/NikitaCOEUR/paramkit/internal/trace"
	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
	"github.com/NikitaCOEUR/paramkit/pkg/param"
	"github.com/NikitaCOEUR/paramkit/pkg/rawarg"
)

// Messages of the console failures
const (
	MsgNoCommand      = "No command given"
	MsgUnknownCommand = "Unknown command %s"
)

// Console dispatches command lines to the commands of a host
type Console struct {
	host *host.Host
	log  *logger.Logger
}

// New creates a console. A nil logger discards everything.
func New(h *host.Host, log *logger.Logger) *Console {
	if log == nil {
		log = logger.Discard()
	}
	return &Console{host: h, log: log}
}

// lookup resolves the command named by the first token
func (c *Console) lookup(args []rawarg.RawArg) (host.Entry, error) {
	if len(args) == 0 {
		return host.Entry{}, cmderr.NewUsageError(MsgNoCommand, cmderr.NoPosition)
	}

	head := args[0]
	if e, ok := c.host.Command(head.Content); ok {
		return e, nil
	}

	msg := fmt.Sprintf(MsgUnknownCommand, head.Content)
	if hint := param.Closest(head.Content, c.host.CommandNames()); hint != "" {
		msg += fmt.Sprintf(". Did you mean %s?", hint)
	}
	return host.Entry{}, cmderr.NewUsageError(msg, head.Start)
}

// Run executes a command line as sender. Failure positions are byte offsets
// into line.
func (c *Console) Run(sender *host.Sender, line string) (host.Outcome, error) {
	defer trace.Region(context.Background(), "run")()
	timer := timing.NewTimer()
	args := rawarg.Tokenize(line)
	timer.Mark("tokenize")

	e, err := c.lookup(args)
	if err != nil {
		c.log.Debug().Str("sender", sender.Name()).Err(err).Msg("Command not found")
		return host.Outcome{}, err
	}

	trace.Log(context.Background(), "command", e.Name)
	res, err := e.Command.Execute(sender, c.host.RunContext(), args[1:])
	timer.Mark("execute")

	entry := c.log.Debug().
		Str("command", e.Name).
		Str("sender", sender.Name()).
		Strs("args", rawarg.Contents(args[1:]))
	for _, p := range timer.Phases() {
		entry = entry.Dur(p.Label, p.Duration)
	}
	if err != nil {
		entry.Err(err).Msg("Command failed")
		return host.Outcome{}, err
	}
	entry.Int("affected", res.Result.Affected).Msg("Command executed")
	return res.Result, nil
}

// Complete returns the candidates for the last token of line. The first
// token completes to command names.
func (c *Console) Complete(sender *host.Sender, line string) []string {
	defer trace.Region(context.Background(), "complete")()
	timer := timing.NewTimer()
	args := rawarg.TokenizeForCompletion(line)

	var candidates []string
	switch {
	case len(args) == 1:
		prefix := strings.ToLower(args[0].Content)
		for _, name := range c.host.CommandNames() {
			if strings.HasPrefix(strings.ToLower(name), prefix) {
				candidates = append(candidates, name)
			}
		}
	default:
		e, ok := c.host.Command(args[0].Content)
		if !ok {
			return nil
		}
		candidates = e.Command.Suggestions(sender, c.host.RunContext(), args[1:])
	}

	out := dedupe(candidates)
	c.log.Debug().
		Str("sender", sender.Name()).
		Int("candidates", len(out)).
		Dur("elapsed", timer.Mark("suggest")).
		Msg("Completed line")
	return out
}

// Usage renders the usage of the named command as sender sees it
func (c *Console) Usage(sender *host.Sender, name string) (string, error) {
	e, err := c.lookup(rawarg.Tokenize(name))
	if err != nil {
		return "", err
	}
	return joinNonEmpty(e.Name, e.Command.Usage(sender)), nil
}

// Help renders the usage of every command
func (c *Console) Help(sender *host.Sender) string {
	var b strings.Builder
	for i, name := range c.host.CommandNames() {
		e, _ := c.host.Command(name)
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderUsage(name, e.Command.Usage(sender), e.Description))
	}
	return b.String()
}

func joinNonEmpty(a, b string) string {
	if b == "" {
		return a
	}
	return a + " " + b
}

// dedupe sorts candidates and drops duplicates
func dedupe(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, s := range candidates {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
