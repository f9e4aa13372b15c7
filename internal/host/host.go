// Package host provides the collaborators the parameter engine needs from a
// host: senders, permissions, entity lookups and the commands themselves, all
// declared in the config file.
package host

import (
	"reflect"
	"sort"

	"github.com/NikitaCOEUR/paramkit/internal/config"
	"github.com/NikitaCOEUR/paramkit/internal/shape"
	"github.com/NikitaCOEUR/paramkit/pkg/command"
	"github.com/NikitaCOEUR/paramkit/pkg/param"
)

// Outcome is the result of a command run by the host
type Outcome struct {
	// Affected counts the fields that received a value
	Affected int
	Reply    string
}

// Entry is a registered command
type Entry struct {
	Name        string
	Description string
	Command     command.Executor[Outcome]
}

// Host holds the senders and commands declared in a config
type Host struct {
	Senders     *Directory
	commands    map[string]Entry
	showChoices bool
}

var _ shape.Resolver = (*Directory)(nil)

// New builds every command of cfg
func New(cfg *config.Config) (*Host, error) {
	h := &Host{
		Senders:     NewDirectory(cfg.Senders),
		commands:    make(map[string]Entry, len(cfg.Commands)),
		showChoices: cfg.ShowChoices,
	}

	for _, name := range cfg.SortedCommandNames() {
		cc := cfg.Commands[name]
		cmd, err := h.build(name, cc)
		if err != nil {
			return nil, err
		}
		h.commands[name] = Entry{Name: name, Description: cc.Description, Command: cmd}
	}
	return h, nil
}

func (h *Host) build(name string, cc config.CommandConfig) (command.Executor[Outcome], error) {
	p, err := shape.Build(name, cc.Params, h.Senders)
	if err != nil {
		return nil, err
	}
	reply, err := ParseReply(name, cc.Reply)
	if err != nil {
		return nil, err
	}

	run := func(sender *Sender, _ param.RunContext, rec param.Record) (command.Success[Outcome], error) {
		text, err := reply.Render(sender, rec)
		if err != nil {
			return command.Success[Outcome]{}, err
		}
		return command.Success[Outcome]{Result: Outcome{Affected: countSet(rec), Reply: text}}, nil
	}
	return command.New(validatorFor(cc), p, run), nil
}

// Register adds or replaces a command built in code
func (h *Host) Register(e Entry) {
	h.commands[e.Name] = e
}

// Command looks up a command by name
func (h *Host) Command(name string) (Entry, bool) {
	e, ok := h.commands[name]
	return e, ok
}

// CommandNames returns the registered command names in order
func (h *Host) CommandNames() []string {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunContext returns the context every invocation runs with
func (h *Host) RunContext() param.RunContext {
	return param.RunContext{
		Permissions: h.Senders.HasPermission,
		ShowChoices: h.showChoices,
	}
}

// countSet counts the fields holding a value
func countSet(rec param.Record) int {
	n := 0
	for _, f := range rec.Fields {
		if f.Value == nil {
			continue
		}
		v := reflect.ValueOf(f.Value)
		switch v.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
			if v.IsNil() {
				continue
			}
		}
		n++
	}
	return n
}
