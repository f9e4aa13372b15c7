package host

import (
	"sort"
	"strings"

	"github.com/NikitaCOEUR/paramkit/internal/config"
	"github.com/NikitaCOEUR/paramkit/internal/derrors"
	"github.com/NikitaCOEUR/paramkit/pkg/param"
)

// Wildcard grants every permission
const Wildcard = "*"

// Sender is someone commands can be run as
type Sender struct {
	name        string
	player      bool
	world       string
	permissions []string
}

// Name implements param.Source
func (s *Sender) Name() string { return s.name }

// IsPlayer reports whether the sender is a player
func (s *Sender) IsPlayer() bool { return s.player }

// World returns the world of a player, or ""
func (s *Sender) World() string { return s.world }

// Has reports whether the sender holds perm. A granted permission ending in
// ".*" covers everything below it.
func (s *Sender) Has(perm string) bool {
	for _, granted := range s.permissions {
		switch {
		case granted == Wildcard, granted == perm:
			return true
		case strings.HasSuffix(granted, ".*") && strings.HasPrefix(perm, strings.TrimSuffix(granted, "*")):
			return true
		}
	}
	return false
}

// Directory holds the senders of the host. It is read only once built.
type Directory struct {
	console *Sender
	senders map[string]*Sender
}

// NewDirectory builds the senders declared in cfg next to the console
func NewDirectory(senders map[string]config.SenderConfig) *Directory {
	d := &Directory{
		console: &Sender{name: config.ConsoleSender, permissions: []string{Wildcard}},
		senders: make(map[string]*Sender, len(senders)),
	}
	for name, sc := range senders {
		if name == config.ConsoleSender {
			continue
		}
		d.senders[name] = &Sender{
			name:        name,
			player:      sc.Player,
			world:       sc.World,
			permissions: append([]string(nil), sc.Permissions...),
		}
	}
	return d
}

// Console returns the console sender
func (d *Directory) Console() *Sender { return d.console }

// Lookup finds a sender by name. An empty name is the console.
func (d *Directory) Lookup(name string) (*Sender, error) {
	if name == "" || name == config.ConsoleSender {
		return d.console, nil
	}
	if s, ok := d.senders[name]; ok {
		return s, nil
	}
	return nil, derrors.NewNotFoundError("sender", "unknown sender: "+name)
}

// Names returns every sender name, console first
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.senders))
	for name := range d.senders {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{config.ConsoleSender}, names...)
}

// HasPermission is the permission predicate handed to parameters
func (d *Directory) HasPermission(src param.Source, perm string) bool {
	s, ok := src.(*Sender)
	if !ok {
		return false
	}
	return s.Has(perm)
}

// Players lists the player senders by name
func (d *Directory) Players(param.Source) []param.Entity[string] {
	var out []param.Entity[string]
	for _, name := range d.Names() {
		if s, ok := d.senders[name]; ok && s.player {
			out = append(out, param.Entity[string]{Name: s.name, Value: s.name})
		}
	}
	return out
}

// Worlds lists the worlds players are in
func (d *Directory) Worlds() []param.Entity[string] {
	seen := make(map[string]bool)
	var worlds []string
	for _, s := range d.senders {
		if s.world != "" && !seen[s.world] {
			seen[s.world] = true
			worlds = append(worlds, s.world)
		}
	}
	sort.Strings(worlds)

	out := make([]param.Entity[string], 0, len(worlds))
	for _, w := range worlds {
		out = append(out, param.Entity[string]{Name: w, Value: w})
	}
	return out
}

// Self returns the name of src when it is a player
func (d *Directory) Self(src param.Source) (string, bool) {
	s, ok := src.(*Sender)
	if !ok || !s.player {
		return "", false
	}
	return s.name, true
}
