package host

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/NikitaCOEUR/paramkit/pkg/param"
)

// Reply renders the message shown after a command succeeds
type Reply struct {
	command string
	tmpl    *template.Template
}

// ParseReply compiles a reply template. Templates see the parsed fields by
// name, the sender as .sender and the sprig functions.
func ParseReply(command, text string) (*Reply, error) {
	if strings.TrimSpace(text) == "" {
		return &Reply{command: command}, nil
	}
	tmpl, err := template.New(command).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reply of %s: %w", command, err)
	}
	return &Reply{command: command, tmpl: tmpl}, nil
}

// Render produces the reply for a parsed record
func (r *Reply) Render(sender *Sender, rec param.Record) (string, error) {
	if r.tmpl == nil {
		return fmt.Sprintf("Executed %s", r.command), nil
	}

	data := map[string]any{"sender": sender.Name()}
	for _, f := range rec.Fields {
		data[f.Name] = f.Value
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render reply of %s: %w", r.command, err)
	}
	return sb.String(), nil
}
