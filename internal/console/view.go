package console

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NikitaCOEUR/paramkit/pkg/cmderr"
)

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	caretStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// RenderFailure renders err for the input line it came from. A positioned
// failure is followed by the line with a caret under the offending token.
func RenderFailure(line string, err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	for i, msg := range strings.Split(err.Error(), "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(errorStyle.Render(msg))
	}

	var f cmderr.Failure
	if !errors.As(err, &f) {
		return b.String()
	}
	pos := f.Position()
	if pos < 0 || pos > len(line) {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(inputStyle.Render(line))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", lipgloss.Width(line[:pos])))
	b.WriteString(caretStyle.Render("^"))
	return b.String()
}

// RenderReply renders the reply of a successful command
func RenderReply(reply string) string {
	return replyStyle.Render(reply)
}

// RenderUsage renders the usage line of a command and its description
func RenderUsage(name, usage, description string) string {
	line := nameStyle.Render(name)
	if usage != "" {
		line += " " + usage
	}
	if description != "" {
		line += "  " + subtleStyle.Render(description)
	}
	return line
}
