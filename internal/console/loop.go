package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/NikitaCOEUR/paramkit/internal/host"
)

// Loop reads command lines from r and writes the results to w until r is
// exhausted, the user types exit, or ctx is done. Cancelling ctx returns
// immediately even while a read is pending; that read is abandoned.
//
// Besides commands it understands:
//
//	help          list the commands
//	?<line>       complete line
//	as <sender>   switch sender
//	exit, quit    leave
func (c *Console) Loop(ctx context.Context, sender *host.Sender, r io.Reader, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, errc := scanLines(ctx, r)

	for {
		fmt.Fprintf(w, "%s> ", sender.Name())

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return err
				}
				fmt.Fprintln(w)
				return nil
			}
			line = l
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case trimmed == "exit" || trimmed == "quit":
			return nil
		case trimmed == "help":
			fmt.Fprintln(w, c.Help(sender))
		case strings.HasPrefix(trimmed, "?"):
			partial := strings.TrimLeft(line, " \t")[1:]
			fmt.Fprintln(w, strings.Join(c.Complete(sender, partial), " "))
		case strings.HasPrefix(trimmed, "as "):
			next, err := c.host.Senders.Lookup(strings.TrimSpace(trimmed[3:]))
			if err != nil {
				fmt.Fprintln(w, RenderFailure(line, err))
				continue
			}
			sender = next
		default:
			out, err := c.Run(sender, line)
			if err != nil {
				fmt.Fprintln(w, RenderFailure(line, err))
				continue
			}
			fmt.Fprintln(w, RenderReply(out.Reply))
		}
	}
}

// scanLines reads r on its own goroutine. errc receives exactly one value,
// the scan error or ctx's error, before lines is closed.
func scanLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}
