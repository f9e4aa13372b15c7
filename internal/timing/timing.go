// Package timing measures the phases of a command invocation.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Phase is the time spent between two marks
type Phase struct {
	Label    string
	Duration time.Duration
}

// Timer splits an invocation into consecutive phases
type Timer struct {
	now    func() time.Time
	start  time.Time
	last   time.Time
	phases []Phase
}

// NewTimer creates a timer started now
func NewTimer() *Timer {
	return NewTimerWithClock(time.Now)
}

// NewTimerWithClock creates a timer reading time from now
func NewTimerWithClock(now func() time.Time) *Timer {
	start := now()
	return &Timer{now: now, start: start, last: start}
}

// Mark closes the current phase under label and returns its duration
func (t *Timer) Mark(label string) time.Duration {
	at := t.now()
	d := at.Sub(t.last)
	t.last = at
	t.phases = append(t.phases, Phase{Label: label, Duration: d})
	return d
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Get returns the duration of the first phase named label
func (t *Timer) Get(label string) (time.Duration, bool) {
	for _, p := range t.phases {
		if p.Label == label {
			return p.Duration, true
		}
	}
	return 0, false
}

// Phases returns the recorded phases in order
func (t *Timer) Phases() []Phase {
	out := make([]Phase, len(t.phases))
	copy(out, t.phases)
	return out
}

// Summary renders the total and every phase in milliseconds
func (t *Timer) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total: %.3fms", millis(t.Elapsed()))
	if len(t.phases) == 0 {
		return sb.String()
	}

	sb.WriteString(" (")
	for i, p := range t.phases {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %.3fms", p.Label, millis(p.Duration))
	}
	sb.WriteString(")")
	return sb.String()
}

// Reset restarts the timer and forgets every phase
func (t *Timer) Reset() {
	t.start = t.now()
	t.last = t.start
	t.phases = nil
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
