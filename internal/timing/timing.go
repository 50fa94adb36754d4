// Package timing measures the phases of a completion request.
package timing

import (
	"fmt"
	"strings"
	"time"

	"github.com/NikitaCOEUR/mycli/internal/logger"
)

type phase struct {
	label string
	took  time.Duration
}

// Timer records phase durations. Each mark closes the phase started by the
// previous mark, or by the timer creation.
type Timer struct {
	start  time.Time
	last   time.Time
	phases []phase
	now    func() time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	start := now()
	return &Timer{start: start, last: start, now: now}
}

// Mark closes the current phase under label and returns its duration
func (t *Timer) Mark(label string) time.Duration {
	at := t.now()
	took := at.Sub(t.last)
	t.last = at
	t.phases = append(t.phases, phase{label: label, took: took})
	return took
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Get returns the duration of the first phase marked label
func (t *Timer) Get(label string) (time.Duration, bool) {
	for _, p := range t.phases {
		if p.label == label {
			return p.took, true
		}
	}
	return 0, false
}

// Summary returns a formatted summary of all timings
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("Total: " + millis(t.Elapsed()))

	if len(t.phases) > 0 {
		b.WriteString(" (")
		for i, p := range t.phases {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.label + ": " + millis(p.took))
		}
		b.WriteString(")")
	}

	return b.String()
}

// Log writes the phases and the total at debug level
func (t *Timer) Log(log *logger.Logger, msg string) {
	if !log.DebugEnabled() {
		return
	}
	entry := log.Debug()
	for _, p := range t.phases {
		entry = entry.Dur(p.label, p.took)
	}
	entry.Dur("total", t.Elapsed()).Msg(msg)
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
