package timing

import (
	"bytes"
	"testing"
	"time"

	"github.com/NikitaCOEUR/mycli/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by the queued steps, one per call
type fakeClock struct {
	at    time.Time
	steps []time.Duration
}

func (c *fakeClock) now() time.Time {
	if len(c.steps) > 0 {
		c.at = c.at.Add(c.steps[0])
		c.steps = c.steps[1:]
	}
	return c.at
}

func TestTimer_Phases(t *testing.T) {
	clock := &fakeClock{
		at:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		steps: []time.Duration{0, 2 * time.Millisecond, 5 * time.Millisecond, 0},
	}
	timer := newTimer(clock.now)

	assert.Equal(t, 2*time.Millisecond, timer.Mark("load"))
	assert.Equal(t, 5*time.Millisecond, timer.Mark("resolve"))

	d, ok := timer.Get("load")
	require.True(t, ok)
	assert.Equal(t, 2*time.Millisecond, d)

	_, ok = timer.Get("build")
	assert.False(t, ok)

	assert.Equal(t, 7*time.Millisecond, timer.Elapsed())
}

func TestTimer_Summary(t *testing.T) {
	clock := &fakeClock{
		at:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		steps: []time.Duration{0, 1500 * time.Microsecond, 500 * time.Microsecond, 0},
	}
	timer := newTimer(clock.now)
	timer.Mark("load")
	timer.Mark("build")

	assert.Equal(t, "Total: 2.000ms (load: 1.500ms, build: 0.500ms)", timer.Summary())
}

func TestTimer_SummaryWithoutMarks(t *testing.T) {
	timer := newTimer(func() time.Time { return time.Unix(0, 0) })
	assert.Equal(t, "Total: 0.000ms", timer.Summary())
}

func TestTimer_Real(t *testing.T) {
	timer := NewTimer()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Mark("sleep"), 5*time.Millisecond)
}

func TestTimer_Log(t *testing.T) {
	var buf bytes.Buffer
	timer := NewTimer()
	timer.Mark("load")

	timer.Log(logger.New("debug", &buf), "Completion timings")
	assert.Contains(t, buf.String(), "Completion timings")
	assert.Contains(t, buf.String(), "load=")
	assert.Contains(t, buf.String(), "total=")

	buf.Reset()
	timer.Log(logger.New("warn", &buf), "Completion timings")
	assert.Empty(t, buf.String())
}
