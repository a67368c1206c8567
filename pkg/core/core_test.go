package core

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClock(steps ...time.Duration) *Clock {
	t := time.Unix(0, 0)
	c := NewClock()
	c.now = func() time.Time {
		if len(steps) > 0 {
			t = t.Add(steps[0])
			steps = steps[1:]
		}
		return t
	}
	return c
}

func TestClockDelta(t *testing.T) {
	c := fakeClock(0, 16*time.Millisecond, 20*time.Millisecond, 2*time.Second)
	assert.Zero(t, c.Delta(), "not started")

	c.Start()
	assert.InDelta(t, 0.016, c.Delta(), 1e-12)
	assert.InDelta(t, 0.020, c.Delta(), 1e-12)
	assert.InDelta(t, DefaultMaxDelta, c.Delta(), 1e-12, "stall is capped")
	assert.InDelta(t, 0.136, c.Elapsed(), 1e-12)

	c.Stop()
	assert.Zero(t, c.Delta())
}

func TestLogLevelAndOutput(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	require.NoError(t, SetLogLevel("warn"))

	LogInfo("hidden %d", 1)
	LogWarn("shown %d", 2)
	LogError("also shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown 2"), out)

	assert.Error(t, SetLogLevel("loud"))
	require.NoError(t, SetLogLevel("info"))
}
