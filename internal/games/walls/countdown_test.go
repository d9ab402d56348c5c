package walls

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/closing-walls/internal/sched"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestCountdownTicksOncePerSecond(t *testing.T) {
	clk := sched.NewManual(epoch)
	c := NewCountdown(clk, 5, nil)

	c.Start()
	clk.Advance(2500 * time.Millisecond)
	assert.Equal(t, 3, c.Left())
	assert.True(t, c.Running())
	assert.Equal(t, 1, clk.Pending())
}

func TestCountdownExpires(t *testing.T) {
	clk := sched.NewManual(epoch)
	expired := 0
	c := NewCountdown(clk, 3, func() { expired++ })

	c.Start()
	clk.Advance(10 * time.Second)
	assert.Equal(t, 0, c.Left())
	assert.Equal(t, 1, expired)
	assert.False(t, c.Running())
	assert.Equal(t, 0, clk.Pending())

	c.Start() // Expired countdowns stay stopped
	assert.Equal(t, 0, clk.Pending())
}

func TestCountdownStopCancelsTimer(t *testing.T) {
	clk := sched.NewManual(epoch)
	c := NewCountdown(clk, 10, nil)

	c.Start()
	clk.Advance(2 * time.Second)
	c.Stop()
	assert.Equal(t, 0, clk.Pending(), "stop must cancel, not just flag")

	clk.Advance(5 * time.Second)
	assert.Equal(t, 8, c.Left())
}

func TestCountdownKeepsPartialSecond(t *testing.T) {
	clk := sched.NewManual(epoch)
	c := NewCountdown(clk, 10, nil)

	c.Start()
	clk.Advance(600 * time.Millisecond)
	c.Stop()
	clk.Advance(30 * time.Second)
	c.Start()

	clk.Advance(399 * time.Millisecond)
	assert.Equal(t, 10, c.Left())
	clk.Advance(time.Millisecond)
	assert.Equal(t, 9, c.Left())
}

func TestCountdownRestartLeavesSingleTimer(t *testing.T) {
	clk := sched.NewManual(epoch)
	c := NewCountdown(clk, 60, nil)

	for range 5 {
		c.Start()
		c.Start()
		clk.Advance(100 * time.Millisecond)
		c.Stop()
	}
	c.Start()
	require.Equal(t, 1, clk.Pending())

	// 5 × 100ms already counted toward the first second
	clk.Advance(500 * time.Millisecond)
	assert.Equal(t, 59, c.Left())
}

func TestCountdownReset(t *testing.T) {
	clk := sched.NewManual(epoch)
	c := NewCountdown(clk, 5, nil)

	c.Start()
	clk.Advance(3500 * time.Millisecond)
	c.Reset()
	assert.Equal(t, 5, c.Left())
	assert.False(t, c.Running())
	assert.Equal(t, 0, clk.Pending())

	c.Start()
	clk.Advance(999 * time.Millisecond)
	assert.Equal(t, 5, c.Left(), "reset drops the partial second")
}
