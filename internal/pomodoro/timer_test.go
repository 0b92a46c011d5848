package pomodoro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_Initial(t *testing.T) {
	tm := New(0)
	assert.Equal(t, Idle, tm.State())
	assert.Equal(t, 1500, tm.Left())
	assert.Equal(t, "25:00", tm.Display())
	assert.Equal(t, "▶ 開始", tm.Label())
}

func TestTimer_FullRunReturnsToIdle(t *testing.T) {
	tm := New(DefaultLength)
	require.True(t, tm.Toggle())
	assert.Equal(t, "⏸ 一時停止", tm.Label())

	for i := 0; i < 1500; i++ {
		require.False(t, tm.Tick(), "tick %d", i)
	}
	assert.Equal(t, 0, tm.Left())
	assert.Equal(t, "00:00", tm.Display())
	assert.Equal(t, Running, tm.State())

	// the tick after reaching zero ends the interval
	assert.True(t, tm.Tick())
	assert.Equal(t, Idle, tm.State())
	assert.Equal(t, 1500, tm.Left())
	assert.Equal(t, 1, tm.Completed())
	assert.Equal(t, "▶ 開始", tm.Label())
}

func TestTimer_PauseResumePreservesTime(t *testing.T) {
	tm := New(DefaultLength)
	tm.Toggle()
	for i := 0; i < 42; i++ {
		tm.Tick()
	}
	assert.False(t, tm.Toggle())
	assert.Equal(t, Paused, tm.State())
	assert.Equal(t, "▶ 再開", tm.Label())
	assert.Equal(t, 1500-42, tm.Left())

	// ticks while paused do nothing
	assert.False(t, tm.Tick())
	assert.Equal(t, 1500-42, tm.Left())

	assert.True(t, tm.Toggle())
	tm.Tick()
	assert.Equal(t, 1500-43, tm.Left())
}

func TestTimer_DoubleStartIsGuarded(t *testing.T) {
	tm := New(60)
	require.True(t, tm.Start())
	gen := tm.Gen()
	assert.False(t, tm.Start())
	assert.Equal(t, gen, tm.Gen())
	assert.Equal(t, Running, tm.State())
}

func TestTimer_GenerationChangesWhenStopping(t *testing.T) {
	tm := New(2)
	tm.Start()
	g0 := tm.Gen()
	tm.Pause()
	assert.NotEqual(t, g0, tm.Gen())

	g1 := tm.Gen()
	tm.Start()
	assert.Equal(t, g1, tm.Gen())
	tm.Tick()
	tm.Tick()
	assert.True(t, tm.Tick())
	assert.NotEqual(t, g1, tm.Gen())
}

func TestTimer_Reset(t *testing.T) {
	tm := New(90)
	tm.Start()
	tm.Tick()
	tm.Reset()
	assert.Equal(t, Idle, tm.State())
	assert.Equal(t, "01:30", tm.Display())
	assert.InDelta(t, 0.0, tm.Progress(), 1e-9)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "paused", Paused.String())
	assert.Equal(t, "running", Running.String())
}
