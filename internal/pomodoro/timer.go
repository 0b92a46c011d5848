package pomodoro

import (
	"fmt"
	"time"
)

// DefaultLength is one focus interval.
const DefaultLength = 25 * 60

type State int

const (
	Idle State = iota
	Paused
	Running
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Running:
		return "running"
	default:
		return "idle"
	}
}

// Timer is the countdown state. It has no clock of its own: the owner
// calls Tick once per second while State() is Running, and drops ticks
// whose generation no longer matches Gen().
type Timer struct {
	length   int
	left     int
	state    State
	gen      int
	finished int
}

func New(lengthSeconds int) *Timer {
	if lengthSeconds <= 0 {
		lengthSeconds = DefaultLength
	}
	return &Timer{length: lengthSeconds, left: lengthSeconds}
}

func (t *Timer) State() State   { return t.state }
func (t *Timer) Left() int      { return t.left }
func (t *Timer) Length() int    { return t.length }
func (t *Timer) Running() bool  { return t.state == Running }
func (t *Timer) Completed() int { return t.finished }

// Gen identifies the current run. It changes every time the timer stops,
// so ticks scheduled by an earlier run can be told apart.
func (t *Timer) Gen() int { return t.gen }

// Start moves to Running. It reports false when already running, so a
// second tick loop is never started.
func (t *Timer) Start() bool {
	if t.state == Running {
		return false
	}
	t.state = Running
	return true
}

// Pause keeps the remaining time and stops the current run.
func (t *Timer) Pause() {
	if t.state != Running {
		return
	}
	t.state = Paused
	t.gen++
}

// Toggle is the single start/pause button. It reports whether the timer
// is now running.
func (t *Timer) Toggle() bool {
	if t.state == Running {
		t.Pause()
		return false
	}
	return t.Start()
}

// Tick advances one second. It reports true when the interval finished on
// this tick; the timer is then back to Idle with a full interval.
func (t *Timer) Tick() (completed bool) {
	if t.state != Running {
		return false
	}
	if t.left > 0 {
		t.left--
		return false
	}
	t.left = t.length
	t.state = Idle
	t.gen++
	t.finished++
	return true
}

// Reset drops any progress and returns to Idle.
func (t *Timer) Reset() {
	if t.state == Running {
		t.gen++
	}
	t.left = t.length
	t.state = Idle
}

// Label is the toggle button caption for the current state.
func (t *Timer) Label() string {
	switch t.state {
	case Running:
		return "⏸ 一時停止"
	case Paused:
		return "▶ 再開"
	default:
		return "▶ 開始"
	}
}

// Display renders the remaining time as MM:SS.
func (t *Timer) Display() string {
	return fmt.Sprintf("%02d:%02d", t.left/60, t.left%60)
}

// Remaining is the time left as a duration.
func (t *Timer) Remaining() time.Duration {
	return time.Duration(t.left) * time.Second
}

// Progress is the elapsed share of the interval, 0..1.
func (t *Timer) Progress() float64 {
	return float64(t.length-t.left) / float64(t.length)
}

// CompletionMessage is shown when an interval finishes.
const CompletionMessage = "集中時間終了！休憩しましょう。"
