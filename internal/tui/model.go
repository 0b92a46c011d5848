package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/labstack/gommon/log"

	"github.com/Makepad-fr/homeroom/internal/dashboard"
	"github.com/Makepad-fr/homeroom/internal/loader"
	"github.com/Makepad-fr/homeroom/internal/model"
	"github.com/Makepad-fr/homeroom/internal/pomodoro"
	"github.com/Makepad-fr/homeroom/internal/todo"
)

const (
	clockInterval   = time.Second
	refreshInterval = time.Minute
	pomodoroTick    = time.Second
)

type mode int

const (
	modeNormal mode = iota
	modeAdding
	modeAlert
)

// Deps is everything the dashboard talks to.
type Deps struct {
	Loader    *loader.Loader
	Todos     *todo.Store        // required
	SaveClass func(string) error // persists a class switch, may be nil
	Class     string
	Timer     *pomodoro.Timer
	Log       *log.Logger
	Now       func() time.Time
}

// Model is the whole application state. Nothing lives in package globals.
type Model struct {
	deps Deps

	data    model.GlobalData
	loaded  bool
	loadErr error
	class   string

	// regions
	clockTime, clockDate string
	scheduleDay          string
	rows                 []dashboard.Row
	placeholder          string
	nextSubject          string
	nextTime             string
	testName, testTimer  string

	todos  []model.TodoRecord
	cursor int

	timer *pomodoro.Timer

	mode   mode
	input  textinput.Model
	keys   keyMap
	help   help.Model
	bar    progress.Model
	status string

	width, height int
}

// Messages. Each recurring tick re-arms itself from Update.
type (
	clockTickMsg   time.Time
	refreshTickMsg time.Time
	pomodoroMsg    struct{ gen int }
	dataLoadedMsg  struct {
		data model.GlobalData
		err  error
	}
)

func New(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Timer == nil {
		deps.Timer = pomodoro.New(pomodoro.DefaultLength)
	}
	if deps.Class == "" {
		deps.Class = model.DefaultClass
	}
	if deps.Log == nil {
		deps.Log = log.New("homeroom")
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo..."
	ti.CharLimit = 200

	m := Model{
		deps:  deps,
		data:  model.Fallback(),
		class: deps.Class,
		timer: deps.Timer,
		input: ti,
		keys:  defaultKeys(),
		help:  help.New(),
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(24)),
	}
	m.clockTime, m.clockDate = dashboard.Clock(deps.Now())
	m.reloadTodos()
	m.render()
	return m
}

// Run starts the dashboard and blocks until the user quits.
func Run(deps Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadData(), clockTick(), refreshTick())
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshTickMsg(t) })
}

func pomodoroTickCmd(gen int) tea.Cmd {
	return tea.Tick(pomodoroTick, func(time.Time) tea.Msg { return pomodoroMsg{gen: gen} })
}

func (m Model) loadData() tea.Cmd {
	l := m.deps.Loader
	if l == nil {
		return nil
	}
	return func() tea.Msg {
		data, err := l.LoadOrFallback(context.Background())
		return dataLoadedMsg{data: data, err: err}
	}
}

// render recomputes every data-driven region for the current time.
func (m *Model) render() {
	now := m.deps.Now()
	var skipped []int
	m.scheduleDay, m.rows, m.placeholder, skipped = dashboard.Schedule(m.data, m.class, now)
	for _, i := range skipped {
		m.deps.Log.Debugf("period %d of %s has no usable time window", i+1, m.class)
	}
	m.nextSubject, m.nextTime = dashboard.NextClass(m.data, m.class, now)
	m.testName, m.testTimer = dashboard.TestCountdown(m.data.Tests, now)
}

func (m *Model) reloadTodos() {
	items, err := m.deps.Todos.List()
	if err != nil {
		m.fail("load todos", err)
		items = []model.TodoRecord{}
	}
	m.todos = items
	if m.cursor >= len(m.todos) {
		m.cursor = len(m.todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) fail(what string, err error) {
	m.status = what + ": " + err.Error()
	m.deps.Log.Errorf("%s: %v", what, err)
}
