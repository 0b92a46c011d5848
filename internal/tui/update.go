package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/homeroom/internal/dashboard"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clockTickMsg:
		m.clockTime, m.clockDate = dashboard.Clock(m.deps.Now())
		return m, clockTick()

	case refreshTickMsg:
		m.render()
		return m, refreshTick()

	case pomodoroMsg:
		return m.onPomodoroTick(msg)

	case dataLoadedMsg:
		m.data, m.loadErr, m.loaded = msg.data, msg.err, true
		m.status = ""
		if msg.err != nil {
			m.status = "データの読み込みに失敗しました"
		}
		m.render()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAlert:
			return m.updateAlert(msg)
		case modeAdding:
			return m.updateAdding(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// onPomodoroTick drops ticks from a run that was paused or finished, so at
// most one tick loop is ever live.
func (m Model) onPomodoroTick(msg pomodoroMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.timer.Gen() || !m.timer.Running() {
		return m, nil
	}
	if m.timer.Tick() {
		m.deps.Log.Infof("pomodoro finished (%d so far)", m.timer.Completed())
		m.input.Blur()
		m.mode = modeAlert
		return m, nil
	}
	return m, pomodoroTickCmd(msg.gen)
}

func (m Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Toggle):
		m.mode = modeNormal
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		added, err := m.deps.Todos.Add(m.input.Value())
		if err != nil {
			m.fail("add", err)
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeNormal
		m.reloadTodos()
		if added {
			m.cursor = len(m.todos) - 1
			m.status = "追加しました"
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeNormal
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// status messages last until the next key
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdding
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Toggle):
		if len(m.todos) == 0 {
			return m, nil
		}
		if err := m.deps.Todos.Toggle(m.cursor); err != nil {
			m.fail("toggle", err)
		}
		m.reloadTodos()

	case key.Matches(msg, m.keys.Remove):
		if len(m.todos) == 0 {
			return m, nil
		}
		if err := m.deps.Todos.Remove(m.cursor); err != nil {
			m.fail("remove", err)
		}
		m.reloadTodos()

	case key.Matches(msg, m.keys.Timer):
		if m.timer.Toggle() {
			return m, pomodoroTickCmd(m.timer.Gen())
		}

	case key.Matches(msg, m.keys.TimerReset):
		m.timer.Reset()

	case key.Matches(msg, m.keys.Class):
		m.nextClass()

	case key.Matches(msg, m.keys.Reload):
		m.status = "再読み込み中..."
		return m, m.loadData()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// nextClass switches to the class after the current one, in name order.
func (m *Model) nextClass() {
	classes := m.data.Classes()
	if len(classes) == 0 {
		return
	}
	next := classes[0]
	for i, c := range classes {
		if c == m.class {
			next = classes[(i+1)%len(classes)]
			break
		}
	}
	if next == m.class {
		return
	}
	m.class = next
	if m.deps.SaveClass != nil {
		if err := m.deps.SaveClass(next); err != nil {
			m.fail("save class", err)
		}
	}
	m.render()
}
