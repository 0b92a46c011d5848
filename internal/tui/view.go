package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/homeroom/internal/pomodoro"
	"github.com/Makepad-fr/homeroom/internal/todo"
	"github.com/Makepad-fr/homeroom/internal/ui"
)

const columnWidth = 38

func (m Model) View() string {
	if m.mode == modeAlert {
		return m.alertView()
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.scheduleView(),
		m.todoView(),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.nextClassView(),
		m.testView(),
		m.timerView(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	lines := []string{m.headerView(), body}
	if m.status != "" {
		lines = append(lines, ui.Current().Muted.Render(m.status))
	}
	lines = append(lines, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) headerView() string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s  %s  %s",
		t.Title.Render("homeroom"),
		t.Accent.Render("["+m.class+"]"),
		t.Title.Render(m.clockTime),
		t.Muted.Render(m.clockDate),
	)
	if !m.loaded {
		header += "  " + t.Muted.Render("読み込み中...")
	}
	return header
}

func card(lines ...string) string {
	t := ui.Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Width(columnWidth).
		Render(strings.Join(lines, "\n"))
}

func (m Model) scheduleView() string {
	t := ui.Current()
	lines := []string{t.Accent.Render("時間割  " + m.scheduleDay)}
	if m.rows == nil {
		lines = append(lines, t.Muted.Render(m.placeholder))
		return card(lines...)
	}
	for _, r := range m.rows {
		line := fmt.Sprintf("%d  %-10s %s", r.Period, r.Subject, t.Muted.Render(r.Time))
		if r.Current {
			line = t.Current.Render(t.CurrentMark + " " + fmt.Sprintf("%d  %-10s %s", r.Period, r.Subject, r.Time))
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return card(lines...)
}

func (m Model) nextClassView() string {
	t := ui.Current()
	return card(
		t.Accent.Render("次の授業"),
		t.Title.Render(m.nextSubject),
		t.Muted.Render(m.nextTime),
	)
}

func (m Model) testView() string {
	t := ui.Current()
	return card(
		t.Accent.Render("テストまで"),
		t.Title.Render(m.testName),
		t.Pending.Render(m.testTimer),
	)
}

func (m Model) timerView() string {
	t := ui.Current()
	state := t.Muted.Render(m.timer.Label())
	if m.timer.State() == pomodoro.Running {
		state = t.Success.Render(m.timer.Label())
	}
	return card(
		t.Accent.Render("ポモドーロ"),
		t.Title.Render(m.timer.Display())+"  "+state,
		m.bar.ViewAs(m.timer.Progress()),
	)
}

func (m Model) todoView() string {
	t := ui.Current()
	done, pending := todo.Stats(m.todos)
	lines := []string{fmt.Sprintf("%s   %s %d  %s %d",
		t.Accent.Render("ToDo"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
	)}
	if len(m.todos) == 0 {
		lines = append(lines, t.Muted.Render("no items"))
	}
	for i, it := range m.todos {
		box := t.Muted.Render(t.BoxUnchecked)
		text := it.Text
		if it.Done {
			box = t.Success.Render(t.BoxChecked)
			text = t.Done.Render(text)
		}
		prefix := "  "
		if i == m.cursor && m.mode == modeNormal {
			prefix = t.Selected.Render("> ")
		}
		lines = append(lines, prefix+box+" "+text)
	}
	if m.mode == modeAdding {
		lines = append(lines, "", m.input.View())
	}
	return card(lines...)
}

func (m Model) alertView() string {
	t := ui.Current()
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.BorderColor).
		Padding(1, 4).
		Render(t.Title.Render(pomodoro.CompletionMessage) + "\n\n" + t.Muted.Render("enter: OK"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
