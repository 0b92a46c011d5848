package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Current, Done, Selected, Help                 lipgloss.Style

	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	CurrentMark              string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	base := lipgloss.NewStyle()
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title:   base.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:   base.Faint(true),
			Accent:  base.Foreground(lipgloss.Color("14")),
			Success: base.Foreground(lipgloss.Color("10")),
			Error:   base.Foreground(lipgloss.Color("9")).Bold(true),
			Pending: base.Foreground(lipgloss.Color("11")),
			Current: base.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")),

			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("13"),
			BoxUnchecked: "◻",
			BoxChecked:   "◼",
			SymDone:      "✔",
			SymPending:   "•",
			CurrentMark:  "▶",
		}
	case "mono":
		current = Theme{
			Title: base.Bold(true), Muted: base, Accent: base,
			Success: base, Error: base.Bold(true), Pending: base,
			Current: base.Reverse(true),

			Border:       lipgloss.NormalBorder(),
			BorderColor:  lipgloss.NoColor{},
			BoxUnchecked: "[ ]",
			BoxChecked:   "[x]",
			SymDone:      "x",
			SymPending:   "-",
			CurrentMark:  ">",
		}
	default: // classic
		current = Theme{
			Title:   base.Bold(true),
			Muted:   base.Faint(true),
			Accent:  base.Foreground(lipgloss.Color("12")),
			Success: base.Foreground(lipgloss.Color("42")),
			Error:   base.Foreground(lipgloss.Color("9")).Bold(true),
			Pending: base.Foreground(lipgloss.Color("214")),
			Current: base.Bold(true).Foreground(lipgloss.Color("42")),

			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("8"),
			BoxUnchecked: "☐",
			BoxChecked:   "☑",
			SymDone:      "✔",
			SymPending:   "•",
			CurrentMark:  "▶",
		}
	}
	current.Done = current.Muted.Strikethrough(true)
	current.Selected = base.Bold(true).Reverse(true)
	current.Help = base.Faint(true)
}

// Expose what renderers need
func Current() Theme { return current }
