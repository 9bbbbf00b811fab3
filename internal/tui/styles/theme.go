package styles

import (
	"github.com/allbin/msp-uart/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay0).
			Padding(0, 1)

	// Table styles
	TableBaseStyle = lipgloss.NewStyle().
			Foreground(colors.Text).
			BorderForeground(colors.Surface1).
			Align(lipgloss.Left)

	TableHighlightStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colors.Green).
				Background(colors.Surface0)

	BaudStyle = lipgloss.NewStyle().
			Foreground(colors.Peach)

	// Excluded device styles (list --all)
	ExcludedStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay0).
			Strikethrough(true)

	ReasonStyle = lipgloss.NewStyle().
			Foreground(colors.Red)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Blue).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colors.Surface1)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red)
)
