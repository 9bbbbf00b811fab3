// Package picker is the interactive device menu shown before launching
// the terminal
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/allbin/msp-uart/internal/tui/keys"
	"github.com/allbin/msp-uart/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/evertras/bubble-table/table"
)

// ErrCancelled is returned by Run when the user quits without choosing
var ErrCancelled = errors.New("selection cancelled")

const (
	columnKeyIndex  = "index"
	columnKeyDevice = "device"
	columnKeyBaud   = "baud"

	maxPageSize = 15
)

// Device is one row of the picker
type Device struct {
	Path string
	Baud int
}

// Model is the bubbletea model of the device picker
type Model struct {
	title    string
	devices  []Device
	table    table.Model
	keys     keys.PickerKeys
	help     help.Model
	selected int
	done     bool
}

// New returns a picker over devices with the first row highlighted
func New(title string, devices []Device) Model {
	columns := []table.Column{
		table.NewColumn(columnKeyIndex, "#", 4),
		table.NewFlexColumn(columnKeyDevice, "Device", 1),
		table.NewColumn(columnKeyBaud, "Baud", 8).WithStyle(styles.BaudStyle),
	}

	rows := make([]table.Row, len(devices))
	for i, d := range devices {
		rows[i] = table.NewRow(table.RowData{
			columnKeyIndex:  i,
			columnKeyDevice: d.Path,
			columnKeyBaud:   d.Baud,
		})
	}

	t := table.New(columns).
		WithRows(rows).
		WithBaseStyle(styles.TableBaseStyle).
		HighlightStyle(styles.TableHighlightStyle).
		WithPageSize(min(len(devices), maxPageSize)).
		WithTargetWidth(80).
		Focused(true)

	return Model{
		title:    title,
		devices:  devices,
		table:    t,
		keys:     keys.NewPickerKeys(),
		help:     help.New(),
		selected: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table = m.table.WithTargetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Select):
			if idx, ok := m.table.HighlightedRow().Data[columnKeyIndex].(int); ok {
				m.selected = idx
			}
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Jump):
			idx := int(msg.String()[0] - '0')
			if idx < len(m.devices) {
				m.selected = idx
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Found %d MSP430 UART Terminal(s)", len(m.devices))))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Selected returns the chosen index, or false when nothing was chosen
func (m Model) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

// Run shows the picker and returns the chosen index
func Run(title string, devices []Device, opts ...tea.ProgramOption) (int, error) {
	final, err := tea.NewProgram(New(title, devices), opts...).Run()
	if err != nil {
		return -1, err
	}

	m, ok := final.(Model)
	if !ok {
		return -1, fmt.Errorf("unexpected model %T", final)
	}
	idx, ok := m.Selected()
	if !ok {
		return -1, ErrCancelled
	}
	return idx, nil
}
