// Package tui is the Bubble Tea front end over the selection core. It owns
// no selection logic: every navigation key becomes a call into
// selection.State, and highlighting is derived solely from CellIsSelected.
package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tabsel/internal/config"
	"github.com/jask/tabsel/internal/output"
	"github.com/jask/tabsel/internal/selection"
	"github.com/jask/tabsel/internal/table"
)

const maxColumnWidth = 32

// Model is the Bubble Tea model for one picker session.
type Model struct {
	table *table.Model
	sel   *selection.State
	theme Theme
	keys  keyMap

	filterOn    bool
	filterInput textinput.Model

	outputFormat output.Format

	topIndex int
	width    int
	height   int

	confirmed  bool
	aborted    bool
	result     selection.Result
	rendered   string
	confirmErr error
}

// New builds the session model around an already-parsed table and
// already-initialized selection state.
func New(t *table.Model, sel *selection.State, cfg config.Config, outFormat output.Format) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to filter"
	if cfg.UI.Filter {
		ti.Focus()
	}

	return Model{
		table:        t,
		sel:          sel,
		theme:        NewTheme(cfg.UI.Theme),
		keys:         newKeyMap(),
		filterOn:     cfg.UI.Filter,
		filterInput:  ti,
		outputFormat: outFormat,
	}
}

// Confirmed reports whether the session ended with a confirmation.
func (m Model) Confirmed() bool { return m.confirmed }

// Aborted reports whether the user cancelled the session.
func (m Model) Aborted() bool { return m.aborted }

// Result returns the resolved selection and its rendered output. Only
// meaningful when Confirmed is true.
func (m Model) Result() (selection.Result, string) { return m.result, m.rendered }

// ConfirmError returns the failure from a confirm attempt on an empty
// visible set, if any.
func (m Model) ConfirmError() error { return m.confirmErr }

func (m Model) Init() tea.Cmd {
	if m.filterOn {
		return textinput.Blink
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInWindow()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	mode := m.sel.ActiveMode()
	rowMode := mode == selection.ModeRow || mode == selection.ModeCell
	colMode := mode == selection.ModeColumn || mode == selection.ModeCell

	switch {
	case matches(msg, keys.Abort):
		m.aborted = true
		return m, tea.Quit

	case matches(msg, keys.Confirm):
		res, err := m.sel.Confirm()
		if err != nil {
			m.confirmErr = err
			return m, tea.Quit
		}
		m.confirmed = true
		m.result = res
		m.rendered = renderResult(m.table, m.outputFormat, res)
		return m, tea.Quit

	case matches(msg, keys.CycleMode):
		m.sel.CycleMode()
		return m, nil

	case matches(msg, keys.Up), !m.filterOn && matches(msg, keys.UpAlias):
		if rowMode {
			m.sel.MoveRow(-1)
			m.ensureCursorInWindow()
		}
		return m, nil

	case matches(msg, keys.Down), !m.filterOn && matches(msg, keys.DownAlias):
		if rowMode {
			m.sel.MoveRow(1)
			m.ensureCursorInWindow()
		}
		return m, nil

	case matches(msg, keys.Left), !m.filterOn && matches(msg, keys.LeftAlias):
		if colMode {
			m.sel.MoveCol(-1)
		}
		return m, nil

	case matches(msg, keys.Right), !m.filterOn && matches(msg, keys.RightAlias):
		if colMode {
			m.sel.MoveCol(1)
		}
		return m, nil

	case !m.filterOn && matches(msg, keys.QuitAlias):
		m.aborted = true
		return m, tea.Quit
	}

	if !m.filterOn {
		return m, nil
	}

	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if after := m.filterInput.Value(); after != before {
		m.sel.SetFilter(after)
		m.topIndex = 0
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	if m.filterOn {
		b.WriteString(m.theme.FilterLabel.Render("Filter: "))
		b.WriteString(m.filterInput.View())
		b.WriteByte('\n')
	}

	widths := m.columnWidths()

	if m.table.Headers != nil {
		var cells []string
		for pos := 0; pos < m.sel.VisibleColumnCount(); pos++ {
			name := m.table.HeaderAt(m.sel.ActualColumnIndex(pos))
			cells = append(cells, m.theme.Header.Render(padCell(name, widths[pos])))
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}

	visible := m.visibleRows()
	total := m.sel.VisibleRowCount()
	end := m.topIndex + visible
	if end > total {
		end = total
	}
	for pos := m.topIndex; pos < end; pos++ {
		actual := m.sel.ActualRowIndex(pos)
		var cells []string
		for colPos := 0; colPos < m.sel.VisibleColumnCount(); colPos++ {
			text := padCell(m.table.Cell(actual, m.sel.ActualColumnIndex(colPos)), widths[colPos])
			style := m.theme.Cell
			if m.sel.CellIsSelected(pos, colPos) {
				style = m.theme.Selected
			}
			cells = append(cells, style.Render(text))
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}
	if total == 0 {
		b.WriteString(m.theme.Status.Render("(no matching rows)"))
		b.WriteByte('\n')
	}

	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) statusLine() string {
	parts := []string{
		"mode: " + string(m.sel.ActiveMode()),
		"enter select",
		"shift+tab mode",
		"esc cancel",
	}
	return m.theme.Status.Render(strings.Join(parts, " · "))
}

// columnWidths sizes each visible column to its widest header/cell, capped
// so one long cell cannot push the rest off screen.
func (m Model) columnWidths() []int {
	n := m.sel.VisibleColumnCount()
	widths := make([]int, n)
	for pos := 0; pos < n; pos++ {
		col := m.sel.ActualColumnIndex(pos)
		w := lipgloss.Width(m.table.HeaderAt(col))
		for _, row := range m.table.Rows {
			if col < len(row) {
				if cw := lipgloss.Width(row[col]); cw > w {
					w = cw
				}
			}
		}
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		widths[pos] = w
	}
	return widths
}

func (m Model) visibleRows() int {
	if m.height == 0 {
		return 10
	}
	chrome := 1 // status line
	if m.filterOn {
		chrome++
	}
	if m.table.Headers != nil {
		chrome++
	}
	available := m.height - chrome - 1
	if available < 3 {
		available = 3
	}
	return available
}

func (m *Model) ensureCursorInWindow() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	cursor := m.sel.SelectedRow()
	if cursor < m.topIndex {
		m.topIndex = cursor
	} else if cursor >= m.topIndex+visible {
		m.topIndex = cursor - visible + 1
	}
	maxTop := m.sel.VisibleRowCount() - visible
	if maxTop < 0 {
		maxTop = 0
	}
	if m.topIndex > maxTop {
		m.topIndex = maxTop
	}
	if m.topIndex < 0 {
		m.topIndex = 0
	}
}

func renderResult(t *table.Model, format output.Format, res selection.Result) string {
	switch res.Mode {
	case selection.ModeColumn:
		return output.FormatColumn(t, format, res.Col)
	case selection.ModeCell:
		return output.FormatCell(t, format, res.Row, res.Col)
	default:
		return output.FormatRow(t, format, res.Row)
	}
}

func padCell(s string, width int) string {
	// Cells may legally contain embedded newlines; flatten them for the grid.
	s = strings.ReplaceAll(s, "\n", "↵")
	s = truncate(s, width)
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:1])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Run drives the session to completion. The UI draws to stderr and reads
// keys from the terminal directly, because stdin carries the table data
// and stdout carries the result.
func Run(m Model) (Model, error) {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
		tea.WithInputTTY(),
	)
	final, err := p.Run()
	if err != nil {
		return m, err
	}
	return final.(Model), nil
}
