// Package selection owns the picker's navigation state: cursor, mode,
// filter, and column visibility. Every operation is a pure transition over
// State given an immutable table; nothing here performs I/O.
package selection

import (
	"errors"
	"strings"

	"github.com/jask/tabsel/internal/table"
)

// Mode determines which coordinates govern highlighting and confirmation.
type Mode string

const (
	ModeRow    Mode = "row"
	ModeColumn Mode = "column"
	ModeCell   Mode = "cell"
)

var (
	// ErrNoVisibleRows is returned by Confirm when the filter leaves no
	// selectable rows.
	ErrNoVisibleRows = errors.New("no visible rows to select")
	// ErrNoVisibleColumns is returned by Confirm in column or cell mode
	// when every column is hidden.
	ErrNoVisibleColumns = errors.New("no visible columns to select")
)

// Result is a confirmed selection, resolved into actual table indices.
// Col is -1 in row mode when no columns are visible.
type Result struct {
	Mode Mode
	Row  int
	Col  int
}

// Options configures the initial State.
type Options struct {
	// Modes the user may cycle through. Empty means row-only.
	Modes []Mode
	// VisibleColumns maps visible positions to actual column indices.
	// Nil means every column is visible.
	VisibleColumns []int
}

// State is the session's mutable selection state over one table.
type State struct {
	table *table.Model

	selectedRow int
	selectedCol int

	activeMode     Mode
	availableModes []Mode

	filterText      string
	filteredIndices []int
	visibleColumns  []int
}

// NewState builds the session state: no filter, every row visible, cursor
// at the origin, first configured mode active.
func NewState(t *table.Model, opts Options) *State {
	modes := opts.Modes
	if len(modes) == 0 {
		modes = []Mode{ModeRow}
	}
	cols := opts.VisibleColumns
	if cols == nil {
		cols = make([]int, t.ColumnCount())
		for i := range cols {
			cols[i] = i
		}
	}

	s := &State{
		table:          t,
		activeMode:     modes[0],
		availableModes: modes,
		visibleColumns: cols,
	}
	s.rebuildFilteredIndices()
	return s
}

// ActiveMode returns the mode currently governing selection.
func (s *State) ActiveMode() Mode { return s.activeMode }

// FilterText returns the current filter query.
func (s *State) FilterText() string { return s.filterText }

// SelectedRow returns the cursor's filtered row position.
func (s *State) SelectedRow() int { return s.selectedRow }

// SelectedCol returns the cursor's visible column position.
func (s *State) SelectedCol() int { return s.selectedCol }

// VisibleRowCount returns how many rows pass the current filter.
func (s *State) VisibleRowCount() int { return len(s.filteredIndices) }

// VisibleColumnCount returns how many columns are visible.
func (s *State) VisibleColumnCount() int { return len(s.visibleColumns) }

// ActualRowIndex resolves a filtered position to its index in the table.
func (s *State) ActualRowIndex(filteredPos int) int {
	return s.filteredIndices[filteredPos]
}

// ActualColumnIndex resolves a visible position to its column index.
func (s *State) ActualColumnIndex(visiblePos int) int {
	return s.visibleColumns[visiblePos]
}

// CycleMode advances to the next available mode, wrapping. A single-mode
// session never changes mode.
func (s *State) CycleMode() {
	if len(s.availableModes) <= 1 {
		return
	}
	for i, m := range s.availableModes {
		if m == s.activeMode {
			s.activeMode = s.availableModes[(i+1)%len(s.availableModes)]
			return
		}
	}
	s.activeMode = s.availableModes[0]
}

// SetFilter replaces the filter query, recomputes the filtered set
// wholesale, and resets the row cursor to the top. A row matches when any
// of its cells, case-folded, contains the case-folded query.
func (s *State) SetFilter(text string) {
	s.filterText = text
	s.rebuildFilteredIndices()
	s.selectedRow = 0
}

// MoveRow moves the row cursor by delta, clamped to the filtered set.
func (s *State) MoveRow(delta int) {
	s.selectedRow = clamp(s.selectedRow+delta, len(s.filteredIndices))
}

// MoveCol moves the column cursor by delta, clamped to the visible set.
func (s *State) MoveCol(delta int) {
	s.selectedCol = clamp(s.selectedCol+delta, len(s.visibleColumns))
}

// SetVisibleColumns replaces the visible column mapping and re-clamps the
// column cursor.
func (s *State) SetVisibleColumns(cols []int) {
	s.visibleColumns = append([]int(nil), cols...)
	s.ClampColumn()
}

// ClampColumn forces the column cursor back into range after the visible
// column mapping changes.
func (s *State) ClampColumn() {
	s.selectedCol = clamp(s.selectedCol, len(s.visibleColumns))
}

// CellIsSelected reports whether the cell at (filteredRowPos, visibleColPos)
// is part of the current selection. Row mode looks only at the row
// position, column mode only at the column position, cell mode at both.
// Renderers must consult this and nothing else for highlighting.
func (s *State) CellIsSelected(filteredRowPos, visibleColPos int) bool {
	switch s.activeMode {
	case ModeColumn:
		return visibleColPos == s.selectedCol
	case ModeCell:
		return filteredRowPos == s.selectedRow && visibleColPos == s.selectedCol
	default:
		return filteredRowPos == s.selectedRow
	}
}

// Confirm resolves the cursor into actual table indices. It never mutates
// anything.
func (s *State) Confirm() (Result, error) {
	if len(s.filteredIndices) == 0 {
		return Result{}, ErrNoVisibleRows
	}
	res := Result{
		Mode: s.activeMode,
		Row:  s.filteredIndices[clamp(s.selectedRow, len(s.filteredIndices))],
		Col:  -1,
	}
	if len(s.visibleColumns) == 0 {
		if s.activeMode == ModeColumn || s.activeMode == ModeCell {
			return Result{}, ErrNoVisibleColumns
		}
		return res, nil
	}
	res.Col = s.visibleColumns[clamp(s.selectedCol, len(s.visibleColumns))]
	return res, nil
}

func (s *State) rebuildFilteredIndices() {
	if s.filterText == "" {
		s.filteredIndices = make([]int, len(s.table.Rows))
		for i := range s.filteredIndices {
			s.filteredIndices[i] = i
		}
		return
	}
	q := strings.ToLower(s.filterText)
	out := make([]int, 0, len(s.table.Rows))
	for i, row := range s.table.Rows {
		if rowMatches(row, q) {
			out = append(out, i)
		}
	}
	s.filteredIndices = out
}

func rowMatches(row []string, loweredQuery string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), loweredQuery) {
			return true
		}
	}
	return false
}

// clamp forces pos into [0, n). An empty range yields 0.
func clamp(pos, n int) int {
	if n <= 0 {
		return 0
	}
	if pos < 0 {
		return 0
	}
	if pos >= n {
		return n - 1
	}
	return pos
}
