package ui

import (
	"fmt"
	"strings"

	"sift/internal/grid"
	"sift/internal/tablestate"
	"sift/internal/util"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 32
	widthSample    = 200
)

type tableColumn struct {
	name   string
	width  int
	hidden bool
}

// TableModel represents the table view screen.
type TableModel struct {
	grid     *grid.Grid
	resetter *tablestate.Resetter

	cursor int
	offset int

	viewportHeight int

	columns      []tableColumn
	activeColumn int
}

// NewTableModel creates a table view over g.
func NewTableModel(g *grid.Grid, logger zerolog.Logger) *TableModel {
	m := &TableModel{
		grid:     g,
		resetter: tablestate.NewResetter(g, logger),
	}
	for i, c := range g.Columns() {
		m.columns = append(m.columns, tableColumn{name: c.Name, width: m.measure(i)})
	}
	return m
}

// measure picks a column width from the header and a sample of values.
func (m *TableModel) measure(col int) int {
	w := lipgloss.Width(m.grid.Columns()[col].Name) + 2
	for id := 0; id < m.grid.Len() && id < widthSample; id++ {
		if cw := lipgloss.Width(util.SingleLine(m.grid.Cell(id, col))); cw > w {
			w = cw
		}
	}
	return min(max(w, minColumnWidth), maxColumnWidth)
}

// Name returns the table name.
func (m *TableModel) Name() string { return m.grid.Name() }

// State returns the live table state.
func (m *TableModel) State() *tablestate.TableState { return m.grid.State() }

func (m *TableModel) ApplyPrefs(prefs TablePrefs) {
	hidden := make(map[string]bool, len(prefs.HiddenColumns))
	for _, c := range prefs.HiddenColumns {
		hidden[c] = true
	}
	for i := range m.columns {
		m.columns[i].hidden = hidden[m.columns[i].name]
	}
	if prefs.ActiveColumn != "" {
		for i, c := range m.columns {
			if c.name == prefs.ActiveColumn {
				m.activeColumn = i
				break
			}
		}
	}

	var keys []tablestate.SortKey
	for _, p := range prefs.Sort {
		idx, err := m.grid.ColumnIndex(p.Column)
		if err != nil {
			continue
		}
		dir := tablestate.Asc
		if p.Desc {
			dir = tablestate.Desc
		}
		keys = append(keys, tablestate.SortKey{Column: idx, Dir: dir})
	}
	if len(keys) > 0 {
		m.grid.State().ActiveSort = keys
		m.grid.RedrawFull()
	}

	m.ensureVisibleActiveColumn()
	m.clampCursor()
}

func (m *TableModel) Prefs() TablePrefs {
	var hidden []string
	for _, c := range m.columns {
		if c.hidden {
			hidden = append(hidden, c.name)
		}
	}
	var sortPrefs []SortPref
	for _, k := range m.grid.State().ActiveSort {
		sortPrefs = append(sortPrefs, SortPref{
			Column: m.columns[k.Column].name,
			Desc:   k.Dir == tablestate.Desc,
		})
	}
	prefs := TablePrefs{
		Sort:          sortPrefs,
		HiddenColumns: hidden,
	}
	if len(m.columns) > 0 {
		prefs.ActiveColumn = m.columns[m.activeColumn].name
	}
	return prefs
}

// Snapshot returns a copy of the current state for undo.
func (m *TableModel) Snapshot() *tablestate.TableState {
	return m.grid.State().Clone()
}

// Restore puts a snapshot back in place and re-filters it under the current
// search mode.
func (m *TableModel) Restore(snap *tablestate.TableState) {
	m.grid.State().Restore(snap)
	m.grid.RedrawFiltered()
	m.clampCursor()
}

func (m *TableModel) clampCursor() {
	rows := m.grid.Visible()
	if len(rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// SelectedRow returns the id of the row under the cursor.
func (m *TableModel) SelectedRow() (int, bool) {
	rows := m.grid.Visible()
	if len(rows) == 0 || m.cursor >= len(rows) {
		return 0, false
	}
	return rows[m.cursor], true
}

func (m *TableModel) visibleColumnIndexes() []int {
	var idxs []int
	for i, c := range m.columns {
		if !c.hidden {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m *TableModel) ensureVisibleActiveColumn() {
	if len(m.columns) == 0 || !m.columns[m.activeColumn].hidden {
		return
	}
	for i := range m.columns {
		if !m.columns[i].hidden {
			m.activeColumn = i
			return
		}
	}
	m.columns[0].hidden = false
	m.activeColumn = 0
}

// ActiveColumnName returns the name of the active column.
func (m *TableModel) ActiveColumnName() string {
	if len(m.columns) == 0 {
		return ""
	}
	return m.columns[m.activeColumn].name
}

func (m *TableModel) NextColumn() {
	if len(m.columns) == 0 {
		return
	}
	start := m.activeColumn
	for {
		m.activeColumn = (m.activeColumn + 1) % len(m.columns)
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *TableModel) PrevColumn() {
	if len(m.columns) == 0 {
		return
	}
	start := m.activeColumn
	for {
		m.activeColumn--
		if m.activeColumn < 0 {
			m.activeColumn = len(m.columns) - 1
		}
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *TableModel) JumpToColumn(number int) bool {
	if number < 1 || number > len(m.columns) {
		return false
	}
	idx := number - 1
	if m.columns[idx].hidden {
		return false
	}
	m.activeColumn = idx
	return true
}

func direction(desc bool) tablestate.Direction {
	if desc {
		return tablestate.Desc
	}
	return tablestate.Asc
}

func (m *TableModel) SortActiveColumn(desc bool) {
	_ = m.grid.SortBy(m.activeColumn, direction(desc))
	m.clampCursor()
}

func (m *TableModel) AddSortActiveColumn(desc bool) {
	_ = m.grid.AddSort(m.activeColumn, direction(desc))
	m.clampCursor()
}

func (m *TableModel) CycleSortActiveColumn() string {
	if len(m.columns) == 0 {
		return "No columns"
	}
	label := strings.ToUpper(m.columns[m.activeColumn].name)
	k, err := m.grid.ToggleSort(m.activeColumn)
	m.clampCursor()
	switch {
	case err != nil:
		return err.Error()
	case k == nil:
		return "Sorting cleared"
	case k.Dir == tablestate.Desc:
		return fmt.Sprintf("Sorted %s descending", label)
	default:
		return fmt.Sprintf("Sorted %s ascending", label)
	}
}

func (m *TableModel) HideActiveColumn() bool {
	if len(m.visibleColumnIndexes()) <= 1 {
		return false
	}
	m.columns[m.activeColumn].hidden = true
	m.ensureVisibleActiveColumn()
	return true
}

func (m *TableModel) ShowAllColumns() {
	for i := range m.columns {
		m.columns[i].hidden = false
	}
}

// FilterBySelectedValue sets the active column's filter to the value in the
// selected cell.
func (m *TableModel) FilterBySelectedValue() bool {
	id, ok := m.SelectedRow()
	if !ok || len(m.columns) == 0 {
		return false
	}
	value := strings.TrimSpace(m.grid.Cell(id, m.activeColumn))
	if value == "" {
		return false
	}
	m.SetActiveFilter(value)
	return true
}

// ActiveFilter returns the filter of the active column.
func (m *TableModel) ActiveFilter() string {
	if len(m.columns) == 0 {
		return ""
	}
	return m.grid.State().ColumnFilters[m.activeColumn]
}

// SetActiveFilter sets the filter of the active column.
func (m *TableModel) SetActiveFilter(value string) {
	_ = m.grid.SetColumnFilter(m.activeColumn, value)
	m.clampCursor()
}

// GlobalFilter returns the global search term.
func (m *TableModel) GlobalFilter() string {
	return m.grid.State().GlobalFilter
}

// SetGlobalFilter sets the global search term.
func (m *TableModel) SetGlobalFilter(value string) {
	m.grid.SetGlobalFilter(value)
	m.clampCursor()
}

// ToggleSearchMode switches the global filter between smart and fuzzy.
func (m *TableModel) ToggleSearchMode() grid.SearchMode {
	mode := grid.SearchFuzzy
	if m.grid.SearchMode() == grid.SearchFuzzy {
		mode = grid.SearchSmart
	}
	m.grid.SetSearchMode(mode)
	m.clampCursor()
	return mode
}

// ClearFilters empties every column filter and the search. It reports
// whether anything was set.
func (m *TableModel) ClearFilters() bool {
	if !m.grid.State().Filtered() {
		return false
	}
	m.resetter.ClearFilters(m.grid.State())
	m.clampCursor()
	return true
}

// ClearSort drops the sort and shows rows in load order.
func (m *TableModel) ClearSort() {
	m.resetter.ClearSort(m.grid.State())
	m.clampCursor()
}

// ResetAll clears filters and sort with a single redraw. It reports whether
// the table was filtered or sorted before.
func (m *TableModel) ResetAll() bool {
	changed := m.grid.State().Filtered() || m.grid.State().Sorted()
	m.resetter.ResetAll(m.grid.State())
	m.clampCursor()
	return changed
}

func (m *TableModel) TableMeta() string {
	if len(m.columns) == 0 {
		return ""
	}
	state := m.grid.State()
	col := strings.ToUpper(m.columns[m.activeColumn].name)
	parts := []string{fmt.Sprintf("col %s", col)}
	if len(state.ActiveSort) > 0 {
		keys := make([]string, 0, len(state.ActiveSort))
		for _, k := range state.ActiveSort {
			keys = append(keys, fmt.Sprintf("%s %s", strings.ToUpper(m.columns[k.Column].name), k.Dir))
		}
		parts = append(parts, "sort "+strings.Join(keys, ", "))
	}
	for i, f := range state.ColumnFilters {
		if f != "" {
			parts = append(parts, fmt.Sprintf("filter %s=%q", strings.ToUpper(m.columns[i].name), f))
		}
	}
	if state.GlobalFilter != "" {
		parts = append(parts, fmt.Sprintf("search %s %q", m.grid.SearchMode(), state.GlobalFilter))
	}
	return strings.Join(parts, "  ·  ")
}

func (m *TableModel) sortMarker(col int) string {
	keys := m.grid.State().ActiveSort
	for i, k := range keys {
		if k.Column != col {
			continue
		}
		arrow := "↑"
		if k.Dir == tablestate.Desc {
			arrow = "↓"
		}
		if len(keys) > 1 {
			return fmt.Sprintf(" %s%d", arrow, i+1)
		}
		return " " + arrow
	}
	return ""
}

// View renders the table.
func (m *TableModel) View(width, height int) string {
	if m.grid.Len() == 0 {
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render(fmt.Sprintf("Table %s has no rows.", m.grid.Name()))
	}

	visible := m.visibleColumnIndexes()
	if len(visible) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render("No visible columns. Press C to show all columns.")
	}

	state := m.grid.State()
	widths := make([]int, 0, len(visible))
	headers := make([]string, 0, len(visible))
	for _, idx := range visible {
		col := m.columns[idx]
		label := col.name + m.sortMarker(idx)
		if state.ColumnFilters[idx] != "" {
			label = FilteredHeaderStyle.Render(label + " ⧩")
		}
		if idx == m.activeColumn {
			label = ActiveHeaderStyle.Render(label)
		}
		widths = append(widths, max(col.width, lipgloss.Width(label))+2)
		headers = append(headers, label)
	}
	total := 0
	for _, w := range widths {
		total += w
	}
	if extra := width - total; extra > 0 {
		widths[len(widths)-1] += extra
	}

	header := renderTableRow(headers, widths, TableHeaderStyle)
	divider := DividerStyle.Render(strings.Repeat("─", max(0, min(width, total))))

	visibleHeight := max(1, height-3)
	m.viewportHeight = visibleHeight

	rowIDs := m.grid.Visible()
	var rows []string
	for i := m.offset; i < len(rowIDs) && i < m.offset+visibleHeight; i++ {
		id := rowIDs[i]
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		cells := make([]string, 0, len(visible))
		for _, idx := range visible {
			cells = append(cells, util.TruncateString(util.SingleLine(m.grid.Cell(id, idx)), m.columns[idx].width))
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}
	if len(rowIDs) == 0 {
		rows = append(rows, EmptyStateStyle.Padding(1, 2).Render("No rows match. Press x to clear filters or R to reset."))
	}

	rowPos := ""
	if len(rowIDs) > 0 {
		rowPos = fmt.Sprintf("  ·  row %d/%d", m.cursor+1, len(rowIDs))
	}
	meta := m.TableMeta()
	if meta != "" {
		meta = "  ·  " + meta
	}
	status := StatusBarStyle.Render(util.FormatShown(len(rowIDs), m.grid.Len()) + rowPos + meta)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		strings.Join(rows, "\n"),
	)
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		spacer,
		status,
	)
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).MaxHeight(1).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func (m *TableModel) pageHeight() int {
	if m.viewportHeight == 0 {
		return 10
	}
	return m.viewportHeight
}

// MoveDown moves the cursor down.
func (m *TableModel) MoveDown() {
	if m.cursor < len(m.grid.Visible())-1 {
		m.cursor++
		if vh := m.pageHeight(); m.cursor >= m.offset+vh {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *TableModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first row.
func (m *TableModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last row.
func (m *TableModel) JumpToBottom() {
	if n := len(m.grid.Visible()); n > 0 {
		m.cursor = n - 1
		if vh := m.pageHeight(); m.cursor >= vh {
			m.offset = m.cursor - vh + 1
		}
	}
}

// HalfPageDown moves down half a page.
func (m *TableModel) HalfPageDown(pageSize int) {
	m.cursor += pageSize / 2
	if n := len(m.grid.Visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if vh := m.pageHeight(); m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *TableModel) HalfPageUp(pageSize int) {
	m.cursor -= pageSize / 2
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}
