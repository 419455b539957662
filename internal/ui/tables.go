package ui

import (
	"fmt"
	"strings"

	"sift/internal/model"
	"sift/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// TablesModel lists the tables of the database.
type TablesModel struct {
	tables []model.TableInfo
	cursor int
	offset int

	viewportHeight int
}

// NewTablesModel creates a new table list.
func NewTablesModel(tables []model.TableInfo) *TablesModel {
	return &TablesModel{tables: tables}
}

// Selected returns the table under the cursor.
func (m *TablesModel) Selected() (model.TableInfo, bool) {
	if len(m.tables) == 0 {
		return model.TableInfo{}, false
	}
	return m.tables[m.cursor], true
}

// Select moves the cursor to the table named name.
func (m *TablesModel) Select(name string) bool {
	for i, t := range m.tables {
		if t.Name == name {
			m.cursor = i
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
			return true
		}
	}
	return false
}

// View renders the table list.
func (m *TablesModel) View(width, height int) string {
	if len(m.tables) == 0 {
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render("    This database has no tables.")
	}

	nameWidth := 12
	for _, t := range m.tables {
		nameWidth = max(nameWidth, lipgloss.Width(t.Name)+2)
	}
	nameWidth = min(nameWidth, max(12, width-30))
	widths := []int{nameWidth + 2, 12, 16}

	header := renderTableRow([]string{"table", "columns", "rows"}, widths, TableHeaderStyle)
	divider := DividerStyle.Render(strings.Repeat("─", min(width, nameWidth+30)))

	visibleHeight := max(1, height-3)
	m.viewportHeight = visibleHeight
	if m.cursor >= m.offset+visibleHeight {
		m.offset = m.cursor - visibleHeight + 1
	}

	var rows []string
	var totalRows int64
	for _, t := range m.tables {
		totalRows += t.RowCount
	}
	for i := m.offset; i < len(m.tables) && i < m.offset+visibleHeight; i++ {
		t := m.tables[i]
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		cells := []string{
			util.TruncateString(t.Name, nameWidth),
			fmt.Sprintf("%d", t.Columns),
			util.FormatCount(int(t.RowCount)),
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	status := StatusBarStyle.Render(fmt.Sprintf("%d tables  ·  %s rows", len(m.tables), util.FormatCount(int(totalRows))))
	content := lipgloss.JoinVertical(lipgloss.Left, header, divider, strings.Join(rows, "\n"))
	spacer := lipgloss.NewStyle().Height(max(0, height-lipgloss.Height(content)-lipgloss.Height(status))).Render("")
	return lipgloss.JoinVertical(lipgloss.Left, content, spacer, status)
}

// MoveDown moves the cursor down.
func (m *TablesModel) MoveDown() {
	if m.cursor < len(m.tables)-1 {
		m.cursor++
	}
}

// MoveUp moves the cursor up.
func (m *TablesModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first table.
func (m *TablesModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last table.
func (m *TablesModel) JumpToBottom() {
	if len(m.tables) > 0 {
		m.cursor = len(m.tables) - 1
	}
}
