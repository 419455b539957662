package ui

import (
	"sift/internal/grid"
	"sift/internal/model"
)

// tableController is what the table screen's key handling needs from the
// open table.
type tableController interface {
	MoveDown()
	MoveUp()
	JumpToBottom()
	HalfPageDown(pageSize int)
	HalfPageUp(pageSize int)
	NextColumn()
	PrevColumn()
	JumpToColumn(number int) bool
	SortActiveColumn(desc bool)
	AddSortActiveColumn(desc bool)
	CycleSortActiveColumn() string
	HideActiveColumn() bool
	ShowAllColumns()
	FilterBySelectedValue() bool
	ToggleSearchMode() grid.SearchMode
	ClearFilters() bool
	ClearSort()
	ResetAll() bool
	TableMeta() string
}

func (m *Model) currentTable() tableController {
	if m.screen != model.ScreenTable || m.table == nil {
		return nil
	}
	return m.table
}
