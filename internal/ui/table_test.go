package ui

import (
	"testing"

	"sift/internal/tablestate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableModelColumnNavigation(t *testing.T) {
	m := newTestTable(t)

	assert.Equal(t, "title", m.ActiveColumnName())
	m.NextColumn()
	assert.Equal(t, "author", m.ActiveColumnName())
	m.PrevColumn()
	m.PrevColumn()
	assert.Equal(t, "year", m.ActiveColumnName())

	assert.True(t, m.JumpToColumn(2))
	assert.Equal(t, "author", m.ActiveColumnName())
	assert.False(t, m.JumpToColumn(9))
}

func TestTableModelHideColumns(t *testing.T) {
	m := newTestTable(t)

	require.True(t, m.HideActiveColumn())
	assert.Equal(t, "author", m.ActiveColumnName())
	require.True(t, m.HideActiveColumn())
	assert.False(t, m.HideActiveColumn(), "last visible column stays")

	assert.False(t, m.JumpToColumn(1))
	m.ShowAllColumns()
	assert.True(t, m.JumpToColumn(1))
}

func TestTableModelFilterBySelectedValue(t *testing.T) {
	m := newTestTable(t)
	m.NextColumn()
	m.MoveDown()

	require.True(t, m.FilterBySelectedValue())
	assert.Equal(t, "Austen", m.ActiveFilter())
	assert.Equal(t, []int{1, 3}, m.grid.Visible())
}

func TestTableModelResetOperations(t *testing.T) {
	m := newTestTable(t)
	m.JumpToColumn(3)
	m.SortActiveColumn(true)
	m.SetGlobalFilter("19")

	assert.Equal(t, []int{2, 0}, m.grid.Visible())

	assert.True(t, m.ClearFilters())
	assert.False(t, m.ClearFilters())
	assert.Equal(t, []int{2, 0, 3, 1}, m.grid.Visible())

	m.ClearSort()
	assert.Equal(t, []int{0, 1, 2, 3}, m.grid.Visible())
	assert.Empty(t, m.State().ActiveSort)

	m.SortActiveColumn(false)
	m.SetActiveFilter("18")
	assert.True(t, m.ResetAll())
	assert.Equal(t, []int{0, 1, 2, 3}, m.grid.Visible())
	assert.False(t, m.ResetAll())
}

func TestTableModelCursorClampsAfterFilter(t *testing.T) {
	m := newTestTable(t)
	m.JumpToBottom()
	id, ok := m.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, 3, id)

	m.SetGlobalFilter("dune")
	id, ok = m.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, 0, id)

	m.SetGlobalFilter("nothing matches")
	_, ok = m.SelectedRow()
	assert.False(t, ok)
}

func TestTableModelPrefsRoundTrip(t *testing.T) {
	m := newTestTable(t)
	m.JumpToColumn(2)
	m.SortActiveColumn(false)
	m.JumpToColumn(3)
	m.AddSortActiveColumn(true)
	m.JumpToColumn(1)
	m.HideActiveColumn()

	prefs := m.Prefs()
	assert.Equal(t, []SortPref{{Column: "author"}, {Column: "year", Desc: true}}, prefs.Sort)
	assert.Equal(t, []string{"title"}, prefs.HiddenColumns)
	assert.Equal(t, "author", prefs.ActiveColumn)

	other := newTestTable(t)
	other.ApplyPrefs(prefs)
	assert.Equal(t, []tablestate.SortKey{{Column: 1}, {Column: 2, Dir: tablestate.Desc}}, other.State().ActiveSort)
	assert.Equal(t, []int{3, 1, 2, 0}, other.grid.Visible())
	assert.Equal(t, "author", other.ActiveColumnName())
}

func TestTableModelApplyPrefsIgnoresUnknownColumns(t *testing.T) {
	m := newTestTable(t)
	m.ApplyPrefs(TablePrefs{Sort: []SortPref{{Column: "gone"}}, ActiveColumn: "gone"})

	assert.Empty(t, m.State().ActiveSort)
	assert.Equal(t, "title", m.ActiveColumnName())
}

func TestTableModelMeta(t *testing.T) {
	m := newTestTable(t)
	m.JumpToColumn(3)
	m.SortActiveColumn(true)
	m.SetActiveFilter("19")

	meta := m.TableMeta()
	assert.Contains(t, meta, "col YEAR")
	assert.Contains(t, meta, "sort YEAR desc")
	assert.Contains(t, meta, `filter YEAR="19"`)
}

func TestTableModelView(t *testing.T) {
	m := newTestTable(t)
	out := m.View(100, 12)

	assert.Contains(t, out, "Persuasion")
	assert.Contains(t, out, "4 rows")

	m.SetGlobalFilter("austen")
	out = m.View(100, 12)
	assert.Contains(t, out, "2/4 rows")
	assert.NotContains(t, out, "Dune")
}
