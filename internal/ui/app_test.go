package ui

import (
	"os"
	"path/filepath"
	"testing"

	"sift/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetLoadedOpensTable(t *testing.T) {
	m := newTestModel(t)

	require.NotNil(t, m.table)
	assert.Equal(t, model.ScreenTable, m.screen)
	assert.Equal(t, "books", m.table.Name())
	assert.Contains(t, m.View(), "Persuasion")
}

func TestResetAllKeyAndUndo(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, ":", "3", "S")
	m.table.SetGlobalFilter("19")
	require.Equal(t, []int{2, 0}, m.table.grid.Visible())

	m = press(t, m, "R")
	assert.Equal(t, []int{0, 1, 2, 3}, m.table.grid.Visible())
	assert.Empty(t, m.table.GlobalFilter())
	assert.Equal(t, "Filters and sorting reset", m.info)

	m = press(t, m, "u")
	assert.Equal(t, []int{2, 0}, m.table.grid.Visible())
	assert.Equal(t, "19", m.table.GlobalFilter())

	m = press(t, m, "ctrl+r")
	assert.Equal(t, []int{0, 1, 2, 3}, m.table.grid.Visible())
}

func TestClearFiltersKey(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "x")
	assert.Equal(t, "No filters to clear", m.info)
	assert.Empty(t, m.undoStack)

	m = press(t, m, "tab", "f", "A", "u", "s", "enter")
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, "Aus", m.table.ActiveFilter())
	assert.Equal(t, []int{1, 3}, m.table.grid.Visible())
	require.Len(t, m.undoStack, 1)

	m = press(t, m, "x")
	assert.Equal(t, "Filters cleared", m.info)
	assert.Equal(t, []int{0, 1, 2, 3}, m.table.grid.Visible())
}

func TestSortNeutralKey(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "s")
	require.Equal(t, []int{0, 1, 3, 2}, m.table.grid.Visible())

	m = press(t, m, "N")
	assert.Equal(t, []int{0, 1, 2, 3}, m.table.grid.Visible())
	assert.Empty(t, m.table.State().ActiveSort)
}

func TestRedoRefiltersUnderCurrentSearchMode(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "/", "d", "k", "enter")
	require.Empty(t, m.table.grid.Visible())

	m = press(t, m, "u", "z", "ctrl+r")
	assert.Equal(t, "dk", m.table.GlobalFilter())
	assert.Equal(t, []int{2}, m.table.grid.Visible())

	m = press(t, m, "z")
	assert.Empty(t, m.table.grid.Visible())
}

func TestSearchInputCancelRestores(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "/", "d", "i")
	assert.Equal(t, model.ModeInsert, m.mode)
	assert.Equal(t, []int{2}, m.table.grid.Visible())

	m = press(t, m, "esc")
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Empty(t, m.table.GlobalFilter())
	assert.Equal(t, []int{0, 1, 2, 3}, m.table.grid.Visible())
	assert.Empty(t, m.undoStack)
}

func TestBackToTablesAndPrefsPersisted(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "S", "b")

	assert.Equal(t, model.ScreenTables, m.screen)

	data, err := os.ReadFile(filepath.Join(m.opts.ConfigDir, "ui_prefs.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"books"`)
	assert.Contains(t, string(data), `"author"`)

	prefs := loadUIPreferences(m.opts.ConfigDir)
	assert.Equal(t, []SortPref{{Column: "author", Desc: true}}, prefs.Tables["books"].Sort)
}

func TestTablesLoaded(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "b")

	updated, _ := m.Update(model.TablesLoadedMsg{Tables: []model.TableInfo{
		{Name: "authors", Columns: 2, RowCount: 10},
		{Name: "books", Columns: 3, RowCount: 4},
	}})
	m = updated.(Model)

	sel, ok := m.tables.Selected()
	require.True(t, ok)
	assert.Equal(t, "books", sel.Name)
	assert.Contains(t, m.View(), "authors")
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "?")
	assert.True(t, m.showingHelp)
	assert.Contains(t, m.View(), "Clear filters, search and sorting")

	m = press(t, m, "esc")
	assert.False(t, m.showingHelp)
}
