package ui

import (
	"testing"

	"sift/internal/grid"
	"sift/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

func sampleDataset() model.Dataset {
	return model.Dataset{
		Name:    "books",
		Columns: []model.Column{{Name: "title"}, {Name: "author"}, {Name: "year"}},
		Rows: [][]string{
			{"Dune", "Herbert", "1965"},
			{"Emma", "Austen", "1815"},
			{"Ubik", "Dick", "1969"},
			{"Persuasion", "Austen", "1817"},
		},
	}
}

func newTestTable(t *testing.T) *TableModel {
	t.Helper()
	return NewTableModel(grid.New(sampleDataset()), zerolog.Nop())
}

// newTestModel returns a root model with the sample table open.
func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(nil, Options{ConfigDir: t.TempDir(), Logger: zerolog.Nop()})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	updated, _ = updated.Update(model.DatasetLoadedMsg{Dataset: sampleDataset()})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+r":
			msg = tea.KeyMsg{Type: tea.KeyCtrlR}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}
