package ui

import (
	"slices"

	"sift/internal/tablestate"
)

// undoAction records the table state on both sides of a filter, sort or
// reset so it can be stepped back and forth.
type undoAction struct {
	label  string
	table  string
	before *tablestate.TableState
	after  *tablestate.TableState
}

const maxUndo = 100

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	if len(m.undoStack) > maxUndo {
		m.undoStack = m.undoStack[len(m.undoStack)-maxUndo:]
	}
	m.redoStack = nil
}

// trackChange runs change on the open table and records an undo action when
// the state differs afterwards.
func (m *Model) trackChange(label string, change func(t *TableModel)) {
	if m.table == nil {
		return
	}
	before := m.table.Snapshot()
	change(m.table)
	after := m.table.Snapshot()
	if statesEqual(before, after) {
		return
	}
	m.pushUndoAction(undoAction{label: label, table: m.table.Name(), before: before, after: after})
}

func (m *Model) undo() {
	if len(m.undoStack) == 0 {
		m.info = "Nothing to undo"
		return
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	if m.table == nil || m.table.Name() != action.table {
		m.info = "Nothing to undo"
		return
	}
	m.table.Restore(action.before)
	m.redoStack = append(m.redoStack, action)
	m.info = "Undid: " + action.label
	m.logger.Debug().Str("table", action.table).Str("action", action.label).Msg("undo")
}

func (m *Model) redo() {
	if len(m.redoStack) == 0 {
		m.info = "Nothing to redo"
		return
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	if m.table == nil || m.table.Name() != action.table {
		m.info = "Nothing to redo"
		return
	}
	m.table.Restore(action.after)
	m.undoStack = append(m.undoStack, action)
	m.info = "Redid: " + action.label
	m.logger.Debug().Str("table", action.table).Str("action", action.label).Msg("redo")
}

func statesEqual(a, b *tablestate.TableState) bool {
	return a.GlobalFilter == b.GlobalFilter &&
		slices.Equal(a.ColumnFilters, b.ColumnFilters) &&
		slices.Equal(a.ActiveSort, b.ActiveSort) &&
		slices.Equal(a.MasterOrder, b.MasterOrder) &&
		slices.Equal(a.DisplayOrder, b.DisplayOrder)
}
