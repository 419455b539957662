// Package tablestate holds the filter/sort state of a table and the reset
// operations that bring it back to its neutral form.
package tablestate

import "fmt"

// Direction is the direction of a sort key.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// SortKey orders rows by one column.
type SortKey struct {
	Column int       `json:"column"`
	Dir    Direction `json:"dir"`
}

func (k SortKey) String() string {
	return fmt.Sprintf("%d:%s", k.Column, k.Dir)
}

// TableState is the mutable state of a table owned by the component that
// renders it. Row identifiers are assigned sequentially at load time, so
// ascending identifier order is the order rows were loaded in.
type TableState struct {
	// ColumnFilters is index-aligned with the table's columns. Its length is
	// fixed when the state is created.
	ColumnFilters []string
	GlobalFilter  string
	ActiveSort    []SortKey
	// DisplayOrder is the visible subset of rows, in display order.
	DisplayOrder []int
	// MasterOrder is every row of the dataset.
	MasterOrder []int
}

// New returns a state for columns columns and rows rows in load order.
func New(columns, rows int) *TableState {
	master := make([]int, rows)
	for i := range master {
		master[i] = i
	}
	return &TableState{
		ColumnFilters: make([]string, columns),
		DisplayOrder:  append([]int(nil), master...),
		MasterOrder:   master,
	}
}

// Clone returns a deep copy of s.
func (s *TableState) Clone() *TableState {
	if s == nil {
		return nil
	}
	return &TableState{
		ColumnFilters: append([]string(nil), s.ColumnFilters...),
		GlobalFilter:  s.GlobalFilter,
		ActiveSort:    append([]SortKey(nil), s.ActiveSort...),
		DisplayOrder:  append([]int(nil), s.DisplayOrder...),
		MasterOrder:   append([]int(nil), s.MasterOrder...),
	}
}

// Restore copies every field of snap into s in place. Slices are copied so
// s and snap never share backing arrays afterwards.
func (s *TableState) Restore(snap *TableState) {
	if s == nil || snap == nil {
		return
	}
	c := snap.Clone()
	s.ColumnFilters = c.ColumnFilters
	s.GlobalFilter = c.GlobalFilter
	s.ActiveSort = c.ActiveSort
	s.DisplayOrder = c.DisplayOrder
	s.MasterOrder = c.MasterOrder
}

// Filtered reports whether any column filter or the global filter is set.
func (s *TableState) Filtered() bool {
	if s.GlobalFilter != "" {
		return true
	}
	for _, f := range s.ColumnFilters {
		if f != "" {
			return true
		}
	}
	return false
}

// Sorted reports whether a sort is active.
func (s *TableState) Sorted() bool {
	return len(s.ActiveSort) > 0
}
