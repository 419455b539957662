// Package grid is an in-memory table engine. It owns a tablestate.TableState
// and recomputes the row orders from it whenever it is asked to redraw.
package grid

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sift/internal/model"
	"sift/internal/tablestate"

	"github.com/rs/zerolog"
)

// ErrColumnRange is returned for a column index outside the grid.
var ErrColumnRange = errors.New("column out of range")

// Grid holds a dataset and the state describing how it is viewed.
type Grid struct {
	ds     model.Dataset
	state  *tablestate.TableState
	search SearchMode
	logger zerolog.Logger

	// lowered row text, built lazily for the global filter
	rowText []string
}

// Option configures a Grid.
type Option func(*Grid)

// WithSearchMode selects how the global filter matches rows.
func WithSearchMode(mode SearchMode) Option {
	return func(g *Grid) { g.search = mode }
}

// WithLogger sets the grid's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Grid) { g.logger = logger }
}

// New builds a grid over ds. Row identifiers are the row indexes of ds.
func New(ds model.Dataset, opts ...Option) *Grid {
	g := &Grid{
		ds:     ds,
		state:  tablestate.New(len(ds.Columns), len(ds.Rows)),
		search: SearchSmart,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns the live state. Callers may mutate it and then call one of
// the redraw methods.
func (g *Grid) State() *tablestate.TableState { return g.state }

// Name returns the dataset name.
func (g *Grid) Name() string { return g.ds.Name }

// Columns returns the dataset columns.
func (g *Grid) Columns() []model.Column { return g.ds.Columns }

// Len returns the total number of rows.
func (g *Grid) Len() int { return len(g.ds.Rows) }

// Visible returns the ids of the rows currently shown, in display order.
func (g *Grid) Visible() []int { return g.state.DisplayOrder }

// ColumnNames returns the column names in dataset order.
func (g *Grid) ColumnNames() []string { return g.ds.ColumnNames() }

// Cell returns one cell, or "" when out of range.
func (g *Grid) Cell(id, col int) string {
	if id < 0 || id >= len(g.ds.Rows) {
		return ""
	}
	row := g.ds.Rows[id]
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// SearchMode returns the global filter mode.
func (g *Grid) SearchMode() SearchMode { return g.search }

// SetSearchMode changes the global filter mode and re-filters.
func (g *Grid) SetSearchMode(mode SearchMode) {
	g.search = mode
	g.RedrawFiltered()
}

func (g *Grid) checkColumn(col int) error {
	if col < 0 || col >= len(g.ds.Columns) {
		return fmt.Errorf("%w: %d", ErrColumnRange, col)
	}
	return nil
}

// ColumnIndex returns the index of the column named name (case-insensitive).
func (g *Grid) ColumnIndex(name string) (int, error) {
	for i, c := range g.ds.Columns {
		if strings.EqualFold(c.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnRange, name)
}

// SetColumnFilter sets the filter of one column and re-filters.
func (g *Grid) SetColumnFilter(col int, value string) error {
	if err := g.checkColumn(col); err != nil {
		return err
	}
	g.state.ColumnFilters[col] = value
	g.RedrawFiltered()
	return nil
}

// SetGlobalFilter sets the global filter and re-filters.
func (g *Grid) SetGlobalFilter(value string) {
	g.state.GlobalFilter = value
	g.RedrawFiltered()
}

// SortBy replaces the active sort with a single key.
func (g *Grid) SortBy(col int, dir tablestate.Direction) error {
	if err := g.checkColumn(col); err != nil {
		return err
	}
	g.state.ActiveSort = []tablestate.SortKey{{Column: col, Dir: dir}}
	g.RedrawFull()
	return nil
}

// AddSort appends col to the active sort, or changes its direction if it is
// already part of it.
func (g *Grid) AddSort(col int, dir tablestate.Direction) error {
	if err := g.checkColumn(col); err != nil {
		return err
	}
	for i, k := range g.state.ActiveSort {
		if k.Column == col {
			g.state.ActiveSort[i].Dir = dir
			g.RedrawFull()
			return nil
		}
	}
	g.state.ActiveSort = append(g.state.ActiveSort, tablestate.SortKey{Column: col, Dir: dir})
	g.RedrawFull()
	return nil
}

// ToggleSort cycles col through ascending, descending and unsorted. It
// returns the resulting key, or nil when the sort was dropped. Dropping the
// last key does not restore load order; that is the job of a sort reset.
func (g *Grid) ToggleSort(col int) (*tablestate.SortKey, error) {
	if err := g.checkColumn(col); err != nil {
		return nil, err
	}
	if len(g.state.ActiveSort) == 1 && g.state.ActiveSort[0].Column == col {
		if g.state.ActiveSort[0].Dir == tablestate.Asc {
			g.state.ActiveSort[0].Dir = tablestate.Desc
			g.RedrawFull()
			k := g.state.ActiveSort[0]
			return &k, nil
		}
		g.state.ActiveSort = nil
		g.RedrawFull()
		return nil, nil
	}
	if err := g.SortBy(col, tablestate.Asc); err != nil {
		return nil, err
	}
	k := g.state.ActiveSort[0]
	return &k, nil
}

// RedrawFiltered recomputes DisplayOrder from MasterOrder and the filters.
func (g *Grid) RedrawFiltered() {
	s := g.state
	if !s.Filtered() {
		s.DisplayOrder = append(s.DisplayOrder[:0], s.MasterOrder...)
		return
	}

	candidates := make([]int, 0, len(s.MasterOrder))
	for _, id := range s.MasterOrder {
		if g.matchesColumns(id) {
			candidates = append(candidates, id)
		}
	}
	s.DisplayOrder = g.applyGlobal(candidates, s.GlobalFilter)
	g.logger.Debug().
		Str("table", g.ds.Name).
		Int("shown", len(s.DisplayOrder)).
		Int("total", len(s.MasterOrder)).
		Msg("filters applied")
}

// RedrawFull re-sorts MasterOrder by the active sort, if any, then
// re-filters.
func (g *Grid) RedrawFull() {
	if len(g.state.ActiveSort) > 0 {
		keys := g.state.ActiveSort
		master := g.state.MasterOrder
		sort.SliceStable(master, func(i, j int) bool {
			a, b := master[i], master[j]
			for _, k := range keys {
				c := compareCells(g.Cell(a, k.Column), g.Cell(b, k.Column))
				if c == 0 {
					continue
				}
				if k.Dir == tablestate.Desc {
					return c > 0
				}
				return c < 0
			}
			return a < b
		})
	}
	g.RedrawFiltered()
}

func (g *Grid) matchesColumns(id int) bool {
	for col, f := range g.state.ColumnFilters {
		if f == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(g.Cell(id, col)), strings.ToLower(f)) {
			return false
		}
	}
	return true
}

// compareCells compares numerically when both cells are numbers, otherwise
// case-insensitively as text. Empty cells sort first.
func compareCells(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
