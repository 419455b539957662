package tablestate

import (
	"slices"

	"github.com/rs/zerolog"
)

// Redrawer is implemented by the component that owns a TableState.
type Redrawer interface {
	// RedrawFiltered re-applies the current filters to produce DisplayOrder
	// without touching the sort.
	RedrawFiltered()
	// RedrawFull redraws honoring the current filters and sort.
	RedrawFull()
}

type resetOptions struct {
	draw bool
}

// ResetOption configures ClearFilters and ResetAll.
type ResetOption func(*resetOptions)

// NoDraw skips the redraw after the reset.
func NoDraw() ResetOption {
	return func(o *resetOptions) { o.draw = false }
}

// WithDraw sets whether the reset is followed by a redraw.
func WithDraw(draw bool) ResetOption {
	return func(o *resetOptions) { o.draw = draw }
}

func buildOptions(opts []ResetOption) resetOptions {
	o := resetOptions{draw: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Resetter clears filters and sorting on a TableState and tells its owner to
// redraw. A nil Redrawer is allowed.
//
// The state must be well formed: ColumnFilters matches the column count and
// identifiers in the orders are unique. Duplicate identifiers are kept in
// place and sort next to each other.
type Resetter struct {
	redraw Redrawer
	logger zerolog.Logger
}

// NewResetter creates a resetter bound to a redraw collaborator.
func NewResetter(redraw Redrawer, logger zerolog.Logger) *Resetter {
	return &Resetter{
		redraw: redraw,
		logger: logger.With().Str("component", "resetter").Logger(),
	}
}

// ClearFilters empties every column filter and the global filter. Unless
// NoDraw is given the owner re-runs its filter pipeline.
func (r *Resetter) ClearFilters(state *TableState, opts ...ResetOption) {
	if state == nil {
		return
	}
	o := buildOptions(opts)
	clearFilters(state)
	r.logger.Debug().Int("columns", len(state.ColumnFilters)).Bool("draw", o.draw).Msg("filters cleared")
	if o.draw && r.redraw != nil {
		r.redraw.RedrawFiltered()
	}
}

// ClearSort drops the active sort and puts both row orders back in load
// order, then always redraws.
func (r *Resetter) ClearSort(state *TableState) {
	if state == nil {
		return
	}
	clearSort(state)
	r.logger.Debug().Int("rows", len(state.MasterOrder)).Msg("sort cleared")
	if r.redraw != nil {
		r.redraw.RedrawFull()
	}
}

// ResetAll clears filters and sort in one pass with a single redraw.
func (r *Resetter) ResetAll(state *TableState, opts ...ResetOption) {
	if state == nil {
		return
	}
	o := buildOptions(opts)
	clearFilters(state)
	clearSort(state)
	r.logger.Debug().
		Int("columns", len(state.ColumnFilters)).
		Int("rows", len(state.MasterOrder)).
		Bool("draw", o.draw).
		Msg("table reset")
	if o.draw && r.redraw != nil {
		r.redraw.RedrawFull()
	}
}

func clearFilters(state *TableState) {
	for i := range state.ColumnFilters {
		state.ColumnFilters[i] = ""
	}
	state.GlobalFilter = ""
}

func clearSort(state *TableState) {
	state.ActiveSort = nil
	slices.Sort(state.DisplayOrder)
	slices.Sort(state.MasterOrder)
}
