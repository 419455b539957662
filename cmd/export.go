package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"sift/internal/db"
	"sift/internal/export"
	"sift/internal/grid"
	"sift/internal/logging"
	"sift/internal/tablestate"

	"github.com/spf13/cobra"
)

type exportOptions struct {
	format  string
	output  string
	sorts   []string
	filters []string
	search  string
	columns []string
}

var exportOpts exportOptions

var exportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Write a table's rows, filtered and sorted, as csv, tsv or a text table",
	Example: `  sift export people --db app.db --sort last_name --sort age:desc
  sift export people --db app.db --filter city=lyon --search "anne" --format console`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, _, err := resolveConfig(flags)
		if err != nil {
			return err
		}
		if config.DBPath == "" {
			return fmt.Errorf("no database given: pass --db or set SIFT_DB")
		}
		logger, err := logging.NewConsole(cmd.ErrOrStderr(), config.LogLevel)
		if err != nil {
			return err
		}

		writer, err := export.ForFormat(exportOpts.format)
		if err != nil {
			return err
		}

		database, err := db.Open(config.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()

		ds, err := db.LoadTable(database, args[0], config.RowLimit)
		if err != nil {
			return err
		}

		g := grid.New(ds, grid.WithSearchMode(config.SearchMode), grid.WithLogger(logger))
		if err := applyExportOptions(g, exportOpts); err != nil {
			return err
		}
		cols, err := exportColumns(g, exportOpts.columns)
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if exportOpts.output != "" && exportOpts.output != "-" {
			f, err := os.Create(exportOpts.output)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := writer.Write(out, g, cols); err != nil {
			return err
		}
		logger.Info().
			Str("table", ds.Name).
			Int("rows", len(g.Visible())).
			Int("total", g.Len()).
			Msg("exported")
		return nil
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportOpts.format, "format", "f", "csv", "Output format: "+strings.Join(export.Formats(), ", "))
	f.StringVarP(&exportOpts.output, "output", "o", "", "Output file (default: stdout)")
	f.StringArrayVar(&exportOpts.sorts, "sort", nil, "Sort key column[:asc|desc], repeatable")
	f.StringArrayVar(&exportOpts.filters, "filter", nil, "Column filter column=value, repeatable")
	f.StringVar(&exportOpts.search, "search", "", "Global search term")
	f.StringSliceVar(&exportOpts.columns, "columns", nil, "Columns to write, in order (default: all)")
}

// applyExportOptions sets filters and sort on the grid's state, then redraws
// once.
func applyExportOptions(g *grid.Grid, opts exportOptions) error {
	state := g.State()
	for _, f := range opts.filters {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("invalid filter %q: want column=value", f)
		}
		idx, err := g.ColumnIndex(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		state.ColumnFilters[idx] = value
	}
	state.GlobalFilter = opts.search

	for _, s := range opts.sorts {
		key, err := parseSortKey(g, s)
		if err != nil {
			return err
		}
		state.ActiveSort = append(state.ActiveSort, key)
	}

	g.RedrawFull()
	return nil
}

func parseSortKey(g *grid.Grid, s string) (tablestate.SortKey, error) {
	name, dir, _ := strings.Cut(s, ":")
	idx, err := g.ColumnIndex(strings.TrimSpace(name))
	if err != nil {
		return tablestate.SortKey{}, err
	}
	key := tablestate.SortKey{Column: idx}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
	case "desc":
		key.Dir = tablestate.Desc
	default:
		return tablestate.SortKey{}, fmt.Errorf("invalid sort direction %q in %q", dir, s)
	}
	return key, nil
}

func exportColumns(g *grid.Grid, names []string) ([]int, error) {
	if len(names) == 0 {
		return nil, nil
	}
	cols := make([]int, 0, len(names))
	for _, name := range names {
		idx, err := g.ColumnIndex(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		cols = append(cols, idx)
	}
	return cols, nil
}
