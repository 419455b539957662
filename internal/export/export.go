// Package export writes the visible rows of a grid to a stream.
package export

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"sift/internal/grid"
)

// ErrUnknownFormat is returned by ForFormat for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// Writer writes the rows a grid currently shows, in display order, limited to
// the given column indexes. A nil cols writes every column.
type Writer interface {
	Write(w io.Writer, g *grid.Grid, cols []int) error
}

var writers = map[string]Writer{
	"csv":     CSVWriter{},
	"tsv":     CSVWriter{Comma: '\t'},
	"console": ConsoleWriter{},
}

// Formats lists the supported format names.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForFormat returns the writer for a format name.
func ForFormat(name string) (Writer, error) {
	w, ok := writers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	return w, nil
}

func columnsOrAll(g *grid.Grid, cols []int) []int {
	if cols != nil {
		return cols
	}
	all := make([]int, len(g.Columns()))
	for i := range all {
		all[i] = i
	}
	return all
}

func header(g *grid.Grid, cols []int) []string {
	names := g.ColumnNames()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = names[c]
	}
	return out
}

func record(g *grid.Grid, id int, cols []int) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = g.Cell(id, c)
	}
	return out
}
