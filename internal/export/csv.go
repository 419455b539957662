package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"sift/internal/grid"
)

// CSVWriter writes a header line followed by one record per visible row.
type CSVWriter struct {
	Comma rune
}

func (c CSVWriter) Write(w io.Writer, g *grid.Grid, cols []int) error {
	cols = columnsOrAll(g, cols)
	cw := csv.NewWriter(w)
	if c.Comma != 0 {
		cw.Comma = c.Comma
	}

	if err := cw.Write(header(g, cols)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, id := range g.Visible() {
		if err := cw.Write(record(g, id, cols)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", id, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
