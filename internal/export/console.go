package export

import (
	"fmt"
	"io"

	"sift/internal/grid"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ConsoleWriter renders the rows as a bordered text table.
type ConsoleWriter struct{}

var consoleHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var consoleCellStyle = lipgloss.NewStyle().Padding(0, 1)

func (ConsoleWriter) Write(w io.Writer, g *grid.Grid, cols []int) error {
	cols = columnsOrAll(g, cols)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(header(g, cols)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return consoleHeaderStyle
			}
			return consoleCellStyle
		})
	for _, id := range g.Visible() {
		t.Row(record(g, id, cols)...)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
