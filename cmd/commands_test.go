package cmd

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"sift/internal/export"
	"sift/internal/grid"
	"sift/internal/model"
	"sift/internal/tablestate"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDatabase(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "people.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(`
		CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT, city TEXT, age INTEGER);
		INSERT INTO people (name, city, age) VALUES
			('carol', 'lyon', 41),
			('alice', 'paris', 29),
			('bob', 'lyon', 35),
			('dave', 'nice', 29);
		CREATE TABLE empty (v TEXT);
	`)
	require.NoError(t, err)
	return path
}

// runCommand executes the root command with args and fresh flag values.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SIFT_CONFIG_DIR", t.TempDir())
	t.Setenv("SIFT_DB", "")

	flags = flagValues{}
	exportOpts = exportOptions{format: "csv"}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestExportCommandNeutralOrder(t *testing.T) {
	out, err := runCommand(t, "export", "people", "--db", seedDatabase(t), "--columns", "name,age")
	require.NoError(t, err)
	assert.Equal(t, "name,age\ncarol,41\nalice,29\nbob,35\ndave,29\n", out)
}

func TestExportCommandSortAndFilter(t *testing.T) {
	db := seedDatabase(t)

	out, err := runCommand(t, "export", "people", "--db", db,
		"--filter", "city=lyon", "--sort", "name:desc", "--columns", "name")
	require.NoError(t, err)
	assert.Equal(t, "name\ncarol\nbob\n", out)

	out, err = runCommand(t, "export", "people", "--db", db,
		"--sort", "age", "--sort", "name:desc", "--columns", "name,age", "--format", "tsv")
	require.NoError(t, err)
	assert.Equal(t, "name\tage\ndave\t29\nalice\t29\nbob\t35\ncarol\t41\n", out)
}

func TestExportCommandSearch(t *testing.T) {
	out, err := runCommand(t, "export", "people", "--db", seedDatabase(t),
		"--search", "lyon 35", "--columns", "name")
	require.NoError(t, err)
	assert.Equal(t, "name\nbob\n", out)
}

func TestExportCommandSearchMode(t *testing.T) {
	db := seedDatabase(t)

	out, err := runCommand(t, "--search-mode", "fuzzy", "export", "people", "--db", db,
		"--search", "cyn", "--columns", "name")
	require.NoError(t, err)
	assert.Equal(t, "name\ncarol\n", out)
	assert.Equal(t, "fuzzy", flags.searchMode)
	assert.Equal(t, "cyn", exportOpts.search)

	out, err = runCommand(t, "export", "people", "--db", db, "--search", "cyn", "--columns", "name")
	require.NoError(t, err)
	assert.Equal(t, "name\n", out)
}

func TestExportCommandToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.csv")
	out, err := runCommand(t, "export", "people", "--db", seedDatabase(t),
		"--columns", "name", "--filter", "name=ali", "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "name\nalice\n", string(data))
}

func TestExportCommandErrors(t *testing.T) {
	db := seedDatabase(t)

	_, err := runCommand(t, "export", "people", "--db", db, "--format", "xml")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	_, err = runCommand(t, "export", "people", "--db", db, "--sort", "height")
	assert.ErrorIs(t, err, grid.ErrColumnRange)

	_, err = runCommand(t, "export", "people", "--db", db, "--filter", "city")
	assert.Error(t, err)

	_, err = runCommand(t, "export", "people")
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	out, err := runCommand(t, "list", "--db", seedDatabase(t))
	require.NoError(t, err)
	assert.Contains(t, out, "people")
	assert.Contains(t, out, "empty")
	assert.Contains(t, out, "4")
}

func TestTablesDataset(t *testing.T) {
	ds := tablesDataset([]model.TableInfo{
		{Name: "events", Columns: 3, RowCount: 1234567},
	})
	assert.Equal(t, []string{"table", "columns", "rows"}, ds.ColumnNames())
	assert.Equal(t, [][]string{{"events", "3", "1,234,567"}}, ds.Rows)
}

func TestParseSortKey(t *testing.T) {
	g := grid.New(model.Dataset{
		Columns: []model.Column{{Name: "name"}, {Name: "age"}},
	})

	key, err := parseSortKey(g, "age")
	require.NoError(t, err)
	assert.Equal(t, tablestate.SortKey{Column: 1, Dir: tablestate.Asc}, key)

	key, err = parseSortKey(g, "NAME:desc")
	require.NoError(t, err)
	assert.Equal(t, tablestate.SortKey{Column: 0, Dir: tablestate.Desc}, key)

	_, err = parseSortKey(g, "age:sideways")
	assert.Error(t, err)
}

func TestApplyExportOptionsThenReset(t *testing.T) {
	g := grid.New(model.Dataset{
		Columns: []model.Column{{Name: "name"}, {Name: "n"}},
		Rows:    [][]string{{"b", "2"}, {"a", "3"}, {"c", "1"}, {"a", "0"}},
	})

	require.NoError(t, applyExportOptions(g, exportOptions{
		sorts:   []string{"n"},
		filters: []string{"name=a"},
	}))
	assert.Equal(t, []int{3, 1}, g.Visible())

	tablestate.NewResetter(g, zerolog.Nop()).ResetAll(g.State())
	assert.Equal(t, []int{0, 1, 2, 3}, g.Visible())
	assert.Empty(t, g.State().ActiveSort)
}
