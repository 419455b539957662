package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDatabase(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(`
		CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT, score REAL, note TEXT);
		INSERT INTO people (name, score, note) VALUES ('carol', 7.5, NULL), ('alice', 9, 'x'), ('bob', 3.25, 'y');
		CREATE TABLE "odd ""name""" (v TEXT);
		INSERT INTO "odd ""name""" VALUES ('one');
	`)
	require.NoError(t, err)
	return path
}

func TestListTables(t *testing.T) {
	database, err := Open(seedDatabase(t))
	require.NoError(t, err)
	defer database.Close()

	tables, err := ListTables(database)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Equal(t, `odd "name"`, tables[0].Name)
	assert.EqualValues(t, 1, tables[0].RowCount)
	assert.Equal(t, 1, tables[0].Columns)

	assert.Equal(t, "people", tables[1].Name)
	assert.EqualValues(t, 3, tables[1].RowCount)
	assert.Equal(t, 4, tables[1].Columns)
}

func TestLoadTable(t *testing.T) {
	database, err := Open(seedDatabase(t))
	require.NoError(t, err)
	defer database.Close()

	ds, err := LoadTable(database, "people", 0)
	require.NoError(t, err)

	assert.Equal(t, "people", ds.Name)
	assert.Equal(t, []string{"id", "name", "score", "note"}, ds.ColumnNames())
	assert.Equal(t, "INTEGER", ds.Columns[0].DeclType)
	require.Len(t, ds.Rows, 3)
	assert.Equal(t, []string{"1", "carol", "7.5", ""}, ds.Rows[0])
	assert.Equal(t, []string{"2", "alice", "9", "x"}, ds.Rows[1])
}

func TestLoadTableLimit(t *testing.T) {
	database, err := Open(seedDatabase(t))
	require.NoError(t, err)
	defer database.Close()

	ds, err := LoadTable(database, "people", 2)
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 2)
}

func TestLoadTableUnknown(t *testing.T) {
	database, err := Open(seedDatabase(t))
	require.NoError(t, err)
	defer database.Close()

	_, err = LoadTable(database, "missing", 0)
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"plain"`, quoteIdent("plain"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}
