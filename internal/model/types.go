package model

// Column describes one column of a loaded table.
type Column struct {
	Name     string
	DeclType string // declared SQLite type, may be empty
}

// Dataset is a table loaded into memory. Rows are stored in load order and a
// row's index in Rows is its identifier.
type Dataset struct {
	Name    string
	Columns []Column
	Rows    [][]string
}

// ColumnNames returns the names of the dataset's columns.
func (d Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// TableInfo summarizes a table for the table list.
type TableInfo struct {
	Name     string
	Columns  int
	RowCount int64
}
