package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"sift/internal/model"
)

// ListTables returns the user tables of the database with their row counts,
// ordered by name.
func ListTables(db *sql.DB) ([]model.TableInfo, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	rows.Close()

	results := make([]model.TableInfo, 0, len(names))
	for _, name := range names {
		info := model.TableInfo{Name: name}
		if err := db.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(name)).Scan(&info.RowCount); err != nil {
			return nil, fmt.Errorf("failed to count rows of %s: %w", name, err)
		}
		cols, err := tableColumns(db, name)
		if err != nil {
			return nil, err
		}
		info.Columns = len(cols)
		results = append(results, info)
	}

	return results, nil
}

// LoadTable reads up to limit rows of table in storage order. A limit of zero or
// less loads every row. Values are rendered as strings, NULL as "".
func LoadTable(db *sql.DB, table string, limit int) (model.Dataset, error) {
	cols, err := tableColumns(db, table)
	if err != nil {
		return model.Dataset{}, err
	}
	if len(cols) == 0 {
		return model.Dataset{}, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	query := "SELECT * FROM " + quoteIdent(table)
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	ds := model.Dataset{Name: table, Columns: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return model.Dataset{}, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		ds.Rows = append(ds.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return model.Dataset{}, fmt.Errorf("error iterating %s rows: %w", table, err)
	}

	return ds, nil
}

func tableColumns(db *sql.DB, table string) ([]model.Column, error) {
	rows, err := db.Query("SELECT name, type FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []model.Column
	for rows.Next() {
		var c model.Column
		if err := rows.Scan(&c.Name, &c.DeclType); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns of %s: %w", table, err)
	}
	return cols, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
