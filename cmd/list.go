package cmd

import (
	"fmt"
	"strconv"

	"sift/internal/db"
	"sift/internal/export"
	"sift/internal/grid"
	"sift/internal/model"
	"sift/internal/util"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tables of the database with their row counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, _, err := resolveConfig(flags)
		if err != nil {
			return err
		}
		if config.DBPath == "" {
			return fmt.Errorf("no database given: pass --db or set SIFT_DB")
		}

		database, err := db.Open(config.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()

		tables, err := db.ListTables(database)
		if err != nil {
			return err
		}

		return export.ConsoleWriter{}.Write(cmd.OutOrStdout(), grid.New(tablesDataset(tables)), nil)
	},
}

func tablesDataset(tables []model.TableInfo) model.Dataset {
	ds := model.Dataset{
		Name:    "tables",
		Columns: []model.Column{{Name: "table"}, {Name: "columns"}, {Name: "rows"}},
	}
	for _, t := range tables {
		ds.Rows = append(ds.Rows, []string{t.Name, strconv.Itoa(t.Columns), util.FormatCount(int(t.RowCount))})
	}
	return ds
}
