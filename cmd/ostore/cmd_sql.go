package main

import (
	"database/sql"
	"fmt"

	"github.com/FAU-CDI/vobox/internal/export"
	"github.com/FAU-CDI/vobox/internal/status"
	"github.com/spf13/cobra"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/go-sql-driver/mysql"
)

const (
	sqliteMaxQueryVar = 32766
	mysqlMaxQueryVar  = 65535
	defaultBatchSize  = 1000
)

func newSQLCmd(opts *options) *cobra.Command {
	var (
		driver string
		table  string
	)

	cmd := &cobra.Command{
		Use:   "sql dsn",
		Short: "Export all records into an sql database",
		Long:  "Export all records into an sql database.\nFor sqlite, dsn is the path to the database file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var maxQueryVar int
			switch driver {
			case "sqlite":
				maxQueryVar = sqliteMaxQueryVar
			case "mysql":
				maxQueryVar = mysqlMaxQueryVar
			default:
				return fmt.Errorf("unknown driver %q", driver)
			}

			store, st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer store.Disable()

			db, err := sql.Open(driver, args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			exporter := &export.SQL{
				DB:          db,
				Table:       table,
				BatchSize:   defaultBatchSize,
				MaxQueryVar: maxQueryVar,
			}
			if err := st.DoStage(status.StageExportSQL, func() error {
				return exporter.Export(store, st)
			}); err != nil {
				return err
			}

			st.Log("finished", "took", st.Diff())
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "sqlite", "database driver to use, 'sqlite' or 'mysql'")
	cmd.Flags().StringVar(&table, "table", export.DefaultTable, "name of the table to export into")
	return cmd
}
