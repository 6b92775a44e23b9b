package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/recap-build/gometastore/metastore"
)

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List databases.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetastore(cmd, func(ctx context.Context, m *metastore.Metastore) error {
			databases, err := m.ListDatabases(ctx)
			if err != nil {
				return err
			}
			rows := make([][]interface{}, len(databases))
			for i := range databases {
				rows[i] = []interface{}{databases[i]}
			}
			return printRows(cmd, []string{"database"}, rows)
		})
	},
}

var databaseCmd = &cobra.Command{
	Use:   "database NAME",
	Short: "Show a database.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetastore(cmd, func(ctx context.Context, m *metastore.Metastore) error {
			db, err := m.GetDatabase(ctx, args[0])
			if err != nil {
				return err
			}
			var ownerType interface{}
			if db.OwnerType != nil {
				ownerType = string(*db.OwnerType)
			}
			return printRows(cmd,
				[]string{"name", "location", "owner", "owner_type", "comment", "parameters"},
				[][]interface{}{{db.Name, db.Location, db.OwnerName, ownerType, db.Comment, db.Parameters}},
			)
		})
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables DATABASE",
	Short: "List tables of a database.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetastore(cmd, func(ctx context.Context, m *metastore.Metastore) error {
			tables, err := m.ListTables(ctx, args[0])
			if err != nil {
				return err
			}
			rows := make([][]interface{}, len(tables))
			for i := range tables {
				rows[i] = []interface{}{tables[i]}
			}
			return printRows(cmd, []string{"table"}, rows)
		})
	},
}

var columnsCmd = &cobra.Command{
	Use:   "columns DATABASE TABLE",
	Short: "List the data columns of a table.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetastore(cmd, func(ctx context.Context, m *metastore.Metastore) error {
			columns, err := m.ListColumns(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			rows := make([][]interface{}, len(columns))
			for i := range columns {
				rows[i] = []interface{}{columns[i]}
			}
			return printRows(cmd, []string{"column"}, rows)
		})
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe DATABASE TABLE",
	Short: "Describe the columns and partition keys of a table with their parsed types.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetastore(cmd, func(ctx context.Context, m *metastore.Metastore) error {
			table, err := m.GetTable(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			var rows [][]interface{}
			describeColumns := func(columns []metastore.Column, partition bool) {
				for _, column := range columns {
					rows = append(rows, []interface{}{
						column.Name,
						column.Type,
						column.Type.Category().String(),
						column.Comment,
						partition,
					})
				}
			}
			describeColumns(table.Columns, false)
			describeColumns(table.PartitionColumns, true)
			return printRows(cmd, []string{"name", "type", "category", "comment", "partition_key"}, rows)
		})
	},
}

func init() {
	rootCmd.AddCommand(databasesCmd)
	rootCmd.AddCommand(databaseCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(describeCmd)
}
