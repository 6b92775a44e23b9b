package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/recap-build/gometastore/metastore"
)

var maxPartitions int
var partitionDetails bool

var partitionFields = []string{"database", "table", "values", "location", "serde", "input_format", "output_format", "create_time", "catalog", "write_id", "parameters"}

func partitionRow(p *metastore.Partition) []interface{} {
	return []interface{}{
		p.DatabaseName,
		p.TableName,
		p.Values,
		p.Storage.Location,
		p.Storage.Format.Serde,
		p.Storage.Format.InputFormat,
		p.Storage.Format.OutputFormat,
		p.CreateTime,
		p.CatalogName,
		p.WriteID,
		p.Parameters,
	}
}

var partitionsCmd = &cobra.Command{
	Use:   "partitions DATABASE TABLE",
	Short: "List partitions of a table.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetastore(cmd, func(ctx context.Context, m *metastore.Metastore) error {
			if partitionDetails {
				partitions, err := m.GetPartitions(ctx, args[0], args[1], maxPartitions)
				if err != nil {
					return err
				}
				rows := make([][]interface{}, len(partitions))
				for i := range partitions {
					rows[i] = partitionRow(partitions[i])
				}
				return printRows(cmd, partitionFields, rows)
			}

			names, err := m.ListPartitions(ctx, args[0], args[1], maxPartitions)
			if err != nil {
				return err
			}
			rows := make([][]interface{}, len(names))
			for i := range names {
				rows[i] = []interface{}{names[i]}
			}
			return printRows(cmd, []string{"partition"}, rows)
		})
	},
}

var partitionCmd = &cobra.Command{
	Use:   "partition DATABASE TABLE NAME",
	Short: "Show a single partition, e.g. ds=2020-01-01/country=pl.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetastore(cmd, func(ctx context.Context, m *metastore.Metastore) error {
			partition, err := m.GetPartition(ctx, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return printRows(cmd, partitionFields, [][]interface{}{partitionRow(partition)})
		})
	},
}

func init() {
	partitionsCmd.Flags().IntVar(&maxPartitions, "max", -1, "Maximum number of partitions to list, -1 means all.")
	partitionsCmd.Flags().BoolVar(&partitionDetails, "details", false, "Show storage details of every partition.")
	rootCmd.AddCommand(partitionsCmd)
	rootCmd.AddCommand(partitionCmd)
}
