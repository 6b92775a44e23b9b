package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/recap-build/gometastore/config"
	"github.com/recap-build/gometastore/hms"
	"github.com/recap-build/gometastore/hmsdb"
	"github.com/recap-build/gometastore/logs"
	"github.com/recap-build/gometastore/metastore"
	"github.com/recap-build/gometastore/outputs/formats"
)

var configPath string
var address string
var backend string
var output string
var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gometastore",
	Short: "Browse a Hive metastore and parse Hive type strings.",
	Example: `gometastore databases
gometastore describe sales orders --output json
gometastore partitions sales orders --max 10
gometastore parse "struct<a:int,b:map<string,decimal(20,10)>>"`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logs.InitializeStderrLogger()
		} else {
			logs.InitializeFileLogger()
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logs.CloseLogger()
	},
}

func Execute(ctx context.Context) {
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the configuration file.")
	rootCmd.PersistentFlags().StringVar(&address, "address", "", "Metastore address, overrides the configuration file.")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Catalog backend: thrift or postgres.")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format: table, json or csv.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr instead of the log file.")
}

// openCatalog connects to the configured backend.
var openCatalog = func(ctx context.Context, s *settings) (metastore.Catalog, error) {
	switch s.Backend {
	case backendPostgres:
		catalog, err := hmsdb.NewCatalog(&s.Postgres)
		if err != nil {
			return nil, err
		}
		return catalog, nil
	default:
		client, err := hms.Dial(ctx, s.Thrift)
		if err != nil {
			if clientErr, ok := err.(*hms.ClientError); ok {
				return nil, clientErr.WithContextDescription(fmt.Sprintf("metastore at %s", s.Thrift.Address))
			}
			return nil, err
		}
		return client, nil
	}
}

func openMetastore(ctx context.Context) (*metastore.Metastore, error) {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't read config: %w", err)
	}
	s, err := loadSettings(cfg, address, backend)
	if err != nil {
		return nil, fmt.Errorf("couldn't load settings: %w", err)
	}
	log.Printf("using %s backend", s.Backend)

	catalog, err := openCatalog(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("couldn't open catalog: %w", err)
	}
	m, err := metastore.New(catalog, s.Metastore)
	if err != nil {
		catalog.Close()
		return nil, fmt.Errorf("couldn't create metastore: %w", err)
	}
	return m, nil
}

// withMetastore runs fn against a fresh metastore session and closes it afterwards.
func withMetastore(cmd *cobra.Command, fn func(ctx context.Context, m *metastore.Metastore) error) (outErr error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	m, err := openMetastore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			if outErr == nil {
				outErr = fmt.Errorf("couldn't close metastore: %w", err)
			}
		}
	}()
	return fn(ctx, m)
}

// printRows writes a header and rows in the selected output format.
func printRows(cmd *cobra.Command, fields []string, rows [][]interface{}) error {
	formatter, err := formats.NewFormatter(output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	formatter.SetSchema(fields)
	for _, row := range rows {
		if err := formatter.Write(row); err != nil {
			return fmt.Errorf("couldn't write row: %w", err)
		}
	}
	return formatter.Close()
}
