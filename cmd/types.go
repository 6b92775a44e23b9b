package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valyala/fastjson"

	"github.com/recap-build/gometastore/config"
	"github.com/recap-build/gometastore/htypes"
)

var maxDepth int

// parserOptions applies the parser limits from the configuration file. The --max-depth flag wins when given.
func parserOptions(cmd *cobra.Command) ([]htypes.ParserOption, error) {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't read config: %w", err)
	}
	depth, length, err := loadParserLimits(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't load settings: %w", err)
	}
	if cmd.Flags().Changed("max-depth") {
		depth = maxDepth
	}
	return []htypes.ParserOption{htypes.WithMaxDepth(depth), htypes.WithMaxLength(length)}, nil
}

var parseCmd = &cobra.Command{
	Use:   "parse TYPE",
	Short: "Parse a Hive type string without connecting to the metastore.",
	Example: `gometastore parse "decimal(20,10)"
gometastore parse "uniontype<int,string>" --output json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parserOptions(cmd)
		if err != nil {
			return err
		}
		t, err := htypes.Parse(args[0], opts...)
		if err != nil {
			return err
		}
		// The JSON output renders the type itself as a structured descriptor.
		var descriptor interface{} = t
		if output != "json" {
			var arena fastjson.Arena
			descriptor = string(htypes.DescriptorToJSON(&arena, htypes.ToDescriptor(t)).MarshalTo(nil))
		}
		return printRows(cmd,
			[]string{"canonical", "name", "category", "descriptor"},
			[][]interface{}{{t.String(), t.Name(), t.Category().String(), descriptor}},
		)
	},
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize TYPE",
	Short: "Show the tokens of a Hive type string.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens := htypes.Tokenize(args[0])
		rows := make([][]interface{}, len(tokens))
		for i, token := range tokens {
			rows[i] = []interface{}{token.Position, token.Text, token.IsWord}
		}
		return printRows(cmd, []string{"position", "text", "word"}, rows)
	},
}

func init() {
	parseCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum nesting depth, 0 means no limit. Overrides parser.maxDepth from the configuration file.")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(tokenizeCmd)
}
