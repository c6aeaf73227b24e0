package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"reflectdoc/internal/logger"
)

var (
	rootCmd = &cobra.Command{
		Use:           "reflectdoc",
		Short:         "Generate TypeScript API documentation from reflection data",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(verbose, jsonLogs)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errors.WithHint(errors.Newf("unknown command %q", args[0]), "run `reflectdoc help` for the list of commands")
			}
			return cmd.Help()
		},
	}

	configPath string
	verbose    bool
	jsonLogs   bool
)

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Printf("   hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project file (default <path>/reflectdoc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug messages")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(scanCmd)
}
