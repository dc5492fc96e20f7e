package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csvscope/csvscope/pkg/env"
	"github.com/csvscope/csvscope/pkg/logging"
)

var debug bool

func main() {
	env.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "csvscope",
		Short: "CSVScope CSV analysis toolkit",
		Long:  `CSVScope analyzes CSV datasets and renders plots and summary tables, either headless or through the browser GUI.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitLogger(debug)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(analyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
