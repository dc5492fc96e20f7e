package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/csvscope/csvscope/internal/analysis"
	"github.com/csvscope/csvscope/internal/dataset"
)

func analyzeCmd() *cobra.Command {
	var plotOut string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run the analysis pipeline headless and print a summary table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			spinner, _ := pterm.DefaultSpinner.Start("Loading dataset...")
			ds, err := dataset.Load(data)
			if err != nil {
				spinner.Fail(err.Error())
				return err
			}

			cols := ds.NumericColumns()
			if len(cols) == 0 {
				spinner.Fail("no numeric columns found")
				return analysis.ErrNoNumericColumns
			}
			spinner.Success(fmt.Sprintf("Loaded %d rows, %d numeric columns (fingerprint %s)",
				len(ds.Records), len(cols), ds.Fingerprint[:12]))

			summaries := make([]analysis.ColumnSummary, len(cols))
			for i, col := range cols {
				summaries[i] = analysis.Summarize(col)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Append([]string{"Column", "Count", "Mean", "Std", "Min", "Max"})
			for _, s := range summaries {
				table.Append([]string{
					s.Name,
					fmt.Sprintf("%d", s.Count),
					fmt.Sprintf("%.4f", s.Mean),
					fmt.Sprintf("%.4f", s.Std),
					fmt.Sprintf("%.4f", s.Min),
					fmt.Sprintf("%.4f", s.Max),
				})
			}
			table.Render()

			if plotOut != "" {
				spec, err := analysis.BuildPlotSpec(cols)
				if err != nil {
					return fmt.Errorf("failed to build plot specification: %w", err)
				}
				if err := os.WriteFile(plotOut, []byte(spec), 0o644); err != nil {
					return fmt.Errorf("failed to write plot spec: %w", err)
				}
				pterm.Success.Printfln("Plot specification written to %s", plotOut)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&plotOut, "plot-out", "", "Write the Plotly plot specification to this file")

	return cmd
}
