// Package analysis implements the default analysis entry point. It parses
// the supplied CSV content, derives per-column statistics and a normalized
// series per numeric column, and reports everything through the display
// sink: progress along the way, a plot specification, a summary table and a
// final status line.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/csvscope/csvscope/internal/dataset"
	"github.com/csvscope/csvscope/internal/sink"
)

// ErrNoNumericColumns is returned when the input has nothing to analyze.
var ErrNoNumericColumns = errors.New("no numeric columns found in input")

// ColumnSummary holds the descriptive statistics of one numeric column.
type ColumnSummary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

// Run is the analysis entry point registered under "run_analysis". All
// meaningful output goes through ui; the error return only signals failure
// to the run controller.
func Run(ctx context.Context, content string, ui sink.Sink) error {
	ui.SetStatus("Initializing analysis...")
	ui.UpdateProgress(0)

	ds, err := dataset.Load([]byte(content))
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	ui.UpdateProgress(10)

	cols := ds.NumericColumns()
	if len(cols) == 0 {
		return ErrNoNumericColumns
	}
	ui.SetStatus(fmt.Sprintf("Processing %d rows across %d numeric columns...", len(ds.Records), len(cols)))
	ui.UpdateProgress(30)

	processed := make([]dataset.NumericColumn, len(cols))
	summaries := make([]ColumnSummary, len(cols))
	for i, col := range cols {
		if err := ctx.Err(); err != nil {
			return err
		}
		summaries[i] = Summarize(col)
		processed[i] = dataset.NumericColumn{
			Name:   col.Name,
			Values: Normalize(col.Values),
		}
		ui.UpdateProgress(30 + float64(i+1)*50/float64(len(cols)))
	}

	ui.SetStatus("Rendering results...")

	spec, err := BuildPlotSpec(processed)
	if err != nil {
		return fmt.Errorf("failed to build plot specification: %w", err)
	}
	ui.DisplayPlot(spec)
	ui.UpdateProgress(90)

	table, err := RenderSummaryTable(summaries)
	if err != nil {
		return fmt.Errorf("failed to render summary table: %w", err)
	}
	ui.DisplayTable(table)
	ui.UpdateProgress(100)

	ui.SetStatus("Analysis complete.")
	return nil
}

// Summarize computes descriptive statistics for one column.
func Summarize(col dataset.NumericColumn) ColumnSummary {
	s := ColumnSummary{
		Name:  col.Name,
		Count: len(col.Values),
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
	}

	var sum float64
	for _, v := range col.Values {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(s.Count)

	if s.Count > 1 {
		var sq float64
		for _, v := range col.Values {
			d := v - s.Mean
			sq += d * d
		}
		s.Std = math.Sqrt(sq / float64(s.Count-1))
	}

	return s
}

// Normalize rescales values to the [0, 1] range. A constant series maps
// to all zeros.
func Normalize(values []float64) []float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	out := make([]float64, len(values))
	span := max - min
	if span == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - min) / span
	}
	return out
}
