package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/csvscope/csvscope/internal/dataset"
	"github.com/csvscope/csvscope/internal/sink"
)

func TestRunHappyPath(t *testing.T) {
	s := sink.NewStateSink("ready")

	err := Run(context.Background(), "a,b\n1,2\n2,4\n3,6\n", s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	st := s.Snapshot()
	if st.Status != "Analysis complete." {
		t.Errorf("status = %q, want %q", st.Status, "Analysis complete.")
	}
	if st.Error != "" {
		t.Errorf("unexpected error region content: %q", st.Error)
	}
	if st.Plot == nil {
		t.Fatalf("no plot published")
	}

	var doc struct {
		Data []struct {
			Name string    `json:"name"`
			Y    []float64 `json:"y"`
		} `json:"data"`
		Layout struct {
			Title string `json:"title"`
		} `json:"layout"`
	}
	if err := json.Unmarshal(st.Plot, &doc); err != nil {
		t.Fatalf("published plot spec is not valid JSON: %v", err)
	}
	if len(doc.Data) != 2 {
		t.Errorf("traces = %d, want 2", len(doc.Data))
	}
	if doc.Layout.Title != "Data Analysis Result" {
		t.Errorf("layout title = %q", doc.Layout.Title)
	}

	if !strings.Contains(st.Table, "<table") || !strings.Contains(st.Table, "Mean") {
		t.Errorf("table region missing summary markup: %q", st.Table)
	}
}

func TestRunNoNumericColumns(t *testing.T) {
	s := sink.NewStateSink("ready")

	err := Run(context.Background(), "name,note\nalpha,x\n", s)
	if !errors.Is(err, ErrNoNumericColumns) {
		t.Fatalf("err = %v, want ErrNoNumericColumns", err)
	}
}

func TestRunBadContent(t *testing.T) {
	s := sink.NewStateSink("ready")

	if err := Run(context.Background(), "", s); err == nil {
		t.Errorf("expected error for empty content")
	}
	if err := Run(context.Background(), "a,b\n1,2,3\n", s); err == nil {
		t.Errorf("expected error for ragged CSV")
	}
}

func TestSummarize(t *testing.T) {
	col := dataset.NumericColumn{Name: "v", Values: []float64{1, 2, 3, 4}}
	s := Summarize(col)

	if s.Count != 4 {
		t.Errorf("count = %d", s.Count)
	}
	if s.Mean != 2.5 {
		t.Errorf("mean = %v", s.Mean)
	}
	if s.Min != 1 || s.Max != 4 {
		t.Errorf("min/max = %v/%v", s.Min, s.Max)
	}
	// Sample standard deviation of 1..4.
	want := math.Sqrt(5.0 / 3.0)
	if math.Abs(s.Std-want) > 1e-12 {
		t.Errorf("std = %v, want %v", s.Std, want)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]float64{2, 4, 6})
	want := []float64{0, 0.5, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("normalize = %v, want %v", got, want)
		}
	}

	flat := Normalize([]float64{3, 3, 3})
	for _, v := range flat {
		if v != 0 {
			t.Fatalf("constant series should normalize to zeros, got %v", flat)
		}
	}
}

func TestBuildPlotSpecParsesBackThroughSink(t *testing.T) {
	spec, err := BuildPlotSpec([]dataset.NumericColumn{{Name: "v", Values: []float64{0, 1}}})
	if err != nil {
		t.Fatalf("BuildPlotSpec: %v", err)
	}
	if _, err := sink.ParsePlotSpec(spec); err != nil {
		t.Errorf("generated spec rejected by sink: %v", err)
	}
}

func TestRenderSummaryTableEscapesNames(t *testing.T) {
	html, err := RenderSummaryTable([]ColumnSummary{{Name: "<b>x</b>", Count: 1}})
	if err != nil {
		t.Fatalf("RenderSummaryTable: %v", err)
	}
	if strings.Contains(html, "<b>x</b>") {
		t.Errorf("column name not escaped: %q", html)
	}
	if !strings.Contains(html, "&lt;b&gt;x&lt;/b&gt;") {
		t.Errorf("escaped name missing: %q", html)
	}
}
