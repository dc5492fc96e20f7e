package analysis

import (
	"encoding/json"
	"errors"

	"github.com/csvscope/csvscope/internal/dataset"
)

type plotTrace struct {
	X    []int     `json:"x"`
	Y    []float64 `json:"y"`
	Type string    `json:"type"`
	Mode string    `json:"mode"`
	Name string    `json:"name"`
}

type plotAxis struct {
	Title string `json:"title"`
}

type plotLayout struct {
	Title string   `json:"title"`
	XAxis plotAxis `json:"xaxis"`
	YAxis plotAxis `json:"yaxis"`
}

type plotDocument struct {
	Data   []plotTrace `json:"data"`
	Layout plotLayout  `json:"layout"`
}

// BuildPlotSpec serializes the processed series as a Plotly-style plot
// specification: one line trace per column, indexed on the x axis.
func BuildPlotSpec(cols []dataset.NumericColumn) (string, error) {
	if len(cols) == 0 {
		return "", errors.New("no series to plot")
	}

	doc := plotDocument{
		Layout: plotLayout{
			Title: "Data Analysis Result",
			XAxis: plotAxis{Title: "Index"},
			YAxis: plotAxis{Title: "Value"},
		},
	}

	for _, col := range cols {
		trace := plotTrace{
			X:    make([]int, len(col.Values)),
			Y:    col.Values,
			Type: "scatter",
			Mode: "lines",
			Name: col.Name,
		}
		for i := range trace.X {
			trace.X[i] = i
		}
		doc.Data = append(doc.Data, trace)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
