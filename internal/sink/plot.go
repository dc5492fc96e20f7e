package sink

import (
	"encoding/json"
	"errors"
	"fmt"
)

// PlotSpec is the wire format of the plot region: a Plotly-style document
// of traces plus an optional layout.
type PlotSpec struct {
	Data   []Trace        `json:"data"`
	Layout map[string]any `json:"layout,omitempty"`
}

// Trace is one series of a plot specification.
type Trace struct {
	X    []any  `json:"x,omitempty"`
	Y    []any  `json:"y,omitempty"`
	Type string `json:"type,omitempty"`
	Mode string `json:"mode,omitempty"`
	Name string `json:"name,omitempty"`
}

// ParsePlotSpec validates spec as a plot specification and returns the raw
// JSON for re-broadcast. Structural problems (not JSON, no traces) are
// reported as errors; trace contents are trusted.
func ParsePlotSpec(spec string) (json.RawMessage, error) {
	var parsed PlotSpec
	if err := json.Unmarshal([]byte(spec), &parsed); err != nil {
		return nil, fmt.Errorf("invalid plot specification: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, errors.New("plot specification has no traces")
	}
	return json.RawMessage(spec), nil
}
