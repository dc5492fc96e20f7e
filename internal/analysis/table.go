package analysis

import (
	"html/template"
	"strings"
)

// summaryTemplate renders the statistics table handed to the table region.
// Cell values are escaped here; the sink treats the result as trusted
// markup from then on.
var summaryTemplate = template.Must(template.New("summary").Parse(`<table class="summary-table">
<thead><tr><th>Column</th><th>Count</th><th>Mean</th><th>Std</th><th>Min</th><th>Max</th></tr></thead>
<tbody>
{{- range . }}
<tr><td>{{ .Name }}</td><td>{{ .Count }}</td><td>{{ printf "%.4f" .Mean }}</td><td>{{ printf "%.4f" .Std }}</td><td>{{ printf "%.4f" .Min }}</td><td>{{ printf "%.4f" .Max }}</td></tr>
{{- end }}
</tbody>
</table>`))

// RenderSummaryTable produces the pre-rendered HTML for DisplayTable.
func RenderSummaryTable(summaries []ColumnSummary) (string, error) {
	var out strings.Builder
	if err := summaryTemplate.Execute(&out, summaries); err != nil {
		return "", err
	}
	return out.String(), nil
}
