package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Vehicle Tax Results</title>
<style>body{font-family:sans-serif;padding:20px} table{border-collapse:collapse;margin-bottom:12px} td{padding:2px 12px 2px 0} .note{font-style:italic} .grand{font-size:1.4em;font-weight:bold}</style>
</head>
<body>
<h2>Vehicle Tax Calculation Results</h2>
<p>Date: {{.PrintedAt}}</p>
<h3>Vehicle Information</h3>
<table>{{range .Model.Vehicle}}<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>{{end}}</table>
{{- if .Model.CaseMethod}}
<p class="note">{{.Model.CaseMethod}}</p>
{{- end}}
{{- range .Model.Years}}
<h4>{{.FiscalYear}}{{if .RenewalOnly}} (renewal only){{end}}{{if .PenaltyApplied}} (penalty applied){{end}}</h4>
<table>{{range .Amounts}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}</table>
{{- if .Penalties}}
<ul>{{range .Penalties}}<li>{{.Type}}{{if .Rate}} ({{.Rate}}){{end}}: {{.Amount}}</li>{{end}}</ul>
{{- end}}
{{- if .CaseNote}}
<p class="note">{{.CaseNote}}</p>
{{- end}}
{{- end}}
<h3>Total Summary</h3>
<table>{{range .Model.Totals}}<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>{{end}}</table>
<p class="grand">Grand Total: {{.Model.GrandTotal}}</p>
</body>
</html>
`))

// PrintView формирует самостоятельный HTML-документ для печати результата.
// Значения экранируются шаблонизатором.
func PrintView(m DisplayModel, printedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	err := printTemplate.Execute(&buf, struct {
		Model     DisplayModel
		PrintedAt string
	}{
		Model:     m,
		PrintedAt: printedAt.Format("2006-01-02"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render print view: %w", err)
	}
	return buf.Bytes(), nil
}

// PrintFileName имя файла печатной формы вида "vehicle_tax_YYYYMMDD.html".
func PrintFileName(printedAt time.Time) string {
	return fmt.Sprintf("vehicle_tax_%s.html", printedAt.Format("20060102"))
}
