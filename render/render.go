// Package render turns assembled reports into HTML documents and PDF
// files.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"pitch-reports/report"
)

//go:embed report.html.tmpl
var reportTemplate string

// metricLabels maps metric keys to column headers.
var metricLabels = map[report.Metric]string{
	report.MetricVelocity:    "Velo (mph)",
	report.MetricMaxVelocity: "Max Velo (mph)",
	report.MetricSpinRate:    "Spin (rpm)",
	report.MetricIVB:         "IVB (in)",
	report.MetricHB:          "HB (in)",
	report.MetricRelHeight:   "Rel Ht (ft)",
	report.MetricRelSide:     "Rel Side (ft)",
	report.MetricExtension:   "Ext (ft)",
}

// Renderer produces report documents.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded report template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"metricLabel":   metricLabel,
		"metrics":       func() []report.Metric { return report.ComparedMetrics },
		"movementChart": movementChartSVG,
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// HTML renders the report document.
func (r *Renderer) HTML(rep *report.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, rep); err != nil {
		return nil, fmt.Errorf("execute report template: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF converts a rendered HTML document to PDF via wkhtmltopdf.
func (r *Renderer) PDF(html []byte) ([]byte, error) {
	gen, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("create pdf generator: %w", err)
	}

	gen.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	gen.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.EnableLocalFileAccess.Set(false)
	gen.AddPage(page)

	if err := gen.Create(); err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return gen.Bytes(), nil
}

// ReportPDF renders and converts in one step.
func (r *Renderer) ReportPDF(rep *report.Report) ([]byte, error) {
	html, err := r.HTML(rep)
	if err != nil {
		return nil, err
	}
	return r.PDF(html)
}

func metricLabel(m report.Metric) string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return string(m)
}
