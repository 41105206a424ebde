package render

import (
	"fmt"
	"html/template"
	"strings"

	"pitch-reports/report"
)

// Movement chart geometry. Break values live comfortably inside +/-25
// inches on both axes.
const (
	chartSize   = 320.0
	chartDomain = 25.0
)

// movementChartSVG renders one pitch type's break scatter as an inline SVG
// so the document needs no external assets when converted to PDF.
func movementChartSVG(chart report.MovementChart) template.HTML {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">`,
		chartSize, chartSize, chartSize, chartSize)
	b.WriteString(`<rect width="100%" height="100%" fill="#fafafa" stroke="#ccc"/>`)

	// Axes through the origin.
	mid := chartSize / 2
	fmt.Fprintf(&b, `<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f" stroke="#ddd"/>`, mid, chartSize, mid)
	fmt.Fprintf(&b, `<line x1="%.1f" y1="0" x2="%.1f" y2="%.0f" stroke="#ddd"/>`, mid, mid, chartSize)

	if chart.Ellipse != nil && len(chart.Ellipse.Points) > 0 {
		b.WriteString(`<polyline fill="#1f77b422" stroke="#1f77b4" stroke-width="1" points="`)
		for i, p := range chart.Ellipse.Points {
			if i > 0 {
				b.WriteByte(' ')
			}
			x, y := toChart(p)
			fmt.Fprintf(&b, "%.1f,%.1f", x, y)
		}
		b.WriteString(`"/>`)
	}

	for _, p := range chart.Points {
		x, y := toChart(p)
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="3" fill="#1f77b4"/>`, x, y)
	}

	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

// toChart maps break coordinates (inches) to SVG pixel space. SVG y grows
// downward, so vertical break is flipped.
func toChart(p report.Point) (float64, float64) {
	scale := chartSize / (2 * chartDomain)
	x := (p.X + chartDomain) * scale
	y := (chartDomain - p.Y) * scale
	return x, y
}
