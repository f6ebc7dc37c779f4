package html

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/peeringlatam/network-planner/internal/service/report/types"
)

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>{{.CSS}}</style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p class="meta">{{.Provider}} · Generado el {{.Timestamps.Generated}} a las {{.Timestamps.GeneratedTime}}</p>
  <table>
    <thead>
      <tr><th>ID</th><th>Nombre</th><th>Descripción</th><th class="num">Precio (USD)</th></tr>
    </thead>
    <tbody>
    {{- range .Products}}
      <tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Description}}</td><td class="num">{{.Price.StringFixed 2}}</td></tr>
    {{- else}}
      <tr><td colspan="4">No hay productos registrados</td></tr>
    {{- end}}
    </tbody>
  </table>
  <h2>Resumen</h2>
  <table class="summary">
    <tr><th>Total de productos</th><td>{{.Summary.TotalProducts}}</td></tr>
    <tr><th>Valor total</th><td>{{.Summary.TotalValue.StringFixed 2}}</td></tr>
    <tr><th>Precio promedio</th><td>{{.Summary.AveragePrice.StringFixed 2}}</td></tr>
  </table>
</body>
</html>
`

const css = `body{font-family:Helvetica,Arial,sans-serif;margin:2em;color:#1f2937}
h1{color:#0b3d91}
.meta{color:#6b7280}
table{border-collapse:collapse;width:100%;margin-bottom:1.5em}
th,td{border:1px solid #d1d5db;padding:6px 10px;text-align:left}
th{background:#0b3d91;color:#fff}
.num{text-align:right}
.summary{width:auto}`

var reportTemplate = template.Must(template.New("report").Parse(htmlReportTemplate))

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatHTML
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type templateData struct {
	*types.ReportData
	CSS template.CSS
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, templateData{ReportData: data, CSS: template.CSS(css)}); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
