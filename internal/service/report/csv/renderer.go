package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/peeringlatam/network-planner/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *Renderer) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var csvRows [][]string

	csvRows = append(csvRows, []string{data.Title})
	csvRows = append(csvRows, []string{fmt.Sprintf("Generado: %s a las %s",
		data.Timestamps.Generated, data.Timestamps.GeneratedTime)})
	csvRows = append(csvRows, []string{""})

	csvRows = r.addProducts(csvRows, data.Products)
	csvRows = r.addSummary(csvRows, data.Summary)

	return r.convertRowsToCSV(csvRows)
}

func (r *Renderer) addProducts(csvRows [][]string, products []types.ProductRow) [][]string {
	csvRows = append(csvRows, []string{"ID", "Nombre", "Descripción", "Precio", "Imágenes"})

	if len(products) == 0 {
		csvRows = append(csvRows, []string{"No hay productos registrados"})
	}
	for _, p := range products {
		csvRows = append(csvRows, []string{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			p.Description,
			p.Price.StringFixed(2),
			fmt.Sprintf("%d", p.ImageCount),
		})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) addSummary(csvRows [][]string, s types.ProductSummary) [][]string {
	csvRows = append(csvRows, []string{"RESUMEN"})
	csvRows = append(csvRows, []string{"Total de productos", fmt.Sprintf("%d", s.TotalProducts)})
	csvRows = append(csvRows, []string{"Valor total", s.TotalValue.StringFixed(2)})
	csvRows = append(csvRows, []string{"Precio promedio", s.AveragePrice.StringFixed(2)})
	csvRows = append(csvRows, []string{"Precio mínimo", s.MinPrice.StringFixed(2)})
	csvRows = append(csvRows, []string{"Precio máximo", s.MaxPrice.StringFixed(2)})

	return csvRows
}

func (r *Renderer) convertRowsToCSV(csvRows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range csvRows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}
