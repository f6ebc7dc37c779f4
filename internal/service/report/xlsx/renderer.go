package xlsx

import (
	"fmt"

	"github.com/peeringlatam/network-planner/internal/service/report/types"
	"github.com/xuri/excelize/v2"
)

const (
	productsSheet = "Productos"
	summarySheet  = "Resumen"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatXLSX
}

func (r *Renderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"0B3D91"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	priceStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	header := []any{"ID", "Nombre", "Descripción", "Precio (USD)", "Imágenes"}
	if err := f.SetSheetRow(productsSheet, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(productsSheet, "A1", "E1", headerStyle); err != nil {
		return nil, err
	}

	for i, p := range data.Products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{p.ID, p.Name, p.Description, p.Price.InexactFloat64(), p.ImageCount}
		if err := f.SetSheetRow(productsSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if n := len(data.Products); n > 0 {
		if err := f.SetCellStyle(productsSheet, "D2", fmt.Sprintf("D%d", n+1), priceStyle); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(productsSheet, "B", "C", 40); err != nil {
		return nil, err
	}

	summary := [][]any{
		{data.Title},
		{"Generado", fmt.Sprintf("%s %s", data.Timestamps.Generated, data.Timestamps.GeneratedTime)},
		{"Total de productos", data.Summary.TotalProducts},
		{"Valor total", data.Summary.TotalValue.InexactFloat64()},
		{"Precio promedio", data.Summary.AveragePrice.InexactFloat64()},
		{"Precio mínimo", data.Summary.MinPrice.InexactFloat64()},
		{"Precio máximo", data.Summary.MaxPrice.InexactFloat64()},
	}
	for i, row := range summary {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
