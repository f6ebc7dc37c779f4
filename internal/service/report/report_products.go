package report

import (
	"time"

	"github.com/peeringlatam/network-planner/internal/service/report/types"
	"github.com/peeringlatam/network-planner/internal/store/model"
	"github.com/shopspring/decimal"
)

const productReportTitle = "Reporte de Productos"

// ProductProcessor turns the catalog into renderer input.
type ProductProcessor struct {
	provider string
	now      func() time.Time
}

func NewProductProcessor(provider string) *ProductProcessor {
	return &ProductProcessor{provider: provider, now: time.Now}
}

func (p *ProductProcessor) Process(products model.ProductList) *types.ReportData {
	now := p.now()
	data := &types.ReportData{
		Title:    productReportTitle,
		Provider: p.provider,
		Products: make([]types.ProductRow, 0, len(products)),
		Timestamps: types.ReportTimestamps{
			Generated:     now.Format("2006-01-02"),
			GeneratedTime: now.Format("15:04:05"),
		},
	}

	summary := types.ProductSummary{
		TotalValue:   decimal.Zero,
		AveragePrice: decimal.Zero,
		MinPrice:     decimal.Zero,
		MaxPrice:     decimal.Zero,
	}
	for i, product := range products {
		data.Products = append(data.Products, types.ProductRow{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			ImageCount:  len(product.Images),
		})

		summary.TotalValue = summary.TotalValue.Add(product.Price)
		if i == 0 || product.Price.LessThan(summary.MinPrice) {
			summary.MinPrice = product.Price
		}
		if i == 0 || product.Price.GreaterThan(summary.MaxPrice) {
			summary.MaxPrice = product.Price
		}
	}

	summary.TotalProducts = len(data.Products)
	if summary.TotalProducts > 0 {
		summary.AveragePrice = summary.TotalValue.Div(decimal.NewFromInt(int64(summary.TotalProducts))).Round(2)
	}
	data.Summary = summary

	return data
}
