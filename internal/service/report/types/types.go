package types

import (
	"github.com/shopspring/decimal"
)

type ReportRenderer interface {
	Render(data *ReportData) ([]byte, error)
	SupportedFormat() ReportFormat
	ContentType() string
}

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatHTML ReportFormat = "html"
	ReportFormatXLSX ReportFormat = "xlsx"
)

type ReportData struct {
	Title      string
	Provider   string
	Products   []ProductRow
	Summary    ProductSummary
	Timestamps ReportTimestamps
}

type ProductRow struct {
	ID          uint
	Name        string
	Description string
	Price       decimal.Decimal
	ImageCount  int
}

type ProductSummary struct {
	TotalProducts int
	TotalValue    decimal.Decimal
	AveragePrice  decimal.Decimal
	MinPrice      decimal.Decimal
	MaxPrice      decimal.Decimal
}

type ReportTimestamps struct {
	Generated     string
	GeneratedTime string
}
