package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/peeringlatam/network-planner/internal/service/report"
	"github.com/peeringlatam/network-planner/internal/service/report/csv"
	"github.com/peeringlatam/network-planner/internal/service/report/html"
	"github.com/peeringlatam/network-planner/internal/service/report/types"
	"github.com/peeringlatam/network-planner/internal/service/report/xlsx"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/pkg/log"
)

type ReportRenderer = types.ReportRenderer
type ReportFormat = types.ReportFormat
type ReportData = types.ReportData

const (
	ReportFormatCSV  = types.ReportFormatCSV
	ReportFormatHTML = types.ReportFormatHTML
	ReportFormatXLSX = types.ReportFormatXLSX

	productReportBaseName = "reporte_productos"
)

// Report is a rendered report ready to be served as an attachment.
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ReportService struct {
	store     store.Store
	processor *report.ProductProcessor
	renderers map[types.ReportFormat]types.ReportRenderer
	archiver  report.Archiver
	logger    *log.StructuredLogger
}

// NewReportService registers the csv, html and xlsx renderers. archiver may be nil.
func NewReportService(store store.Store, archiver report.Archiver) *ReportService {
	service := &ReportService{
		store:     store,
		processor: report.NewProductProcessor(FeedProvider),
		renderers: make(map[types.ReportFormat]types.ReportRenderer),
		archiver:  archiver,
		logger:    log.NewDebugLogger("report_service"),
	}

	service.Register(csv.NewRenderer())
	service.Register(html.NewRenderer())
	service.Register(xlsx.NewRenderer())

	return service
}

// Register adds or replaces the renderer of its format.
func (r *ReportService) Register(renderer types.ReportRenderer) {
	r.renderers[renderer.SupportedFormat()] = renderer
}

func (r *ReportService) GenerateProductReport(ctx context.Context, format string) (*Report, error) {
	tracer := r.logger.WithContext(ctx).Operation("generate_product_report").
		WithString("format", format).
		Build()

	renderer, exists := r.renderers[types.ReportFormat(strings.ToLower(format))]
	if !exists {
		err := NewErrUnsupportedFormat(format)
		tracer.Error(err).Log()
		return nil, err
	}

	products, err := r.store.Product().List(ctx, store.NewQueryOptions().WithSortOrder(store.SortByID))
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	data, err := renderer.Render(r.processor.Process(products))
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	rendered := &Report{
		Filename:    fmt.Sprintf("%s.%s", productReportBaseName, renderer.SupportedFormat()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}

	if r.archiver != nil {
		name := fmt.Sprintf("%s/%s_%s.%s", renderer.SupportedFormat(), productReportBaseName,
			time.Now().UTC().Format("20060102T150405Z"), renderer.SupportedFormat())
		if err := r.archiver.Archive(ctx, name, rendered.ContentType, data); err != nil {
			tracer.Step("archive_failed").WithString("error", err.Error()).Log()
		} else {
			tracer.Step("archived").WithString("object", name).Log()
		}
	}

	tracer.Success().WithInt("products", len(products)).WithInt("bytes", len(data)).Log()
	return rendered, nil
}
