package service_test

import (
	"context"
	"errors"
	"strings"

	"github.com/peeringlatam/network-planner/internal/service"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("report service", Ordered, func() {
	var (
		s   store.Store
		ctx context.Context
	)

	BeforeAll(func() {
		s, _ = newTestStore()
		ctx = context.TODO()

		_, err := s.Product().Upsert(ctx, model.Product{Name: "PMaaS", Description: "tuning", Price: decimal.RequireFromString("500.00")})
		Expect(err).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	DescribeTable("renders the product report",
		func(format, filename, contentType string) {
			svc := service.NewReportService(s, nil)

			rendered, err := svc.GenerateProductReport(ctx, format)
			Expect(err).To(BeNil())
			Expect(rendered.Filename).To(Equal(filename))
			Expect(rendered.ContentType).To(HavePrefix(contentType))
			Expect(rendered.Data).NotTo(BeEmpty())
		},
		Entry("csv", "csv", "reporte_productos.csv", "text/csv"),
		Entry("html", "HTML", "reporte_productos.html", "text/html"),
		Entry("xlsx", "xlsx", "reporte_productos.xlsx", "application/vnd.openxmlformats"),
	)

	It("rejects unsupported formats", func() {
		svc := service.NewReportService(s, nil)

		_, err := svc.GenerateProductReport(ctx, "pdf")
		var unsupported *service.ErrUnsupportedFormat
		Expect(errors.As(err, &unsupported)).To(BeTrue())
	})

	It("archives the rendered report", func() {
		archiver := &fakeArchiver{}
		svc := service.NewReportService(s, archiver)

		_, err := svc.GenerateProductReport(ctx, "csv")
		Expect(err).To(BeNil())
		Expect(archiver.names).To(HaveLen(1))
		Expect(strings.HasPrefix(archiver.names[0], "csv/reporte_productos_")).To(BeTrue())
	})

	It("does not fail when archiving fails", func() {
		svc := service.NewReportService(s, &fakeArchiver{err: errors.New("bucket missing")})

		rendered, err := svc.GenerateProductReport(ctx, "csv")
		Expect(err).To(BeNil())
		Expect(string(rendered.Data)).To(ContainSubstring("PMaaS"))
	})
})
