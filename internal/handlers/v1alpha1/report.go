package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/peeringlatam/network-planner/internal/service"
)

// (GET /api/v1/reports/products)
func (h *ServiceHandler) GetProductReport(w http.ResponseWriter, r *http.Request) {
	var param *string
	if !bindQuery(w, r, "format", &param) {
		return
	}
	format := string(service.ReportFormatCSV)
	if param != nil && *param != "" {
		format = *param
	}

	report, err := h.reportSrv.GenerateProductReport(r.Context(), format)
	if err != nil {
		h.respondServiceError(w, r, "get_product_report", err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.Data)
}
