package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/report"
	"github.com/kitabonkesaar/attendance-app-saas/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlyPerformance(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	EmployeeMonth(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// MonthlyPerformance implements ReportHandler.
func (h *reportHandlerImpl) MonthlyPerformance(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.MonthlyPerformance(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCSV implements ReportHandler. The file is served directly, not
// wrapped in the JSON envelope.
func (h *reportHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	data, err := h.reportService.ExportCSV(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%04d-%02d.csv", year, int(month))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// EmployeeMonth implements ReportHandler.
func (h *reportHandlerImpl) EmployeeMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.EmployeeMonth(r.Context(), chi.URLParam(r, "id"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parseYearMonth reads year/month query params, defaulting to the
// current month. It writes the error response itself on bad input.
func parseYearMonth(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	now := time.Now()
	year := getIntQueryParam(r, "year", now.Year())
	monthInt := getIntQueryParam(r, "month", int(now.Month()))

	if year < 2000 || year > 2100 {
		response.BadRequest(w, "Invalid year", nil)
		return 0, 0, false
	}
	if monthInt < 1 || monthInt > 12 {
		response.BadRequest(w, "Invalid month", nil)
		return 0, 0, false
	}

	return year, time.Month(monthInt), true
}
