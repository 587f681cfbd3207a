package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loftpos/concessions-api/internal/application/service"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/response"
)

// ReportHandler handles sales reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// dateRange reads start_date/end_date query params, defaulting to the
// current day
func dateRange(c *gin.Context) service.DateRange {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	if s := parseDate(c.Query("start_date")); s != nil {
		start = *s
	}
	if e := endOfDay(parseDate(c.Query("end_date"))); e != nil {
		end = *e
	}
	return service.DateRange{Start: start, End: end}
}

// Sales handles the combined sales report
func (h *ReportHandler) Sales(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("top_limit", "10"))

	report, err := h.reportService.SalesReport(c.Request.Context(), dateRange(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report generated successfully", report)
}

// TopProducts handles the best sellers report
func (h *ReportHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, err := h.reportService.TopProducts(c.Request.Context(), dateRange(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top products retrieved successfully", items)
}

// Payments handles the payment method breakdown report
func (h *ReportHandler) Payments(c *gin.Context) {
	breakdown, err := h.reportService.PaymentBreakdown(c.Request.Context(), dateRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment breakdown retrieved successfully", breakdown)
}
