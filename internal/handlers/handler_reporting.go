package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/middleware"
	"github.com/minimarketpos/pos_backend/internal/utils/export"
)

const reportDateLayout = "2006-01-02"

// reportingHandler handles HTTP requests for the dashboard and reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(reportingService portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// registerReportingRoutes sets up the dashboard and report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	rg.GET("/dashboard", h.getDashboard)

	reports := rg.Group("/reports")
	{
		reports.GET("/sales", h.getSalesReport)
		reports.GET("/sales/export", h.exportSalesReport)
		reports.GET("/top-products", h.getTopProducts)
	}
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Aggregate counters for today and the current month
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.GetDashboardSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute dashboard summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}

// bindReportPeriod parses the from/to query parameters shared by the report
// endpoints. Replies with 400 and returns false when the range is unusable.
func bindReportPeriod(c *gin.Context, params *dto.ReportPeriodParams) (time.Time, time.Time, bool) {
	from, err := time.Parse(reportDateLayout, params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(reportDateLayout, params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// getSalesReport godoc
// @Summary Per-day sales report
// @Description Daily transaction count, units and revenue over the period
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.SalesReportResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Router /reports/sales [get]
func (h *reportingHandler) getSalesReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both 'from' and 'to' dates are required"})
		return
	}

	from, to, ok := bindReportPeriod(c, &params)
	if !ok {
		return
	}

	rows, err := h.reportingService.GetSalesReport(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build sales report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSalesReportResponse(from, to, rows))
}

// exportSalesReport godoc
// @Summary Export the sales report as CSV
// @Tags reports
// @Produce text/csv
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD), inclusive"
// @Success 200 {string} string "CSV attachment"
// @Failure 400 {object} map[string]string "Invalid date range"
// @Router /reports/sales/export [get]
func (h *reportingHandler) exportSalesReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both 'from' and 'to' dates are required"})
		return
	}

	from, to, ok := bindReportPeriod(c, &params)
	if !ok {
		return
	}

	rows, err := h.reportingService.GetSalesReport(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build sales report for export", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales report"})
		return
	}

	filename := "sales_" + params.From + "_" + params.To + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := export.WriteSalesReportCSV(c.Writer, rows); err != nil {
		// Headers are already out, all we can do is log
		logger.Error("Failed to stream sales report CSV", slog.String("error", err.Error()))
	}
}

// getTopProducts godoc
// @Summary Best selling products
// @Description Products ranked by units sold over the period
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD), inclusive"
// @Param limit query int false "Result cap" default(10)
// @Success 200 {array} dto.TopProductRowResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Router /reports/top-products [get]
func (h *reportingHandler) getTopProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TopProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both 'from' and 'to' dates are required"})
		return
	}

	from, to, ok := bindReportPeriod(c, &params.ReportPeriodParams)
	if !ok {
		return
	}

	rows, err := h.reportingService.GetTopProducts(c.Request.Context(), from, to, params.Limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build top products report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build top products report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTopProductResponses(rows))
}
