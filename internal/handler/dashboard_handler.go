package handler

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pravaah/internal/export"
	"pravaah/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler serves the log-store aggregates and exports.
type DashboardHandler struct {
	dashboardService service.DashboardService
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

// Summary handles GET /dashboard-data
// @Summary Dashboard data
// @Description KPIs, document type distribution and the top 5 vendors by summed amount. An empty log yields {"kpis":{},"charts":{}}.
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse "Dashboard aggregates"
// @Router /dashboard-data [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	RespondOK(c, h.dashboardService.Summary(c.Request.Context()))
}

// Export handles GET /dashboard-data/export
// @Summary Export processed logs
// @Description Download every log record as CSV or XLSX
// @Tags dashboard
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Success 200 {file} file "Log export"
// @Failure 400 {object} ErrorResponseBody "Unknown format"
// @Failure 500 {object} ErrorResponseBody "Log store unavailable"
// @Router /dashboard-data/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be 'csv' or 'xlsx'")
		return
	}

	records, err := h.dashboardService.Records(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = xlsxContentType
		err = export.WriteXLSX(&buf, records)
	} else {
		err = export.WriteCSV(&buf, records)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := "processed_logs_" + h.now().UTC().Format("20060102") + "." + format
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
