package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bidapos/internal/services"
	"bidapos/internal/utils"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Summary returns aggregate revenue for the range, defaulting to today
func (h *ReportHandler) Summary(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Revenue summary", summary)
}

func (h *ReportHandler) RevenueByDay(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	days, err := h.reportService.RevenueByDay(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Daily revenue", days)
}

func (h *ReportHandler) RevenueByTable(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	tables, err := h.reportService.RevenueByTable(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Revenue by table", tables)
}

// TopProducts ranks product sales in the range. "by" selects the metric
// (qty or amount) and "limit" caps the row count.
func (h *ReportHandler) TopProducts(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	by := c.DefaultQuery("by", "qty")

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.BadRequestResponse(c, "limit must be a number")
			return
		}
		limit = parsed
	}

	products, err := h.reportService.TopProducts(c.Request.Context(), from, to, by, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Top products", gin.H{
		"metric": by,
		"items":  products,
	})
}

func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	var from, to time.Time

	if ptr, ok := parseTimeQuery(c, "from", false); !ok {
		return from, to, false
	} else if ptr != nil {
		from = *ptr
	}

	if ptr, ok := parseTimeQuery(c, "to", true); !ok {
		return from, to, false
	} else if ptr != nil {
		to = *ptr
	}

	return from, to, true
}
