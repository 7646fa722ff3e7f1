package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/service"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/response"
)

// ReportHandler daily report endpoints
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Daily
// GET /api/v1/categories/:category/reports/daily?date=&tz=&include_jacket=
func (h *ReportHandler) Daily(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.reportSvc.Daily(c.Request.Context(), c.Param("category"), &q)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Export downloads the daily report as xlsx
// GET /api/v1/categories/:category/reports/daily/export?date=&tz=&include_jacket=
func (h *ReportHandler) Export(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	buf, filename, err := h.reportSvc.Export(c.Request.Context(), c.Param("category"), &q)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendAttachment(c, buf, filename)
}
