package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/service"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/response"
)

// LogHandler raw log endpoints
type LogHandler struct {
	logSvc service.LogService
}

// NewLogHandler creates a LogHandler
func NewLogHandler(logSvc service.LogService) *LogHandler {
	return &LogHandler{logSvc: logSvc}
}

// ListDay
// GET /api/v1/categories/:category/logs?date=YYYY-MM-DD&tz=Area/City
func (h *LogHandler) ListDay(c *gin.Context) {
	var q dto.DayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.logSvc.ListDay(c.Request.Context(), c.Param("category"), &q)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Clear deletes a category's whole log
// DELETE /api/v1/categories/:category/logs  {"confirm": true}
func (h *LogHandler) Clear(c *gin.Context) {
	if !mustConfirm(c) {
		return
	}

	result, err := h.logSvc.Clear(c.Request.Context(), c.Param("category"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}
