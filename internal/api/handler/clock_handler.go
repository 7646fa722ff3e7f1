package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/service"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/response"
)

// ClockHandler kiosk endpoints
type ClockHandler struct {
	clockSvc   service.ClockService
	commitWait time.Duration
}

// NewClockHandler creates a ClockHandler
func NewClockHandler(clockSvc service.ClockService, commitWait time.Duration) *ClockHandler {
	return &ClockHandler{clockSvc: clockSvc, commitWait: commitWait}
}

// Categories lists the log partitions
// GET /api/v1/categories
func (h *ClockHandler) Categories(c *gin.Context) {
	response.OK(c, h.clockSvc.Categories())
}

// Punch records a Time-In or Time-Out. The event is stored before the
// response is written; synced tells whether it also reached durable storage
// within the commit wait.
// POST /api/v1/categories/:category/punches
func (h *ClockHandler) Punch(c *gin.Context) {
	var req dto.PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.clockSvc.Punch(c.Request.Context(), c.Param("category"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if h.commitWait > 0 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.commitWait)
		_ = result.Commit.Wait(ctx) // outcome is read by ToPunchResponse
		cancel()
	}

	response.Created(c, service.ToPunchResponse(result))
}
