package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/service"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/response"
)

// EmployeeHandler roster endpoints
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler creates an EmployeeHandler
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// List
// GET /api/v1/employees?page=&page_size=
func (h *EmployeeHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.employeeSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get
// GET /api/v1/employees/:employee_no
func (h *EmployeeHandler) Get(c *gin.Context) {
	result, err := h.employeeSvc.Get(c.Request.Context(), c.Param("employee_no"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Import uploads a roster spreadsheet (multipart field "file")
// POST /api/v1/employees/import?mode=replace|upsert
func (h *EmployeeHandler) Import(c *gin.Context) {
	var q dto.ImportEmployeeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		bindError(c, err)
		return
	}
	file, err := fh.Open()
	if err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "cannot read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.employeeSvc.Import(c.Request.Context(), file, fh.Filename, q.Mode)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Clear removes the whole roster
// DELETE /api/v1/employees  {"confirm": true}
func (h *EmployeeHandler) Clear(c *gin.Context) {
	if !mustConfirm(c) {
		return
	}

	result, err := h.employeeSvc.Clear(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Export downloads the roster as xlsx
// GET /api/v1/employees/export
func (h *EmployeeHandler) Export(c *gin.Context) {
	buf, filename, err := h.employeeSvc.ExportRoster(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendAttachment(c, buf, filename)
}
