package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/api/middleware"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/service"
	pkgerrors "github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/errors"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/jwt"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MustGetClaims reads the token claims injected by JWTAuth.
// On false a 401 has been written and the caller should return.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		response.Unauthorized(c, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, "not authenticated")
		return nil, false
	}
	return claims, true
}

// mustConfirm enforces {"confirm": true} on irreversible operations.
func mustConfirm(c *gin.Context) bool {
	var req dto.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		response.BadRequest(c, response.CodeConfirmRequired, "this operation cannot be undone; send {\"confirm\": true}")
		return false
	}
	return true
}

// bindError answers a failed bind, telling oversize bodies apart.
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.TooLarge(c)
		return
	}
	response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
}

// sendAttachment writes a spreadsheet download.
func sendAttachment(c *gin.Context, buf *bytes.Buffer, filename string) {
	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

// handleServiceError maps service and store errors onto response codes.
func handleServiceError(c *gin.Context, err error) {
	switch {
	// validation
	case errors.Is(err, service.ErrMissingName):
		response.BadRequest(c, response.CodeMissingName, "name is required")
	case errors.Is(err, service.ErrMissingEmployeeID):
		response.BadRequest(c, response.CodeMissingEmployeeID, "employee id is required")
	case errors.Is(err, service.ErrUnknownEmployee):
		response.BadRequest(c, response.CodeUnknownEmployee, err.Error())
	case errors.Is(err, service.ErrInvalidPunchType),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidTimezone),
		errors.Is(err, service.ErrInvalidImportMode):
		response.BadRequest(c, response.CodeInvalidParams, err.Error())

	// lookups
	case errors.Is(err, service.ErrUnknownCategory):
		response.NotFound(c, response.CodeUnknownCategory, "unknown category")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, response.CodeEmployeeNotFound, "employee not found")

	// spreadsheets
	case errors.Is(err, service.ErrImportParseFailed):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeImportParseFailed, "roster file could not be parsed", err.Error())
	case errors.Is(err, service.ErrImportEmpty):
		response.BadRequest(c, response.CodeImportEmpty, "no employee rows found in file")
	case errors.Is(err, service.ErrExportEmpty):
		response.NotFound(c, response.CodeExportEmpty, "nothing to export for the selected date")

	// auth
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeInvalidPassword, "invalid password")

	// store
	case errors.Is(err, pkgerrors.ErrStoreWriteFailed):
		response.ServiceUnavailable(c, response.CodeStoreWriteFailed, "store write failed, please retry")
	case errors.Is(err, pkgerrors.ErrStoreReadFailed):
		response.ServiceUnavailable(c, response.CodeStoreReadFailed, "store read failed, please retry")

	default:
		response.InternalError(c)
	}
}
