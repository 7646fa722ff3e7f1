package response

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Envelope codes. 0 is success; the leading digit groups the failure:
// 1 request/auth, 2 punch and roster, 3 store, 4 import, 5 export/internal.
const (
	CodeOK = 0

	CodeInvalidParams   = 10001
	CodeUnauthenticated = 10002
	CodeForbidden       = 10003
	CodeRateLimited     = 10004
	CodeBodyTooLarge    = 10005
	CodeInvalidPassword = 11001

	CodeMissingName       = 20001
	CodeMissingEmployeeID = 20002
	CodeUnknownEmployee   = 20003
	CodeUnknownCategory   = 20004
	CodeConfirmRequired   = 20005
	CodeEmployeeNotFound  = 20006

	CodeStoreWriteFailed = 30001
	CodeStoreReadFailed  = 30002

	CodeImportParseFailed = 40001
	CodeImportEmpty       = 40002

	CodeInternal    = 50000
	CodeExportEmpty = 50001
)

// Response JSON envelope of every API answer except file downloads
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Pagination page metadata
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PageData one page of a list
type PageData struct {
	List       interface{} `json:"list"`
	Pagination Pagination  `json:"pagination"`
}

// ── success ──

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Code: CodeOK, Message: "success", Data: data})
}

// OK 200
func OK(c *gin.Context, data interface{}) { success(c, http.StatusOK, data) }

// Created 201; a punch answers with this once it is applied locally.
func Created(c *gin.Context, data interface{}) { success(c, http.StatusCreated, data) }

// OKPage 200 with list wrapped in page metadata
func OKPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	success(c, http.StatusOK, PageData{
		List: list,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: pages,
		},
	})
}

// Attachment streams a file download. The name is sent RFC 5987 encoded so
// dates and spaces survive.
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}

// ── errors ──

// Error writes a failure envelope and aborts the chain.
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, Response{Code: code, Message: message})
}

// ErrorWithDetails like Error, with the underlying cause in details
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.AbortWithStatusJSON(httpStatus, Response{Code: code, Message: message, Details: details})
}

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401 CodeUnauthenticated
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthenticated, message)
}

// Forbidden 403 CodeForbidden
func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, CodeForbidden, "forbidden")
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// TooLarge 413 CodeBodyTooLarge
func TooLarge(c *gin.Context) {
	Error(c, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "request body too large")
}

// TooManyRequests 429 CodeRateLimited
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, CodeRateLimited, "too many requests, try again later")
}

// ServiceUnavailable 503, used for store outages the client may retry
func ServiceUnavailable(c *gin.Context, code int, message string) {
	Error(c, http.StatusServiceUnavailable, code, message)
}

// InternalError 500 CodeInternal
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
