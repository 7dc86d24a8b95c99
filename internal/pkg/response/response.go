// Package response writes every JSON reply in the same envelope:
// {success, message, data | errors, timestamp[, pagination]}.
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SuccessBody always carries the data key, even when data is nil.
type SuccessBody struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data"`
	Timestamp  string      `json:"timestamp"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorBody always carries the errors key and never the data key.
type ErrorBody struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Errors    any    `json:"errors"`
	Timestamp string `json:"timestamp"`
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
	NextPage     *int  `json:"nextPage"`
	PrevPage     *int  `json:"prevPage"`
}

var now = time.Now

func timestamp() string {
	return now().UTC().Format(TimestampLayout)
}

// NewPagination computes the pagination block. With total=0 there are zero
// pages and neither neighbour exists, whatever page was requested.
func NewPagination(page, limit int, total int64) Pagination {
	p := Pagination{
		CurrentPage:  page,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
	if limit > 0 && total > 0 {
		p.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	if p.TotalPages > 0 {
		p.HasNextPage = page < p.TotalPages
		p.HasPrevPage = page > 1
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}

func NewSuccessBody(data any, message string) SuccessBody {
	if message == "" {
		message = "Success"
	}
	return SuccessBody{Success: true, Message: message, Data: data, Timestamp: timestamp()}
}

func NewErrorBody(message string, errs any) ErrorBody {
	if message == "" {
		message = "Internal server error"
	}
	return ErrorBody{Success: false, Message: message, Errors: errs, Timestamp: timestamp()}
}

// Success writes a success envelope. status defaults to 200; anything outside
// {200, 201, 204} is coerced to 200.
func Success(c *gin.Context, data any, message string, status ...int) {
	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	switch code {
	case http.StatusNoContent:
		NoContent(c)
		return
	case http.StatusOK, http.StatusCreated:
	default:
		code = http.StatusOK
	}
	c.JSON(code, NewSuccessBody(data, message))
}

// Error writes an error envelope. status defaults to 500 and anything below
// 400 is coerced to 500.
func Error(c *gin.Context, message string, status int, errs any) {
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.JSON(status, NewErrorBody(message, errs))
}

func Paginated(c *gin.Context, data any, page, limit int, total int64, message string) {
	body := NewSuccessBody(data, message)
	p := NewPagination(page, limit, total)
	body.Pagination = &p
	c.JSON(http.StatusOK, body)
}

func Created(c *gin.Context, data any, message string) {
	if message == "" {
		message = "Resource created successfully"
	}
	Success(c, data, message, http.StatusCreated)
}

// NoContent writes the 204 header at once.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, message, http.StatusNotFound, nil)
}

func BadRequest(c *gin.Context, message string, errs any) {
	if message == "" {
		message = "Bad request"
	}
	Error(c, message, http.StatusBadRequest, errs)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	Error(c, message, http.StatusUnauthorized, nil)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access forbidden"
	}
	Error(c, message, http.StatusForbidden, nil)
}

func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	Error(c, message, http.StatusConflict, nil)
}

func ValidationError(c *gin.Context, message string, errs any) {
	if message == "" {
		message = "Validation failed"
	}
	Error(c, message, http.StatusUnprocessableEntity, errs)
}

func RateLimited(c *gin.Context, message string) {
	if message == "" {
		message = "Too many requests, please try again later"
	}
	Error(c, message, http.StatusTooManyRequests, nil)
}

func ServerError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(c, message, http.StatusInternalServerError, nil)
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message string, errs any) {
	Error(c, message, status, errs)
	c.Abort()
}
