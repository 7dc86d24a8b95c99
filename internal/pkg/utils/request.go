// Package utils holds small helpers shared by the HTTP handlers.
package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"brightline/internal/pkg/logger"
	"brightline/internal/pkg/response"
	"brightline/internal/repository"
)

// ParseID reads a positive integer path parameter. On failure it writes a
// 400 envelope and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid ID", []map[string]string{{"field": name, "message": "Must be a positive integer"}})
		return 0, false
	}
	return id, true
}

// ListParams reads page, limit and sort from the query string.
func ListParams(c *gin.Context, defaultLimit int) repository.ListParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return repository.ListParams{
		Page:  page,
		Limit: limit,
		Sort:  strings.TrimSpace(c.Query("sort")),
	}.Normalize(defaultLimit)
}

// QueryBool returns nil when the key is absent or not a boolean.
func QueryBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &b
}

// QueryTime returns nil when the key is absent or unparseable.
func QueryTime(c *gin.Context, key string) *time.Time {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	t, err := ParseTime(raw)
	if err != nil {
		return nil
	}
	return &t
}

// QueryEndTime reads an inclusive upper bound. A plain date covers the whole
// day, so endDate=2024-01-31 includes bookings made that afternoon.
func QueryEndTime(c *gin.Context, key string) *time.Time {
	t := QueryTime(c, key)
	if t == nil {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(c.Query(key))); err == nil {
		end := t.Add(24*time.Hour - time.Nanosecond)
		return &end
	}
	return t
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", time.DateOnly}

var ErrInvalidTime = errors.New("invalid date")

// ParseTime accepts RFC 3339 timestamps and plain dates.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidTime
}

// InternalError logs err and writes a 500 envelope. Outside release mode the
// underlying message is returned to the client.
func InternalError(c *gin.Context, err error, message string) {
	logger.ErrorContext(c.Request.Context(), message,
		"error", err,
		"method", c.Request.Method,
		"path", c.FullPath(),
	)
	if gin.Mode() != gin.ReleaseMode && err != nil {
		message = err.Error()
	}
	response.ServerError(c, message)
}
