package upload

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"brightline/internal/pkg/logger"
	"brightline/internal/pkg/response"
)

const (
	filesKey     = "uploadedFiles"
	formOverhead = 1 << 20
)

// Middleware reads the multipart body, stores accepted files and exposes
// them to the next handler through Files. Rejections end the request with a
// 400 envelope.
func Middleware(r *Router, ep Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := (r.maxSize + formOverhead) * int64(ep.limit()+1)
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		mr, err := c.Request.MultipartReader()
		if err != nil {
			response.Abort(c, http.StatusBadRequest, errMalformed.Message, nil)
			return
		}
		parts, err := ReadParts(mr, ep, r.maxSize)
		if err != nil {
			abortRejected(c, r, err)
			return
		}

		stored, err := r.Handle(c.Request.Context(), parts, ep)
		if err != nil {
			var uerr *Error
			if errors.As(err, &uerr) {
				response.Abort(c, http.StatusBadRequest, uerr.Message, nil)
				return
			}
			logger.ErrorContext(c.Request.Context(), "upload failed", "error", err)
			response.Abort(c, http.StatusInternalServerError, "Failed to store uploaded file", nil)
			return
		}

		c.Set(filesKey, stored)
		c.Next()
	}
}

func abortRejected(c *gin.Context, r *Router, err error) {
	var uerr *Error
	switch {
	case errors.As(err, &uerr):
		response.Abort(c, http.StatusBadRequest, uerr.Message, nil)
	case isTooLarge(err):
		response.Abort(c, http.StatusBadRequest, errFileTooLarge(r.maxSize).Message, nil)
	default:
		response.Abort(c, http.StatusBadRequest, errMalformed.Message, nil)
	}
}

// Files returns what Middleware stored for this request.
func Files(c *gin.Context) []StoredFile {
	v, ok := c.Get(filesKey)
	if !ok {
		return nil
	}
	files, _ := v.([]StoredFile)
	return files
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}
