package upload

import (
	"fmt"
	"strconv"
)

type Code string

const (
	CodeFileTooLarge    Code = "LIMIT_FILE_SIZE"
	CodeTooManyFiles    Code = "LIMIT_FILE_COUNT"
	CodeUnexpectedField Code = "LIMIT_UNEXPECTED_FILE"
	CodeImageOnly       Code = "INVALID_IMAGE_TYPE"
	CodeImageOrDocument Code = "INVALID_ATTACHMENT_TYPE"
	CodeInvalidType     Code = "INVALID_FILE_TYPE"
	CodeNoFile          Code = "NO_FILE"
	CodeMalformed       Code = "MALFORMED_FORM"
)

// Error is a client-side upload rejection. Its message is safe to return as is.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func errFileTooLarge(maxSize int64) *Error {
	mb := strconv.FormatFloat(float64(maxSize)/(1<<20), 'f', -1, 64)
	return newError(CodeFileTooLarge, fmt.Sprintf("File too large. Maximum size is %sMB.", mb))
}

func errTooManyFiles(max int) *Error {
	return newError(CodeTooManyFiles, fmt.Sprintf("Too many files. Maximum is %d file(s) per request.", max))
}

var (
	errUnexpectedField = newError(CodeUnexpectedField, "Unexpected file field.")
	errNoFile          = newError(CodeNoFile, "No file uploaded.")
	errMalformed       = newError(CodeMalformed, "Invalid multipart form data.")
)
