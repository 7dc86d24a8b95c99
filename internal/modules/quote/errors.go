package quote

import "errors"

var (
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrForbidden           = errors.New("not allowed to access this quote")
	ErrQuoteExpired        = errors.New("quote has expired")
	ErrNotAwaitingResponse = errors.New("quote is not awaiting a response")
	ErrCannotSend          = errors.New("quote cannot be sent in its current status")
	ErrServiceNotFound     = errors.New("service not found")
	ErrInvalidDate         = errors.New("invalid date")
)
