package upload

import "errors"

var (
	ErrInvalidCategory = errors.New("invalid upload category")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrUserNotFound    = errors.New("user not found")
)
