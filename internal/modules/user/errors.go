package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfAction   = errors.New("admins cannot remove their own access")
)
