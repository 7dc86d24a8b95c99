package services

import "errors"

var ErrServiceNotFound = errors.New("service not found")
