package contact

import "errors"

var (
	ErrContactNotFound = errors.New("contact message not found")
	ErrInvalidAssignee = errors.New("assignee must be an active admin or technician")
)
