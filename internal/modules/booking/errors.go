package booking

import (
	"errors"
	"fmt"

	"brightline/internal/domain"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrForbidden          = errors.New("not allowed to access this booking")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrServiceUnavailable = errors.New("service not available")
	ErrPastDate           = errors.New("preferred date is in the past")
	ErrInvalidTechnician  = errors.New("technician not found")
	ErrInvalidDate        = errors.New("invalid date")
)

// TransitionError reports a move the booking state machine does not allow.
type TransitionError struct {
	From domain.BookingStatus
	To   domain.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("Cannot change booking status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }
