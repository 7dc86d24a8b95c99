package booking

import "brightline/internal/domain"

type CustomerInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type CreateBookingRequest struct {
	Customer      CustomerInput  `json:"customer"`
	ServiceID     int64          `json:"serviceId"`
	Address       domain.Address `json:"address"`
	PreferredDate string         `json:"preferredDate"`
	PreferredTime string         `json:"preferredTime"`
	Description   string         `json:"description"`
	Priority      string         `json:"priority"`
}

// UpdateBookingRequest is the admin edit; status changes go through the actions.
type UpdateBookingRequest struct {
	Priority      *string         `json:"priority"`
	Description   *string         `json:"description"`
	Address       *domain.Address `json:"address"`
	EstimatedCost *float64        `json:"estimatedCost"`
	AdminNotes    *string         `json:"adminNotes"`
	TechnicianID  *int64          `json:"technicianId"`
	ScheduledDate *string         `json:"scheduledDate"`
}

type ConfirmRequest struct {
	TechnicianID  *int64   `json:"technicianId"`
	ScheduledDate string   `json:"scheduledDate"`
	EstimatedCost *float64 `json:"estimatedCost"`
	AdminNotes    string   `json:"adminNotes"`
}

type CompleteRequest struct {
	FinalCost       *float64 `json:"finalCost"`
	CompletionNotes string   `json:"completionNotes"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type RescheduleRequest struct {
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	Reason        string `json:"reason"`
}

// Actor is the caller as seen by authorization checks.
type Actor struct {
	ID    int64
	Role  string
	Email string
}

func (a Actor) IsAdmin() bool      { return domain.IsAdmin(a.Role) }
func (a Actor) IsTechnician() bool { return a.Role == string(domain.RoleTechnician) }
