package user

type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"isActive"`
}

type BookingCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Assigned  int64 `json:"assigned,omitempty"`
}

type QuoteCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Awaiting int64 `json:"awaitingResponse"`
	Accepted int64 `json:"accepted"`
}

type Dashboard struct {
	Bookings BookingCounts `json:"bookings"`
	Quotes   QuoteCounts   `json:"quotes"`
}
