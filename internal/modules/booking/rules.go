package booking

import (
	"brightline/internal/domain"
	v "brightline/internal/pkg/validation"
)

var (
	createRules = v.NewChain("booking-create",
		v.Field("customer.firstName", v.Required("First name is required"), v.MaxLength(50, "First name cannot exceed 50 characters")),
		v.Field("customer.lastName", v.Required("Last name is required"), v.MaxLength(50, "Last name cannot exceed 50 characters")),
		v.Field("customer.email", v.Required("Email is required"), v.IsEmail("Please provide a valid email")),
		v.Field("customer.phone", v.Required("Phone number is required"), v.Pattern(v.PhonePattern, "Please provide a valid phone number")),
		v.Field("serviceId", v.Required("Service is required"), v.Min(1, "Valid service ID is required")),
		v.Field("address.street", v.Required("Street address is required"), v.MaxLength(200, "Street cannot exceed 200 characters")),
		v.Field("address.city", v.Required("City is required"), v.MaxLength(100, "City cannot exceed 100 characters")),
		v.Field("address.state", v.Required("State is required"), v.MaxLength(50, "State cannot exceed 50 characters")),
		v.Field("address.zipCode", v.Required("ZIP code is required"), v.Pattern(v.ZipPattern, "Please provide a valid ZIP code")),
		v.Field("preferredDate", v.Required("Preferred date is required"), v.IsISODate("Please provide a valid date")),
		v.Field("preferredTime", v.Required("Preferred time is required"), v.Enum(domain.TimeSlots, "Invalid time slot")),
		v.Field("description", v.Required("Description is required"), v.MaxLength(1000, "Description cannot exceed 1000 characters")),
		v.Field("priority", v.Enum(domain.Priorities, "Invalid priority level")),
	)

	updateRules = v.NewChain("booking-update", append([]v.FieldRule{
		v.Field("priority", v.Enum(domain.Priorities, "Invalid priority level")),
		v.Field("description", v.MaxLength(1000, "Description cannot exceed 1000 characters")),
		v.Field("estimatedCost", v.Min(0, "Estimated cost cannot be negative")),
		v.Field("adminNotes", v.MaxLength(2000, "Admin notes cannot exceed 2000 characters")),
		v.Field("technicianId", v.Min(1, "Valid technician ID is required")),
		v.Field("scheduledDate", v.IsISODate("Please provide a valid date")),
	}, v.AddressRules("address")...)...)

	confirmRules = v.NewChain("booking-confirm",
		v.Field("technicianId", v.Min(1, "Valid technician ID is required")),
		v.Field("scheduledDate", v.Required("Scheduled date is required"), v.IsISODate("Please provide a valid date")),
		v.Field("estimatedCost", v.Min(0, "Estimated cost cannot be negative")),
		v.Field("adminNotes", v.MaxLength(2000, "Admin notes cannot exceed 2000 characters")),
	)

	completeRules = v.NewChain("booking-complete",
		v.Field("finalCost", v.Min(0, "Final cost cannot be negative")),
		v.Field("completionNotes", v.MaxLength(2000, "Completion notes cannot exceed 2000 characters")),
	)

	cancelRules = v.NewChain("booking-cancel",
		v.Field("reason", v.Required("Cancellation reason is required"), v.MaxLength(500, "Reason cannot exceed 500 characters")),
	)

	rescheduleRules = v.NewChain("booking-reschedule",
		v.Field("preferredDate", v.Required("New date is required"), v.IsISODate("Please provide a valid date")),
		v.Field("preferredTime", v.Required("New time slot is required"), v.Enum(domain.TimeSlots, "Invalid time slot")),
		v.Field("reason", v.MaxLength(500, "Reason cannot exceed 500 characters")),
	)

	listRules = v.Pagination.Extend("booking-list",
		v.Field("status", v.Enum(domain.BookingStatuses, "Invalid status")),
		v.Field("priority", v.Enum(domain.Priorities, "Invalid priority level")),
		v.Field("startDate", v.IsISODate("Invalid start date")),
		v.Field("endDate", v.IsISODate("Invalid end date")),
		v.Field("technicianId", v.Pattern(v.DigitsPattern, "Invalid technician ID")),
	)
)
