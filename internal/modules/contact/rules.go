package contact

import (
	"brightline/internal/domain"
	v "brightline/internal/pkg/validation"
)

var (
	createRules = v.NewChain("contact-create",
		v.Field("firstName", v.Required("First name is required"), v.MaxLength(50, "First name cannot exceed 50 characters")),
		v.Field("lastName", v.Required("Last name is required"), v.MaxLength(50, "Last name cannot exceed 50 characters")),
		v.Field("email", v.Required("Email is required"), v.IsEmail("Please provide a valid email")),
		v.Field("phone", v.Pattern(v.PhonePattern, "Please provide a valid phone number")),
		v.Field("company", v.MaxLength(100, "Company name cannot exceed 100 characters")),
		v.Field("subject", v.Required("Subject is required"), v.MaxLength(200, "Subject cannot exceed 200 characters")),
		v.Field("message", v.Required("Message is required"), v.MaxLength(5000, "Message cannot exceed 5000 characters")),
		v.Field("serviceInterest", v.MaxLength(50, "Service interest cannot exceed 50 characters")),
		v.Field("preferredContact", v.Enum(domain.ContactMethods, "Preferred contact must be email or phone")),
	)

	updateRules = v.NewChain("contact-update",
		v.Field("status", v.Enum(domain.ContactStatuses, "Invalid status")),
		v.Field("priority", v.Enum(domain.ContactPriorities, "Invalid priority")),
	)

	assignRules = v.NewChain("contact-assign",
		v.Field("assignedTo", v.Required("Assignee is required"), v.Min(1, "Valid user ID is required")),
	)

	noteRules = v.NewChain("contact-note",
		v.Field("content", v.Required("Note content is required"), v.MaxLength(2000, "Note cannot exceed 2000 characters")),
	)

	listRules = v.Pagination.Extend("contact-list",
		v.Field("status", v.Enum(domain.ContactStatuses, "Invalid status")),
		v.Field("priority", v.Enum(domain.ContactPriorities, "Invalid priority")),
		v.Field("isRead", v.IsBoolean("isRead must be true or false")),
		v.Field("startDate", v.IsISODate("Invalid start date")),
		v.Field("endDate", v.IsISODate("Invalid end date")),
	)
)
