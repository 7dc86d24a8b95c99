package user

import (
	"brightline/internal/domain"
	v "brightline/internal/pkg/validation"
)

var (
	updateRules = v.NewChain("user-update",
		v.Field("firstName", v.MinLength(2, "First name must be between 2 and 50 characters"), v.MaxLength(50, "First name must be between 2 and 50 characters")),
		v.Field("lastName", v.MinLength(2, "Last name must be between 2 and 50 characters"), v.MaxLength(50, "Last name must be between 2 and 50 characters")),
		v.Field("phone", v.Pattern(v.PhonePattern, "Please provide a valid phone number")),
		v.Field("role", v.Enum(domain.UserRoles, "Invalid role")),
		v.Field("isActive", v.IsBoolean("isActive must be a boolean")),
	)

	listRules = v.Pagination.Extend("user-list",
		v.Field("role", v.Enum(domain.UserRoles, "Invalid role")),
		v.Field("isActive", v.IsBoolean("isActive must be true or false")),
	)
)
