package auth

import v "brightline/internal/pkg/validation"

const passwordStrength = "Password must contain at least one uppercase letter, one lowercase letter, and one number"

var (
	registerRules = v.NewChain("register",
		v.Field("firstName", v.Required("First name is required"), v.MaxLength(50, "First name cannot exceed 50 characters")),
		v.Field("lastName", v.Required("Last name is required"), v.MaxLength(50, "Last name cannot exceed 50 characters")),
		v.Field("email", v.Required("Email is required"), v.IsEmail("Please provide a valid email")),
		v.Field("password",
			v.Required("Password is required"),
			v.MinLength(6, "Password must be at least 6 characters"),
			v.StrongPassword(passwordStrength),
		),
		v.Field("phone", v.Pattern(v.PhonePattern, "Please provide a valid phone number")),
	)

	loginRules = v.NewChain("login",
		v.Field("email", v.Required("Email is required"), v.IsEmail("Please provide a valid email")),
		v.Field("password", v.Required("Password is required")),
	)

	emailRules = v.NewChain("email",
		v.Field("email", v.Required("Email is required"), v.IsEmail("Please provide a valid email")),
	)

	resetPasswordRules = v.NewChain("reset-password",
		v.Field("password",
			v.Required("Password is required"),
			v.MinLength(6, "Password must be at least 6 characters"),
			v.StrongPassword(passwordStrength),
		),
	)

	profileRules = v.NewChain("profile", append([]v.FieldRule{
		v.Field("firstName", v.MinLength(1, "First name cannot be empty"), v.MaxLength(50, "First name cannot exceed 50 characters")),
		v.Field("lastName", v.MinLength(1, "Last name cannot be empty"), v.MaxLength(50, "Last name cannot exceed 50 characters")),
		v.Field("phone", v.Pattern(v.PhonePattern, "Please provide a valid phone number")),
		v.Field("avatar", v.IsURL("Avatar must be a valid URL")),
	}, v.AddressRules("address")...)...)

	changePasswordRules = v.NewChain("change-password",
		v.Field("currentPassword", v.Required("Current password is required")),
		v.Field("newPassword",
			v.Required("New password is required"),
			v.MinLength(6, "New password must be at least 6 characters"),
			v.StrongPassword(passwordStrength),
		),
	)
)
