package auth

import "brightline/internal/domain"

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}

// UpdateProfileRequest only touches the fields that are present.
type UpdateProfileRequest struct {
	FirstName *string         `json:"firstName"`
	LastName  *string         `json:"lastName"`
	Phone     *string         `json:"phone"`
	Avatar    *string         `json:"avatar"`
	Address   *domain.Address `json:"address"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse is returned by register, login and password reset.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}
