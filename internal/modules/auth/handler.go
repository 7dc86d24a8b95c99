package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"brightline/internal/middleware"
	"brightline/internal/pkg/response"
	"brightline/internal/pkg/utils"
	"brightline/internal/pkg/validation"
)

// Handler manages all HTTP interactions for authentication.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards) {
	g := api.Group("/auth")
	{
		g.POST("/register", validation.Body(registerRules), h.Register)
		g.POST("/login", validation.Body(loginRules), h.Login)
		g.POST("/forgot-password", validation.Body(emailRules), h.ForgotPassword)
		g.PUT("/reset-password/:token", validation.Body(resetPasswordRules), h.ResetPassword)
		g.GET("/verify-email/:token", h.VerifyEmail)
	}

	protected := g.Group("", guards.Required)
	{
		protected.POST("/logout", h.Logout)
		protected.POST("/resend-verification", h.ResendVerification)
		protected.GET("/me", h.Me)
		protected.PUT("/profile", validation.Body(profileRules), h.UpdateProfile)
		protected.PUT("/change-password", validation.Body(changePasswordRules), h.ChangePassword)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Registration failed")
		return
	}
	response.Created(c, res, "User registered successfully. Please check your email to verify your account.")
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Login failed")
		return
	}
	response.Success(c, res, "Login successful")
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.Claims(c)); err != nil {
		utils.InternalError(c, err, "Logout failed")
		return
	}
	response.Success(c, nil, "Logged out successfully")
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.InternalError(c, err, "Failed to process password reset request")
		return
	}
	response.Success(c, nil, "If an account with that email exists, a password reset link has been sent.")
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	res, err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		h.fail(c, err, "Password reset failed")
		return
	}
	response.Success(c, res, "Password reset successful")
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	user, err := h.service.VerifyEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.fail(c, err, "Email verification failed")
		return
	}
	response.Success(c, user, "Email verified successfully")
}

func (h *Handler) ResendVerification(c *gin.Context) {
	if err := h.service.ResendVerification(c.Request.Context(), middleware.UserID(c)); err != nil {
		h.fail(c, err, "Failed to resend verification email")
		return
	}
	response.Success(c, nil, "Verification email sent")
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err, "Failed to load profile")
		return
	}
	response.Success(c, user, "User profile retrieved")
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err, "Failed to update profile")
		return
	}
	response.Success(c, user, "Profile updated successfully")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body", nil)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), middleware.UserID(c), req); err != nil {
		h.fail(c, err, "Failed to change password")
		return
	}
	response.Success(c, nil, "Password changed successfully")
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Conflict(c, "User already exists with this email")
	case errors.Is(err, ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, ErrAccountLocked):
		response.Error(c, "Account temporarily locked due to too many failed login attempts. Try again later.", http.StatusLocked, nil)
	case errors.Is(err, ErrAccountInactive):
		response.Unauthorized(c, "Account has been deactivated")
	case errors.Is(err, ErrInvalidToken):
		response.BadRequest(c, "Invalid or expired token", nil)
	case errors.Is(err, ErrAlreadyVerified):
		response.BadRequest(c, "Email is already verified", nil)
	case errors.Is(err, ErrWrongPassword):
		response.BadRequest(c, "Current password is incorrect", nil)
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		utils.InternalError(c, err, fallback)
	}
}
