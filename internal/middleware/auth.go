package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"brightline/internal/domain"
	"brightline/internal/pkg/jwt"
	"brightline/internal/pkg/logger"
	"brightline/internal/pkg/response"
	"brightline/internal/repository"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxClaims = "claims"
)

// TokenValidator is satisfied by *jwt.Service.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// UserLookup is satisfied by *repository.UserRepository.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

var ErrAccountInactive = errors.New("account is inactive or no longer exists")

// Authenticator validates tokens against the stored account. The returned
// claims carry the account's current role, so role changes, deactivation and
// deletion apply to tokens issued before them.
type Authenticator struct {
	tokens TokenValidator
	users  UserLookup
}

func NewAuthenticator(tokens TokenValidator, users UserLookup) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

func (a *Authenticator) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := a.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := a.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAccountInactive
	}
	if err != nil {
		return nil, fmt.Errorf("load token user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	current := *claims
	current.Role = string(user.Role)
	return &current, nil
}

// JWTAuth requires a valid bearer token.
func JWTAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Access denied. No token provided.")
			c.Abort()
			return
		}
		raw, ok := bearer(header)
		if !ok {
			response.Unauthorized(c, "Invalid authorization format. Use: Bearer <token>")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(c.Request.Context(), raw)
		if err != nil {
			rejectToken(c, err)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and otherwise continues anonymously.
func OptionalAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearer(c.GetHeader("Authorization")); ok {
			if claims, err := tokens.ValidateToken(c.Request.Context(), raw); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func rejectToken(c *gin.Context, err error) {
	switch {
	case errors.Is(err, jwt.ErrRevokedToken):
		response.Unauthorized(c, "Token has been revoked. Please log in again.")
	case errors.Is(err, ErrAccountInactive):
		response.Unauthorized(c, "Account is inactive or no longer exists")
	case errors.Is(err, jwt.ErrInvalidToken):
		response.Unauthorized(c, "Invalid or expired token")
	default:
		logger.ErrorContext(c.Request.Context(), "token check failed", "error", err)
		response.ServerError(c, "Authentication check failed")
	}
	c.Abort()
}

func bearer(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxClaims, claims)
}

// UserID is zero for anonymous callers.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}

func Role(c *gin.Context) string {
	return c.GetString(ctxRole)
}

func Claims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// Guards bundles the identity middlewares that modules attach to routes.
type Guards struct {
	Required gin.HandlerFunc
	Optional gin.HandlerFunc
}

// NewGuards checks every token against the stored account through users.
func NewGuards(tokens TokenValidator, users UserLookup) Guards {
	auth := NewAuthenticator(tokens, users)
	return Guards{Required: JWTAuth(auth), Optional: OptionalAuth(auth)}
}

// Admin requires a valid token carrying the admin role.
func (g Guards) Admin() []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Required, AdminOnly()}
}
