package auth

import (
	"context"
	"time"

	"brightline/internal/domain"
	"brightline/internal/notification"
	"brightline/internal/pkg/jwt"
)

// UserRepository is the slice of repository.UserRepository auth needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

// TokenIssuer is satisfied by *jwt.Service.
type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
	Revoke(ctx context.Context, claims *jwt.Claims) error
}

type Notifier interface {
	Notify(ctx context.Context, msg notification.Message)
}
