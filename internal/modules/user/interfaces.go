package user

import (
	"context"

	"brightline/internal/domain"
	"brightline/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.UserFilter, p repository.ListParams) ([]domain.User, int64, error)
	ListTechnicians(ctx context.Context) ([]domain.User, error)
}

type BookingCounter interface {
	Count(ctx context.Context, f repository.BookingFilter) (int64, error)
}

type QuoteCounter interface {
	Count(ctx context.Context, f repository.QuoteFilter) (int64, error)
}
