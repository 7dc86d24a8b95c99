package booking

import (
	"context"
	"time"

	"brightline/internal/domain"
	"brightline/internal/notification"
	"brightline/internal/repository"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.BookingFilter, p repository.ListParams) ([]domain.Booking, int64, error)
	Stats(ctx context.Context, now time.Time) (*repository.BookingStats, error)
}

type ServiceLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Notifier interface {
	Notify(ctx context.Context, msg notification.Message)
}

// Publisher pushes events to the live admin feed.
type Publisher interface {
	Publish(eventType string, data any)
}
