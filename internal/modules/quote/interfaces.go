package quote

import (
	"context"

	"brightline/internal/domain"
	"brightline/internal/notification"
	"brightline/internal/repository"
)

type QuoteRepository interface {
	Create(ctx context.Context, q *domain.Quote) error
	GetByID(ctx context.Context, id int64) (*domain.Quote, error)
	Update(ctx context.Context, q *domain.Quote) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.QuoteFilter, p repository.ListParams) ([]domain.Quote, int64, error)
	Stats(ctx context.Context) (*repository.QuoteStats, error)
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

type Publisher interface {
	Publish(eventType string, data any)
}
