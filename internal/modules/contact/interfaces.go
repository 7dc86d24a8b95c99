package contact

import (
	"context"
	"time"

	"brightline/internal/domain"
	"brightline/internal/notification"
	"brightline/internal/repository"
)

type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) error
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, id int64) error
	AddNote(ctx context.Context, n *domain.ContactNote) error
	List(ctx context.Context, f repository.ContactFilter, p repository.ListParams) ([]domain.Contact, int64, error)
	Stats(ctx context.Context, now time.Time) (*repository.ContactStats, error)
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
