package upload

import (
	"context"

	"brightline/internal/domain"
	fileupload "brightline/internal/pkg/upload"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

// FileRemover is satisfied by *upload.Router.
type FileRemover interface {
	Delete(ctx context.Context, category fileupload.Category, filename string) (bool, error)
}
