package blog

import (
	"context"

	"brightline/internal/domain"
	"brightline/internal/repository"
)

// BlogRepository is the slice of repository.BlogRepository the service uses.
type BlogRepository interface {
	Create(ctx context.Context, b *domain.Blog) error
	GetByID(ctx context.Context, id int64) (*domain.Blog, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.Blog, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Update(ctx context.Context, b *domain.Blog) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.BlogFilter, p repository.ListParams) ([]domain.Blog, int64, error)
	Categories(ctx context.Context) ([]repository.CategoryCount, error)
	IncrementViews(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, blogID, userID int64) (bool, int64, error)
	AddComment(ctx context.Context, c *domain.BlogComment) error
	Comments(ctx context.Context, blogID int64) ([]domain.BlogComment, error)
	HasLiked(ctx context.Context, blogID, userID int64) (bool, error)
}
