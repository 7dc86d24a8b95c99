package services

import (
	"context"

	"brightline/internal/domain"
	"brightline/internal/repository"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.ServiceOffering) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
	GetBySlug(ctx context.Context, slug string, activeOnly bool) (*domain.ServiceOffering, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Update(ctx context.Context, s *domain.ServiceOffering) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.ServiceFilter, p repository.ListParams) ([]domain.ServiceOffering, int64, error)
	Categories(ctx context.Context) ([]repository.CategoryCount, error)
}
