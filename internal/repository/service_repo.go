package repository

import (
	"context"

	"gorm.io/gorm"

	"brightline/internal/domain"
)

type ServiceFilter struct {
	ActiveOnly bool
	Category   string
	Featured   *bool
	Search     string
}

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.ServiceOffering) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	var s domain.ServiceOffering
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *ServiceRepository) GetBySlug(ctx context.Context, slug string, activeOnly bool) (*domain.ServiceOffering, error) {
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var s domain.ServiceOffering
	if err := q.First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *ServiceRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.ServiceOffering{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.ServiceOffering) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.ServiceOffering{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var serviceSort = map[string]string{
	"sortOrder": "sort_order",
	"name":      "name",
	"createdAt": "created_at",
	"basePrice": "base_price",
}

func (r *ServiceRepository) List(ctx context.Context, f ServiceFilter, p ListParams) ([]domain.ServiceOffering, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.ServiceOffering{})
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(short_description) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var services []domain.ServiceOffering
	err := q.Order(orderBy(p.Sort, serviceSort, "sort_order ASC, name ASC")).
		Scopes(paginate(p)).
		Find(&services).Error
	return services, total, err
}

func (r *ServiceRepository) Categories(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.db.WithContext(ctx).Model(&domain.ServiceOffering{}).
		Select("category, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("category").
		Order("category ASC").
		Scan(&out).Error
	return out, err
}
