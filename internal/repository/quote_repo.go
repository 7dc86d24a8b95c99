package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"brightline/internal/domain"
)

type QuoteFilter struct {
	Status       string
	PropertyType string
	ServiceID    *int64
	From         *time.Time
	To           *time.Time
	OwnerID      *int64
	OwnerEmail   string
	Search       string
}

type QuoteStats struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"byStatus"`
	AcceptedValue  float64          `json:"acceptedValue"`
	ConversionRate float64          `json:"conversionRate"`
}

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	return translate(r.db.WithContext(ctx).Omit("Service").Create(q).Error)
}

func (r *QuoteRepository) GetByID(ctx context.Context, id int64) (*domain.Quote, error) {
	var q domain.Quote
	if err := r.db.WithContext(ctx).Preload("Service").First(&q, id).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (r *QuoteRepository) Update(ctx context.Context, q *domain.Quote) error {
	return translate(r.db.WithContext(ctx).Omit("Service").Save(q).Error)
}

func (r *QuoteRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Quote{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var quoteSort = map[string]string{
	"createdAt":  "created_at",
	"total":      "total",
	"status":     "status",
	"validUntil": "valid_until",
}

func (r *QuoteRepository) filtered(ctx context.Context, f QuoteFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Quote{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.ServiceID != nil {
		q = q.Where("service_id = ?", *f.ServiceID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	switch {
	case f.OwnerID != nil && f.OwnerEmail != "":
		q = q.Where("user_id = ? OR customer_email = ?", *f.OwnerID, domain.NormalizeEmail(f.OwnerEmail))
	case f.OwnerID != nil:
		q = q.Where("user_id = ?", *f.OwnerID)
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		q = q.Where("LOWER(quote_number) LIKE ? OR LOWER(customer_first_name) LIKE ? OR LOWER(customer_last_name) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(description) LIKE ?",
			like, like, like, like, like)
	}
	return q
}

func (r *QuoteRepository) List(ctx context.Context, f QuoteFilter, p ListParams) ([]domain.Quote, int64, error) {
	q := r.filtered(ctx, f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var quotes []domain.Quote
	err := q.Preload("Service").
		Order(orderBy(p.Sort, quoteSort, "created_at DESC")).
		Scopes(paginate(p)).
		Find(&quotes).Error
	return quotes, total, err
}

func (r *QuoteRepository) Count(ctx context.Context, f QuoteFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, err
}

func (r *QuoteRepository) Stats(ctx context.Context) (*QuoteStats, error) {
	db := r.db.WithContext(ctx)
	stats := &QuoteStats{}

	if err := db.Model(&domain.Quote{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	var err error
	if stats.ByStatus, err = countBy(db.Model(&domain.Quote{}), "status"); err != nil {
		return nil, err
	}
	err = db.Model(&domain.Quote{}).
		Where("status = ?", domain.QuoteAccepted).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.AcceptedValue).Error
	if err != nil {
		return nil, err
	}

	decided := stats.ByStatus[string(domain.QuoteAccepted)] + stats.ByStatus[string(domain.QuoteRejected)]
	if decided > 0 {
		stats.ConversionRate = float64(stats.ByStatus[string(domain.QuoteAccepted)]) / float64(decided) * 100
	}
	return stats, nil
}

// ExpireOverdue marks quotes still awaiting a response past validUntil as expired.
func (r *QuoteRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Quote{}).
		Where("status IN ? AND valid_until IS NOT NULL AND valid_until < ?",
			[]domain.QuoteStatus{domain.QuoteSent, domain.QuoteCountered}, now).
		Updates(map[string]any{"status": domain.QuoteExpired, "updated_at": now})
	return res.RowsAffected, res.Error
}
