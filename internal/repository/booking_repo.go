package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"brightline/internal/domain"
)

// BookingFilter narrows booking lists. OwnerID/OwnerEmail together select
// the bookings a customer may see.
type BookingFilter struct {
	Status       string
	Priority     string
	From         *time.Time
	To           *time.Time
	TechnicianID *int64
	OwnerID      *int64
	OwnerEmail   string
	Search       string
}

type BookingStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByPriority map[string]int64 `json:"byPriority"`
	Upcoming   int64            `json:"upcoming"`
	Revenue    float64          `json:"revenue"`
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return translate(r.db.WithContext(ctx).Omit("Service", "Technician").Create(b).Error)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Technician").
		First(&b, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	return translate(r.db.WithContext(ctx).Omit("Service", "Technician").Save(b).Error)
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var bookingSort = map[string]string{
	"createdAt":     "created_at",
	"preferredDate": "preferred_date",
	"scheduledDate": "scheduled_date",
	"status":        "status",
	"priority":      "priority",
}

func (r *BookingRepository) filtered(ctx context.Context, f BookingFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.From != nil {
		q = q.Where("preferred_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("preferred_date <= ?", *f.To)
	}
	if f.TechnicianID != nil {
		q = q.Where("technician_id = ?", *f.TechnicianID)
	}
	switch {
	case f.OwnerID != nil && f.OwnerEmail != "":
		q = q.Where("user_id = ? OR customer_email = ?", *f.OwnerID, domain.NormalizeEmail(f.OwnerEmail))
	case f.OwnerID != nil:
		q = q.Where("user_id = ?", *f.OwnerID)
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		q = q.Where("LOWER(booking_number) LIKE ? OR LOWER(customer_first_name) LIKE ? OR LOWER(customer_last_name) LIKE ? OR LOWER(customer_email) LIKE ?",
			like, like, like, like)
	}
	return q
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter, p ListParams) ([]domain.Booking, int64, error) {
	q := r.filtered(ctx, f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var bookings []domain.Booking
	err := q.Preload("Service").Preload("Technician").
		Order(orderBy(p.Sort, bookingSort, "created_at DESC")).
		Scopes(paginate(p)).
		Find(&bookings).Error
	return bookings, total, err
}

func (r *BookingRepository) Count(ctx context.Context, f BookingFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, err
}

func (r *BookingRepository) Stats(ctx context.Context, now time.Time) (*BookingStats, error) {
	db := r.db.WithContext(ctx)
	stats := &BookingStats{}

	if err := db.Model(&domain.Booking{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	var err error
	if stats.ByStatus, err = countBy(db.Model(&domain.Booking{}), "status"); err != nil {
		return nil, err
	}
	if stats.ByPriority, err = countBy(db.Model(&domain.Booking{}), "priority"); err != nil {
		return nil, err
	}
	err = db.Model(&domain.Booking{}).
		Where("status IN ? AND preferred_date >= ?", []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingRescheduled}, now).
		Count(&stats.Upcoming).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&domain.Booking{}).
		Where("status = ?", domain.BookingCompleted).
		Select("COALESCE(SUM(final_cost), 0)").
		Scan(&stats.Revenue).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
