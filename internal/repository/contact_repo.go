package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"brightline/internal/domain"
)

type ContactFilter struct {
	Status       string
	Priority     string
	IsRead       *bool
	AssignedToID *int64
	From         *time.Time
	To           *time.Time
	Search       string
}

type ContactStats struct {
	Total      int64            `json:"total"`
	Unread     int64            `json:"unread"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByPriority map[string]int64 `json:"byPriority"`
	LastWeek   int64            `json:"lastWeek"`
}

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	return translate(r.db.WithContext(ctx).Omit("AssignedTo", "Notes").Create(c).Error)
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	var c domain.Contact
	err := r.db.WithContext(ctx).
		Preload("AssignedTo").
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Notes.Author").
		First(&c, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *domain.Contact) error {
	return translate(r.db.WithContext(ctx).Omit("AssignedTo", "Notes").Save(c).Error)
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ?", id).Delete(&domain.ContactNote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Contact{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *ContactRepository) AddNote(ctx context.Context, n *domain.ContactNote) error {
	return translate(r.db.WithContext(ctx).Omit("Author").Create(n).Error)
}

var contactSort = map[string]string{
	"createdAt": "created_at",
	"priority":  "priority",
	"status":    "status",
}

func (r *ContactRepository) List(ctx context.Context, f ContactFilter, p ListParams) ([]domain.Contact, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Contact{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.IsRead != nil {
		q = q.Where("is_read = ?", *f.IsRead)
	}
	if f.AssignedToID != nil {
		q = q.Where("assigned_to_id = ?", *f.AssignedToID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ? OR LOWER(message) LIKE ?",
			like, like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var contacts []domain.Contact
	err := q.Preload("AssignedTo").
		Order(orderBy(p.Sort, contactSort, "created_at DESC")).
		Scopes(paginate(p)).
		Find(&contacts).Error
	return contacts, total, err
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Contact{}).Count(&n).Error
	return n, err
}

func (r *ContactRepository) Stats(ctx context.Context, now time.Time) (*ContactStats, error) {
	db := r.db.WithContext(ctx)
	stats := &ContactStats{}

	if err := db.Model(&domain.Contact{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Contact{}).Where("is_read = ?", false).Count(&stats.Unread).Error; err != nil {
		return nil, err
	}
	var err error
	if stats.ByStatus, err = countBy(db.Model(&domain.Contact{}), "status"); err != nil {
		return nil, err
	}
	if stats.ByPriority, err = countBy(db.Model(&domain.Contact{}), "priority"); err != nil {
		return nil, err
	}
	err = db.Model(&domain.Contact{}).Where("created_at >= ?", now.AddDate(0, 0, -7)).Count(&stats.LastWeek).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
