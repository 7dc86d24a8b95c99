package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brightline/internal/domain"
)

type BlogFilter struct {
	// Status restricts to one status; empty means any.
	Status   string
	Category string
	Tag      string
	Search   string
	Featured *bool
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	var b domain.Blog
	if err := r.db.WithContext(ctx).Preload("Author").First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BlogRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.Blog, error) {
	q := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("status = ?", domain.BlogPublished)
	}
	var b domain.Blog
	if err := q.First(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BlogRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Blog{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *BlogRepository) Update(ctx context.Context, b *domain.Blog) error {
	return translate(r.db.WithContext(ctx).Omit("Author").Save(b).Error)
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&domain.BlogLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&domain.BlogComment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Blog{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

var blogSort = map[string]string{
	"createdAt":   "created_at",
	"publishedAt": "published_at",
	"views":       "views",
	"likesCount":  "likes_count",
	"title":       "title",
}

func (r *BlogRepository) List(ctx context.Context, f BlogFilter, p ListParams) ([]domain.Blog, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Blog{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Tag != "" {
		q = q.Where("tags LIKE ?", `%"`+f.Tag+`"%`)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var blogs []domain.Blog
	err := q.Preload("Author").
		Order(orderBy(p.Sort, blogSort, "published_at DESC, created_at DESC")).
		Scopes(paginate(p)).
		Find(&blogs).Error
	return blogs, total, err
}

// Categories counts published posts per category.
func (r *BlogRepository) Categories(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.db.WithContext(ctx).Model(&domain.Blog{}).
		Select("category, COUNT(*) AS count").
		Where("status = ?", domain.BlogPublished).
		Group("category").
		Order("count DESC").
		Scan(&out).Error
	return out, err
}

func (r *BlogRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// ToggleLike adds or removes the user's like and returns the new state and count.
func (r *BlogRepository) ToggleLike(ctx context.Context, blogID, userID int64) (bool, int64, error) {
	var liked bool
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like domain.BlogLike
		err := tx.Where("blog_id = ? AND user_id = ?", blogID, userID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = domain.BlogLike{BlogID: blogID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		if err := tx.Model(&domain.BlogLike{}).Where("blog_id = ?", blogID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Blog{}).Where("id = ?", blogID).UpdateColumn("likes_count", count).Error
	})
	return liked, count, err
}

func (r *BlogRepository) AddComment(ctx context.Context, c *domain.BlogComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Blog{}).Where("id = ?", c.BlogID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}

func (r *BlogRepository) Comments(ctx context.Context, blogID int64) ([]domain.BlogComment, error) {
	var comments []domain.BlogComment
	err := r.db.WithContext(ctx).Preload("User").
		Where("blog_id = ?", blogID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *BlogRepository) HasLiked(ctx context.Context, blogID, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BlogLike{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&n).Error
	return n > 0, err
}
