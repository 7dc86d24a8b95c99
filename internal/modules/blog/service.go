package blog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"brightline/internal/domain"
	"brightline/internal/pkg/utils"
	"brightline/internal/repository"
)

const (
	DefaultLimit  = 6
	featuredLimit = 3
)

type Service struct {
	blogs    BlogRepository
	sanitize *bluemonday.Policy
}

func NewService(blogs BlogRepository) *Service {
	return &Service{blogs: blogs, sanitize: bluemonday.UGCPolicy()}
}

// List returns posts for the public site; only admins may see every status.
func (s *Service) List(ctx context.Context, f repository.BlogFilter, p repository.ListParams, admin bool) ([]domain.Blog, int64, error) {
	if !admin {
		f.Status = string(domain.BlogPublished)
	}
	blogs, total, err := s.blogs.List(ctx, f, p.Normalize(DefaultLimit))
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, total, nil
}

func (s *Service) Featured(ctx context.Context) ([]domain.Blog, error) {
	featured := true
	blogs, _, err := s.List(ctx, repository.BlogFilter{Featured: &featured}, repository.ListParams{Limit: featuredLimit}, false)
	return blogs, err
}

func (s *Service) Categories(ctx context.Context) ([]repository.CategoryCount, error) {
	counts, err := s.blogs.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return counts, nil
}

func (s *Service) ByCategory(ctx context.Context, category string, p repository.ListParams) ([]domain.Blog, int64, error) {
	if !slices.Contains(domain.BlogCategories, category) {
		return nil, 0, ErrInvalidCategory
	}
	return s.List(ctx, repository.BlogFilter{Category: category}, p, false)
}

// Get loads a post by slug and counts the view. Drafts are visible to admins only.
func (s *Service) Get(ctx context.Context, slug string, viewerID int64, admin bool) (*BlogDetail, error) {
	b, err := s.blogs.GetBySlug(ctx, slug, !admin)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}

	if err := s.blogs.IncrementViews(ctx, b.ID); err != nil {
		return nil, fmt.Errorf("count view: %w", err)
	}
	b.Views++

	comments, err := s.blogs.Comments(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	detail := &BlogDetail{Blog: b, Comments: comments}
	if detail.Comments == nil {
		detail.Comments = []domain.BlogComment{}
	}
	if viewerID > 0 {
		if detail.Liked, err = s.blogs.HasLiked(ctx, b.ID, viewerID); err != nil {
			return nil, fmt.Errorf("load like: %w", err)
		}
	}
	return detail, nil
}

func (s *Service) Create(ctx context.Context, authorID int64, req CreateBlogRequest) (*domain.Blog, error) {
	b := &domain.Blog{
		Excerpt:         strings.TrimSpace(req.Excerpt),
		Content:         s.sanitize.Sanitize(req.Content),
		FeaturedImage:   strings.TrimSpace(req.FeaturedImage),
		Category:        req.Category,
		Tags:            normalizeTags(req.Tags),
		AuthorID:        authorID,
		Status:          domain.BlogDraft,
		IsFeatured:      req.IsFeatured,
		MetaTitle:       strings.TrimSpace(req.MetaTitle),
		MetaDescription: strings.TrimSpace(req.MetaDescription),
	}
	if req.Status != "" {
		b.Status = domain.BlogStatus(req.Status)
	}
	b.SetTitle(req.Title)

	slug, err := utils.UniqueSlug(ctx, b.Slug, 0, s.blogs.SlugExists)
	if err != nil {
		return nil, fmt.Errorf("resolve slug: %w", err)
	}
	b.Slug = slug

	if err := s.blogs.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateBlogRequest) (*domain.Blog, error) {
	b, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		previous := b.Slug
		b.SetTitle(*req.Title)
		if b.Slug != previous {
			if b.Slug, err = utils.UniqueSlug(ctx, b.Slug, b.ID, s.blogs.SlugExists); err != nil {
				return nil, fmt.Errorf("resolve slug: %w", err)
			}
		}
	}
	if req.Excerpt != nil {
		b.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Content != nil {
		b.Content = s.sanitize.Sanitize(*req.Content)
	}
	if req.FeaturedImage != nil {
		b.FeaturedImage = strings.TrimSpace(*req.FeaturedImage)
	}
	if req.Category != nil {
		b.Category = *req.Category
	}
	if req.Tags != nil {
		b.Tags = normalizeTags(*req.Tags)
	}
	if req.Status != nil {
		b.Status = domain.BlogStatus(*req.Status)
	}
	if req.IsFeatured != nil {
		b.IsFeatured = *req.IsFeatured
	}
	if req.MetaTitle != nil {
		b.MetaTitle = strings.TrimSpace(*req.MetaTitle)
	}
	if req.MetaDescription != nil {
		b.MetaDescription = strings.TrimSpace(*req.MetaDescription)
	}

	if err := s.blogs.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return b, nil
}

// Delete removes the post with its likes and comments. Uploaded images stay.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.blogs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBlogNotFound
		}
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}

func (s *Service) ToggleLike(ctx context.Context, id, userID int64) (*LikeResult, error) {
	b, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BlogPublished {
		return nil, ErrNotPublished
	}

	liked, count, err := s.blogs.ToggleLike(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	return &LikeResult{Liked: liked, LikesCount: count}, nil
}

func (s *Service) AddComment(ctx context.Context, id, userID int64, content string) (*domain.BlogComment, error) {
	b, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BlogPublished {
		return nil, ErrNotPublished
	}

	comment := &domain.BlogComment{
		BlogID:  id,
		UserID:  userID,
		Content: strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(content)),
	}
	if err := s.blogs.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.Blog, error) {
	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return b, nil
}

// normalizeTags lowercases, trims and de-duplicates tags.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
