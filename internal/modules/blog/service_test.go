package blog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brightline/internal/domain"
	"brightline/internal/repository"
)

type mockBlogRepo struct {
	mock.Mock
}

func (m *mockBlogRepo) Create(ctx context.Context, b *domain.Blog) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBlogRepo) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *mockBlogRepo) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.Blog, error) {
	args := m.Called(ctx, slug, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *mockBlogRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlogRepo) Update(ctx context.Context, b *domain.Blog) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBlogRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBlogRepo) List(ctx context.Context, f repository.BlogFilter, p repository.ListParams) ([]domain.Blog, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]domain.Blog), args.Get(1).(int64), args.Error(2)
}

func (m *mockBlogRepo) Categories(ctx context.Context) ([]repository.CategoryCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.CategoryCount), args.Error(1)
}

func (m *mockBlogRepo) IncrementViews(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBlogRepo) ToggleLike(ctx context.Context, blogID, userID int64) (bool, int64, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *mockBlogRepo) AddComment(ctx context.Context, c *domain.BlogComment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockBlogRepo) Comments(ctx context.Context, blogID int64) ([]domain.BlogComment, error) {
	args := m.Called(ctx, blogID)
	return args.Get(0).([]domain.BlogComment), args.Error(1)
}

func (m *mockBlogRepo) HasLiked(ctx context.Context, blogID, userID int64) (bool, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Error(1)
}

func TestList_PublicForcesPublished(t *testing.T) {
	repo := new(mockBlogRepo)
	svc := NewService(repo)
	ctx := context.Background()

	want := repository.BlogFilter{Status: "published", Category: "smart-home"}
	repo.On("List", ctx, want, repository.ListParams{Page: 1, Limit: 6}).Return([]domain.Blog{{ID: 1}}, int64(1), nil)

	blogs, total, err := svc.List(ctx, repository.BlogFilter{Status: "draft", Category: "smart-home"}, repository.ListParams{}, false)
	require.NoError(t, err)
	assert.Len(t, blogs, 1)
	assert.Equal(t, int64(1), total)
	repo.AssertExpectations(t)
}

func TestCreate_SanitizesAndDedupesSlug(t *testing.T) {
	repo := new(mockBlogRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("SlugExists", ctx, "panel-upgrades-101", int64(0)).Return(true, nil)
	repo.On("SlugExists", ctx, "panel-upgrades-101-1", int64(0)).Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Blog")).Return(nil)

	b, err := svc.Create(ctx, 9, CreateBlogRequest{
		Title:    "Panel Upgrades 101",
		Excerpt:  "Why your panel matters",
		Content:  `<p>Hello</p><script>alert(1)</script>`,
		Category: "home-improvement",
		Tags:     []string{" Panels ", "panels", "Safety"},
	})
	require.NoError(t, err)
	assert.Equal(t, "panel-upgrades-101-1", b.Slug)
	assert.Equal(t, "<p>Hello</p>", b.Content)
	assert.Equal(t, []string{"panels", "safety"}, b.Tags)
	assert.Equal(t, domain.BlogDraft, b.Status)
	assert.Equal(t, int64(9), b.AuthorID)
}

func TestUpdate_TitleChangeRegeneratesSlug(t *testing.T) {
	repo := new(mockBlogRepo)
	svc := NewService(repo)
	ctx := context.Background()

	existing := &domain.Blog{ID: 4, Title: "Old Title", Slug: "old-title", Status: domain.BlogDraft}
	repo.On("GetByID", ctx, int64(4)).Return(existing, nil)
	repo.On("SlugExists", ctx, "new-title", int64(4)).Return(false, nil)
	repo.On("Update", ctx, existing).Return(nil)

	title := "New Title"
	status := "published"
	b, err := svc.Update(ctx, 4, UpdateBlogRequest{Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "new-title", b.Slug)
	assert.Equal(t, domain.BlogPublished, b.Status)
}

func TestUpdate_SameTitleKeepsSlug(t *testing.T) {
	repo := new(mockBlogRepo)
	svc := NewService(repo)
	ctx := context.Background()

	existing := &domain.Blog{ID: 4, Title: "Same", Slug: "same-2"}
	repo.On("GetByID", ctx, int64(4)).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	title := "Same"
	b, err := svc.Update(ctx, 4, UpdateBlogRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "same-2", b.Slug)
	repo.AssertNotCalled(t, "SlugExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestGet_CountsViewAndLike(t *testing.T) {
	repo := new(mockBlogRepo)
	svc := NewService(repo)
	ctx := context.Background()

	b := &domain.Blog{ID: 2, Slug: "wiring", Views: 10}
	repo.On("GetBySlug", ctx, "wiring", true).Return(b, nil)
	repo.On("IncrementViews", ctx, int64(2)).Return(nil)
	repo.On("Comments", ctx, int64(2)).Return([]domain.BlogComment(nil), nil)
	repo.On("HasLiked", ctx, int64(2), int64(5)).Return(true, nil)

	detail, err := svc.Get(ctx, "wiring", 5, false)
	require.NoError(t, err)
	assert.Equal(t, int64(11), detail.Views)
	assert.True(t, detail.Liked)
	assert.NotNil(t, detail.Comments)
}

func TestGet_NotFound(t *testing.T) {
	repo := new(mockBlogRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetBySlug", ctx, "missing", true).Return(nil, repository.ErrNotFound)
	_, err := svc.Get(ctx, "missing", 0, false)
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestToggleLike_RequiresPublished(t *testing.T) {
	repo := new(mockBlogRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(1)).Return(&domain.Blog{ID: 1, Status: domain.BlogDraft}, nil)
	_, err := svc.ToggleLike(ctx, 1, 5)
	assert.ErrorIs(t, err, ErrNotPublished)

	repo.On("GetByID", ctx, int64(2)).Return(&domain.Blog{ID: 2, Status: domain.BlogPublished}, nil)
	repo.On("ToggleLike", ctx, int64(2), int64(5)).Return(true, int64(3), nil)
	res, err := svc.ToggleLike(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, &LikeResult{Liked: true, LikesCount: 3}, res)
}

func TestAddComment_StripsMarkup(t *testing.T) {
	repo := new(mockBlogRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(2)).Return(&domain.Blog{ID: 2, Status: domain.BlogPublished}, nil)
	repo.On("AddComment", ctx, mock.AnythingOfType("*domain.BlogComment")).Return(nil)

	c, err := svc.AddComment(ctx, 2, 5, "<b>Great</b> tips")
	require.NoError(t, err)
	assert.Equal(t, "Great tips", c.Content)
}

func TestByCategory_Unknown(t *testing.T) {
	svc := NewService(new(mockBlogRepo))
	_, _, err := svc.ByCategory(context.Background(), "gardening", repository.ListParams{})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
