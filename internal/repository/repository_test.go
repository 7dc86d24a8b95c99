package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"brightline/internal/database"
	"brightline/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	return db
}

func TestListParams_Normalize(t *testing.T) {
	p := ListParams{}.Normalize(6)
	assert.Equal(t, ListParams{Page: 1, Limit: 6}, p)

	p = ListParams{Page: 3, Limit: 500}.Normalize(10)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestOrderBy(t *testing.T) {
	cols := map[string]string{"createdAt": "created_at"}
	assert.Equal(t, "created_at DESC", orderBy("-createdAt", cols, "id"))
	assert.Equal(t, "created_at ASC", orderBy("createdAt", cols, "id"))
	assert.Equal(t, "id", orderBy("password_hash; DROP TABLE users", cols, "id"))
}

func TestUserRepository_DuplicateAndNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupDB(t))

	u := &domain.User{FirstName: "Ada", LastName: "Volt", Email: " Ada@Example.com ", Role: domain.RoleUser, IsActive: true}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "ada@example.com", u.Email)

	err := repo.Create(ctx, &domain.User{Email: "ada@example.com", Role: domain.RoleUser})
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 9999), ErrNotFound)
}

func TestUserRepository_ListAndTokens(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupDB(t))
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	require.NoError(t, repo.Create(ctx, &domain.User{FirstName: "Tess", Email: "tess@example.com", Role: domain.RoleTechnician, IsActive: true}))
	require.NoError(t, repo.Create(ctx, &domain.User{FirstName: "Old", Email: "old@example.com", Role: domain.RoleTechnician, IsActive: false}))
	require.NoError(t, repo.Create(ctx, &domain.User{
		FirstName: "Reset", Email: "reset@example.com", Role: domain.RoleUser, IsActive: true,
		PasswordResetTokenHash: "expired", PasswordResetExpires: &past,
		EmailVerificationTokenHash: "valid", EmailVerificationExpires: &future,
	}))

	techs, err := repo.ListTechnicians(ctx)
	require.NoError(t, err)
	require.Len(t, techs, 1)
	assert.Equal(t, "Tess", techs[0].FirstName)

	users, total, err := repo.List(ctx, UserFilter{Search: "TESS"}, ListParams{}.Normalize(10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, users, 1)

	_, err = repo.GetByResetToken(ctx, "expired", now)
	assert.ErrorIs(t, err, ErrNotFound)
	u, err := repo.GetByVerificationToken(ctx, "valid", now)
	require.NoError(t, err)
	assert.Equal(t, "Reset", u.FirstName)

	purged, err := repo.PurgeExpiredTokens(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
}

func seedBlogs(t *testing.T, repo *BlogRepository, authorID int64, published, drafts int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < published+drafts; i++ {
		status := domain.BlogPublished
		if i >= published {
			status = domain.BlogDraft
		}
		b := &domain.Blog{
			Content:  "<p>Panel upgrades keep homes safe.</p>",
			Excerpt:  "Excerpt",
			Category: "electrical-safety",
			Tags:     []string{"panels"},
			AuthorID: authorID,
			Status:   status,
		}
		b.SetTitle(fmt.Sprintf("Post number %d", i))
		require.NoError(t, repo.Create(ctx, b))
	}
}

func TestBlogRepository_ListPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(setupDB(t))
	seedBlogs(t, repo, 1, 13, 2)

	blogs, total, err := repo.List(ctx, BlogFilter{Status: string(domain.BlogPublished)}, ListParams{Page: 2, Limit: 6})
	require.NoError(t, err)
	assert.EqualValues(t, 13, total)
	assert.Len(t, blogs, 6)

	_, total, err = repo.List(ctx, BlogFilter{Tag: "panels"}, ListParams{}.Normalize(6))
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.EqualValues(t, 13, cats[0].Count)
}

func TestBlogRepository_SlugAndCounters(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(setupDB(t))
	seedBlogs(t, repo, 1, 1, 0)

	b, err := repo.GetBySlug(ctx, "post-number-0", true)
	require.NoError(t, err)
	assert.NotNil(t, b.PublishedAt)
	assert.Equal(t, 1, b.ReadTime)

	exists, err := repo.SlugExists(ctx, "post-number-0", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.SlugExists(ctx, "post-number-0", b.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.IncrementViews(ctx, b.ID))
	require.NoError(t, repo.IncrementViews(ctx, b.ID))

	liked, count, err := repo.ToggleLike(ctx, b.ID, 7)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, count)
	liked, count, err = repo.ToggleLike(ctx, b.ID, 7)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.EqualValues(t, 0, count)

	require.NoError(t, repo.AddComment(ctx, &domain.BlogComment{BlogID: b.ID, UserID: 7, Content: "Great tips"}))

	b, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, b.Views)
	assert.EqualValues(t, 1, b.CommentsCount)

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuoteRepository_ExpireOverdue(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository(setupDB(t))
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	overdue := &domain.Quote{Customer: domain.Customer{Email: "a@example.com"}, Status: domain.QuoteSent, ValidUntil: &past}
	current := &domain.Quote{Customer: domain.Customer{Email: "b@example.com"}, Status: domain.QuoteSent, ValidUntil: &future}
	accepted := &domain.Quote{Customer: domain.Customer{Email: "c@example.com"}, Status: domain.QuoteAccepted, ValidUntil: &past, Total: 250}
	for _, q := range []*domain.Quote{overdue, current, accepted} {
		require.NoError(t, repo.Create(ctx, q))
		assert.Regexp(t, `^QT-\d{8}-[0-9A-F]{6}$`, q.QuoteNumber)
	}

	n, err := repo.ExpireOverdue(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteExpired, got.Status)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 1, stats.ByStatus["expired"])
	assert.InDelta(t, 250, stats.AcceptedValue, 0.001)
	assert.InDelta(t, 100, stats.ConversionRate, 0.001)
}

func TestBookingRepository_OwnerFilter(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	services := NewServiceRepository(db)
	repo := NewBookingRepository(db)

	svc := &domain.ServiceOffering{IsActive: true, Category: "residential"}
	svc.SetName("Panel Upgrade")
	require.NoError(t, services.Create(ctx, svc))

	userID := int64(42)
	mine := &domain.Booking{UserID: &userID, ServiceID: svc.ID, Customer: domain.Customer{Email: "me@example.com"}, PreferredDate: time.Now().Add(48 * time.Hour)}
	guest := &domain.Booking{ServiceID: svc.ID, Customer: domain.Customer{Email: "me@example.com"}, PreferredDate: time.Now().Add(72 * time.Hour)}
	other := &domain.Booking{ServiceID: svc.ID, Customer: domain.Customer{Email: "other@example.com"}, PreferredDate: time.Now()}
	for _, b := range []*domain.Booking{mine, guest, other} {
		require.NoError(t, repo.Create(ctx, b))
	}
	assert.Equal(t, domain.BookingPending, mine.Status)
	assert.Regexp(t, `^BK-\d{8}-[0-9A-F]{6}$`, mine.BookingNumber)

	list, total, err := repo.List(ctx, BookingFilter{OwnerID: &userID, OwnerEmail: "ME@example.com"}, ListParams{}.Normalize(10))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "panel-upgrade", list[0].Service.Slug)

	stats, err := repo.Stats(ctx, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 3, stats.ByStatus["pending"])
	assert.EqualValues(t, 2, stats.Upcoming)
}

func TestContactRepository_Notes(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	users := NewUserRepository(db)
	repo := NewContactRepository(db)

	admin := &domain.User{FirstName: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, users.Create(ctx, admin))

	c := &domain.Contact{FirstName: "A", LastName: "B", Email: "a@b.co", Subject: "S", Message: "M", Status: domain.ContactNew, Priority: "medium"}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.AddNote(ctx, &domain.ContactNote{ContactID: c.ID, AuthorID: admin.ID, Content: "Called back"}))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "Admin", got.Notes[0].Author.FirstName)

	stats, err := repo.Stats(ctx, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Unread)
	assert.EqualValues(t, 1, stats.LastWeek)

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), ErrNotFound)
}
