package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"brightline/internal/database"
	"brightline/internal/domain"
	"brightline/internal/repository"
)

func setup(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	svc := NewService(repository.NewUserRepository(db), repository.NewBookingRepository(db), repository.NewQuoteRepository(db))
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{FirstName: "Test", LastName: "User", Email: email, Role: role, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestUpdate_ChangesRoleAndBlocksSelfDemotion(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	admin := seedUser(t, db, "admin@brightline.test", domain.RoleAdmin)
	member := seedUser(t, db, "member@example.com", domain.RoleUser)

	role := string(domain.RoleTechnician)
	name := "  Morgan "
	updated, err := svc.Update(ctx, admin.ID, member.ID, UpdateUserRequest{Role: &role, FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, updated.Role)
	assert.Equal(t, "Morgan", updated.FirstName)

	techs, err := svc.Technicians(ctx)
	require.NoError(t, err)
	require.Len(t, techs, 1)
	assert.Equal(t, member.ID, techs[0].ID)

	demote := string(domain.RoleUser)
	_, err = svc.Update(ctx, admin.ID, admin.ID, UpdateUserRequest{Role: &demote})
	assert.ErrorIs(t, err, ErrSelfAction)

	inactive := false
	_, err = svc.Update(ctx, admin.ID, admin.ID, UpdateUserRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, ErrSelfAction)

	_, err = svc.Update(ctx, admin.ID, 999, UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	admin := seedUser(t, db, "admin@brightline.test", domain.RoleAdmin)
	member := seedUser(t, db, "member@example.com", domain.RoleUser)

	assert.ErrorIs(t, svc.Delete(ctx, admin.ID, admin.ID), ErrSelfAction)
	require.NoError(t, svc.Delete(ctx, admin.ID, member.ID))
	assert.ErrorIs(t, svc.Delete(ctx, admin.ID, member.ID), ErrUserNotFound)
}

func TestList_FiltersByRole(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	seedUser(t, db, "admin@brightline.test", domain.RoleAdmin)
	seedUser(t, db, "a@example.com", domain.RoleUser)
	seedUser(t, db, "b@example.com", domain.RoleUser)

	out, total, err := svc.List(ctx, repository.UserFilter{Role: "user"}, repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, out, 2)
}

func TestDashboard_CountsOwnRecords(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	member := seedUser(t, db, "member@example.com", domain.RoleUser)
	offering := &domain.ServiceOffering{Name: "EV Charger Install", Category: "residential", IsActive: true}
	require.NoError(t, db.Create(offering).Error)

	customer := domain.Customer{FirstName: "Test", LastName: "User", Email: "member@example.com", Phone: "512-555-0102"}
	bookings := repository.NewBookingRepository(db)
	require.NoError(t, bookings.Create(ctx, &domain.Booking{UserID: &member.ID, Customer: customer, ServiceID: offering.ID}))
	// Guest booking made with the same email before the account existed.
	require.NoError(t, bookings.Create(ctx, &domain.Booking{Customer: customer, ServiceID: offering.ID, Status: domain.BookingConfirmed}))
	other := customer
	other.Email = "someone@example.com"
	require.NoError(t, bookings.Create(ctx, &domain.Booking{Customer: other, ServiceID: offering.ID}))

	quotes := repository.NewQuoteRepository(db)
	require.NoError(t, quotes.Create(ctx, &domain.Quote{UserID: &member.ID, Customer: customer, Status: domain.QuoteSent}))

	d, err := svc.Dashboard(ctx, member.ID, "user")
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Bookings.Total)
	assert.Equal(t, int64(1), d.Bookings.Pending)
	assert.Equal(t, int64(1), d.Bookings.Confirmed)
	assert.Equal(t, int64(0), d.Bookings.Assigned)
	assert.Equal(t, int64(1), d.Quotes.Total)
	assert.Equal(t, int64(1), d.Quotes.Awaiting)
}
