package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brightline/internal/domain"
	"brightline/internal/repository"
)

const DefaultLimit = 10

type Service struct {
	users    UserRepository
	bookings BookingCounter
	quotes   QuoteCounter
}

func NewService(users UserRepository, bookings BookingCounter, quotes QuoteCounter) *Service {
	return &Service{users: users, bookings: bookings, quotes: quotes}
}

func (s *Service) List(ctx context.Context, f repository.UserFilter, p repository.ListParams) ([]domain.User, int64, error) {
	out, total, err := s.users.List(ctx, f, p.Normalize(DefaultLimit))
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return out, total, nil
}

func (s *Service) Technicians(ctx context.Context) ([]domain.User, error) {
	out, err := s.users.ListTechnicians(ctx)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, callerID, id int64, req UpdateUserRequest) (*domain.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerID == id {
		demoted := req.Role != nil && *req.Role != string(u.Role)
		deactivated := req.IsActive != nil && !*req.IsActive
		if demoted || deactivated {
			return nil, ErrSelfAction
		}
	}

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		u.Role = domain.UserRole(*req.Role)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id int64) error {
	if callerID == id {
		return ErrSelfAction
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Dashboard summarizes the caller's own bookings and quotes. Technicians
// additionally see how many bookings are assigned to them.
func (s *Service) Dashboard(ctx context.Context, userID int64, role string) (*Dashboard, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{}
	bookingCounts := []struct {
		status string
		dst    *int64
	}{
		{"", &d.Bookings.Total},
		{string(domain.BookingPending), &d.Bookings.Pending},
		{string(domain.BookingConfirmed), &d.Bookings.Confirmed},
		{string(domain.BookingCompleted), &d.Bookings.Completed},
	}
	for _, bc := range bookingCounts {
		f := repository.BookingFilter{Status: bc.status, OwnerID: &u.ID, OwnerEmail: u.Email}
		if *bc.dst, err = s.bookings.Count(ctx, f); err != nil {
			return nil, fmt.Errorf("count bookings: %w", err)
		}
	}
	if role == string(domain.RoleTechnician) {
		if d.Bookings.Assigned, err = s.bookings.Count(ctx, repository.BookingFilter{TechnicianID: &u.ID}); err != nil {
			return nil, fmt.Errorf("count assigned bookings: %w", err)
		}
	}

	quoteCounts := []struct {
		status string
		dst    *int64
	}{
		{"", &d.Quotes.Total},
		{string(domain.QuotePending), &d.Quotes.Pending},
		{string(domain.QuoteSent), &d.Quotes.Awaiting},
		{string(domain.QuoteAccepted), &d.Quotes.Accepted},
	}
	for _, qc := range quoteCounts {
		f := repository.QuoteFilter{Status: qc.status, OwnerID: &u.ID, OwnerEmail: u.Email}
		if *qc.dst, err = s.quotes.Count(ctx, f); err != nil {
			return nil, fmt.Errorf("count quotes: %w", err)
		}
	}
	return d, nil
}
