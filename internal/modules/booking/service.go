package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brightline/internal/domain"
	"brightline/internal/notification"
	"brightline/internal/pkg/utils"
	"brightline/internal/realtime"
	"brightline/internal/repository"
)

const DefaultLimit = 10

type Service struct {
	bookings   BookingRepository
	services   ServiceLookup
	users      UserLookup
	notifier   Notifier
	publisher  Publisher
	adminEmail string
	now        func() time.Time
}

func NewService(
	bookings BookingRepository,
	services ServiceLookup,
	users UserLookup,
	notifier Notifier,
	publisher Publisher,
	adminEmail string,
) *Service {
	return &Service{
		bookings:   bookings,
		services:   services,
		users:      users,
		notifier:   notifier,
		publisher:  publisher,
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

// ResolveActor loads the caller's email so bookings made as a guest with the
// same address count as theirs.
func (s *Service) ResolveActor(ctx context.Context, userID int64, role string) (Actor, error) {
	actor := Actor{ID: userID, Role: role}
	if userID == 0 {
		return actor, nil
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return actor, nil
		}
		return actor, fmt.Errorf("load caller: %w", err)
	}
	actor.Email = u.Email
	return actor, nil
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	preferred, err := utils.ParseTime(req.PreferredDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if preferred.Before(startOfDay(s.now())) {
		return nil, ErrPastDate
	}

	offering, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceUnavailable
		}
		return nil, fmt.Errorf("load service: %w", err)
	}
	if !offering.IsActive {
		return nil, ErrServiceUnavailable
	}

	b := &domain.Booking{
		Customer: domain.Customer{
			FirstName: strings.TrimSpace(req.Customer.FirstName),
			LastName:  strings.TrimSpace(req.Customer.LastName),
			Email:     domain.NormalizeEmail(req.Customer.Email),
			Phone:     strings.TrimSpace(req.Customer.Phone),
		},
		ServiceID:     offering.ID,
		Address:       req.Address,
		PreferredDate: preferred,
		PreferredTime: req.PreferredTime,
		Description:   strings.TrimSpace(req.Description),
		Priority:      req.Priority,
	}
	if userID > 0 {
		b.UserID = &userID
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	b.Service = offering

	s.publisher.Publish(realtime.EventBookingCreated, b)
	data := bookingMailData(b)
	s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateBookingReceived, b.Customer.Email,
		"Booking received: "+b.BookingNumber, data))
	if s.adminEmail != "" {
		s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateBookingAdmin, s.adminEmail,
			"New booking: "+b.BookingNumber, data))
	}
	return b, nil
}

// List scopes results by role: admins see everything, technicians their
// assignments and customers their own bookings.
func (s *Service) List(ctx context.Context, actor Actor, f repository.BookingFilter, p repository.ListParams) ([]domain.Booking, int64, error) {
	switch {
	case actor.IsAdmin():
	case actor.IsTechnician():
		f.TechnicianID = &actor.ID
	default:
		f.TechnicianID = nil
		f.OwnerID = &actor.ID
		f.OwnerEmail = actor.Email
	}
	out, total, err := s.bookings.List(ctx, f, p.Normalize(DefaultLimit))
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return out, total, nil
}

func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsAssignedTo(actor.ID) && !b.IsOwnedBy(actor.ID, actor.Email) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Priority != nil {
		b.Priority = *req.Priority
	}
	if req.Description != nil {
		b.Description = strings.TrimSpace(*req.Description)
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.EstimatedCost != nil {
		b.EstimatedCost = req.EstimatedCost
	}
	if req.AdminNotes != nil {
		b.AdminNotes = strings.TrimSpace(*req.AdminNotes)
	}
	if req.TechnicianID != nil {
		if err := s.assign(ctx, b, *req.TechnicianID); err != nil {
			return nil, err
		}
	}
	if req.ScheduledDate != nil {
		at, err := utils.ParseTime(*req.ScheduledDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		b.ScheduledDate = &at
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	s.publisher.Publish(realtime.EventBookingUpdated, b)
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

func (s *Service) Confirm(ctx context.Context, id int64, req ConfirmRequest) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	scheduled, err := utils.ParseTime(req.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	err = s.transition(ctx, b, domain.BookingConfirmed, func(now time.Time) error {
		if req.TechnicianID != nil {
			if err := s.assign(ctx, b, *req.TechnicianID); err != nil {
				return err
			}
		}
		b.ScheduledDate = &scheduled
		if req.EstimatedCost != nil {
			b.EstimatedCost = req.EstimatedCost
		}
		if notes := strings.TrimSpace(req.AdminNotes); notes != "" {
			b.AdminNotes = notes
		}
		b.ConfirmedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Start(ctx context.Context, actor Actor, id int64) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsAssignedTo(actor.ID) {
		return nil, ErrForbidden
	}
	err = s.transition(ctx, b, domain.BookingInProgress, func(now time.Time) error {
		b.StartedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Complete(ctx context.Context, actor Actor, id int64, req CompleteRequest) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsAssignedTo(actor.ID) {
		return nil, ErrForbidden
	}
	err = s.transition(ctx, b, domain.BookingCompleted, func(now time.Time) error {
		if req.FinalCost != nil {
			b.FinalCost = req.FinalCost
		}
		b.CompletionNotes = strings.TrimSpace(req.CompletionNotes)
		b.CompletedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Cancel(ctx context.Context, actor Actor, id int64, reason string) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsOwnedBy(actor.ID, actor.Email) {
		return nil, ErrForbidden
	}
	err = s.transition(ctx, b, domain.BookingCancelled, func(now time.Time) error {
		b.CancellationReason = strings.TrimSpace(reason)
		b.CancelledAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Reschedule(ctx context.Context, actor Actor, id int64, req RescheduleRequest) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsOwnedBy(actor.ID, actor.Email) {
		return nil, ErrForbidden
	}
	preferred, err := utils.ParseTime(req.PreferredDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if preferred.Before(startOfDay(s.now())) {
		return nil, ErrPastDate
	}

	err = s.transition(ctx, b, domain.BookingRescheduled, func(time.Time) error {
		b.PreferredDate = preferred
		b.PreferredTime = req.PreferredTime
		b.ScheduledDate = nil
		b.RescheduleCount++
		if reason := strings.TrimSpace(req.Reason); reason != "" {
			b.AdminNotes = strings.TrimSpace(b.AdminNotes + "\nReschedule reason: " + reason)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Stats(ctx context.Context) (*repository.BookingStats, error) {
	stats, err := s.bookings.Stats(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}
	return stats, nil
}

// transition applies a state change, persists it and tells the customer.
func (s *Service) transition(ctx context.Context, b *domain.Booking, to domain.BookingStatus, apply func(now time.Time) error) error {
	if !b.CanTransition(to) {
		return &TransitionError{From: b.Status, To: to}
	}
	if err := apply(s.now()); err != nil {
		return err
	}
	b.Status = to
	if err := s.bookings.Update(ctx, b); err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	s.publisher.Publish(realtime.EventBookingUpdated, b)
	data := bookingMailData(b)
	data["status"] = string(to)
	s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateBookingStatus, b.Customer.Email,
		fmt.Sprintf("Booking %s is now %s", b.BookingNumber, to), data))
	return nil
}

func (s *Service) assign(ctx context.Context, b *domain.Booking, technicianID int64) error {
	tech, err := s.users.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidTechnician
		}
		return fmt.Errorf("load technician: %w", err)
	}
	if tech.Role != domain.RoleTechnician || !tech.IsActive {
		return ErrInvalidTechnician
	}
	b.TechnicianID = &tech.ID
	b.Technician = tech
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func bookingMailData(b *domain.Booking) map[string]any {
	data := map[string]any{
		"bookingNumber": b.BookingNumber,
		"firstName":     b.Customer.FirstName,
		"preferredDate": b.PreferredDate.Format("2006-01-02"),
		"preferredTime": b.PreferredTime,
	}
	if b.Service != nil {
		data["service"] = b.Service.Name
	}
	if b.ScheduledDate != nil {
		data["scheduledDate"] = b.ScheduledDate.Format(time.RFC3339)
	}
	return data
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
