package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brightline/internal/domain"
	"brightline/internal/notification"
	"brightline/internal/realtime"
	"brightline/internal/repository"
)

const DefaultLimit = 10

type Service struct {
	contacts   ContactRepository
	users      UserLookup
	notifier   Notifier
	publisher  Publisher
	adminEmail string
	now        func() time.Time
}

func NewService(contacts ContactRepository, users UserLookup, notifier Notifier, publisher Publisher, adminEmail string) *Service {
	return &Service{
		contacts:   contacts,
		users:      users,
		notifier:   notifier,
		publisher:  publisher,
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req CreateContactRequest, origin Origin) (*domain.Contact, error) {
	preferred := req.PreferredContact
	if preferred == "" {
		preferred = "email"
	}
	c := &domain.Contact{
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            domain.NormalizeEmail(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		Company:          strings.TrimSpace(req.Company),
		Subject:          strings.TrimSpace(req.Subject),
		Message:          strings.TrimSpace(req.Message),
		ServiceInterest:  req.ServiceInterest,
		PreferredContact: preferred,
		Status:           domain.ContactNew,
		Priority:         "medium",
		Source:           "website",
		IPAddress:        origin.IPAddress,
		UserAgent:        origin.UserAgent,
	}
	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.publisher.Publish(realtime.EventContactCreated, c)
	data := map[string]any{
		"firstName": c.FirstName,
		"lastName":  c.LastName,
		"email":     c.Email,
		"phone":     c.Phone,
		"subject":   c.Subject,
		"message":   c.Message,
	}
	s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateContactAutoReply, c.Email,
		"We received your message", data))
	if s.adminEmail != "" {
		s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateContactAdmin, s.adminEmail,
			"New contact message: "+c.Subject, data))
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, f repository.ContactFilter, p repository.ListParams) ([]domain.Contact, int64, error) {
	out, total, err := s.contacts.List(ctx, f, p.Normalize(DefaultLimit))
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	return out, total, nil
}

// Get returns the message and marks it read on first view.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsRead {
		c.MarkRead(s.now())
		if err := s.contacts.Update(ctx, c); err != nil {
			return nil, fmt.Errorf("mark contact read: %w", err)
		}
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateContactRequest) (*domain.Contact, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		c.ApplyStatus(domain.ContactStatus(*req.Status), s.now())
	}
	if req.Priority != nil {
		c.Priority = *req.Priority
	}
	if err := s.contacts.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return c, nil
}

func (s *Service) Assign(ctx context.Context, id, assigneeID int64) (*domain.Contact, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidAssignee
		}
		return nil, fmt.Errorf("load assignee: %w", err)
	}
	if !assignee.IsActive || !domain.Allows(domain.AccessTechnician, string(assignee.Role)) {
		return nil, ErrInvalidAssignee
	}

	c.AssignedToID = &assignee.ID
	c.AssignedTo = assignee
	if err := s.contacts.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("assign contact: %w", err)
	}
	return c, nil
}

func (s *Service) AddNote(ctx context.Context, id, authorID int64, content string) (*domain.Contact, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	note := &domain.ContactNote{ContactID: id, AuthorID: authorID, Content: strings.TrimSpace(content)}
	if err := s.contacts.AddNote(ctx, note); err != nil {
		return nil, fmt.Errorf("add contact note: %w", err)
	}
	return s.load(ctx, id)
}

func (s *Service) MarkRead(ctx context.Context, id int64) (*domain.Contact, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.MarkRead(s.now())
	if err := s.contacts.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("mark contact read: %w", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (*repository.ContactStats, error) {
	stats, err := s.contacts.Stats(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("contact stats: %w", err)
	}
	return stats, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Contact, error) {
	c, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}
