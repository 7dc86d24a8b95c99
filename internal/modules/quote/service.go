package quote

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"brightline/internal/domain"
	"brightline/internal/notification"
	"brightline/internal/pkg/utils"
	"brightline/internal/realtime"
	"brightline/internal/repository"
)

const DefaultLimit = 10

// sendable lists the states from which an admin may (re)send a quote.
var sendable = []domain.QuoteStatus{domain.QuotePending, domain.QuoteReviewing, domain.QuoteCountered}

type Service struct {
	quotes     QuoteRepository
	services   ServiceLookup
	users      UserLookup
	notifier   Notifier
	publisher  Publisher
	adminEmail string
	now        func() time.Time
}

func NewService(
	quotes QuoteRepository,
	services ServiceLookup,
	users UserLookup,
	notifier Notifier,
	publisher Publisher,
	adminEmail string,
) *Service {
	return &Service{
		quotes:     quotes,
		services:   services,
		users:      users,
		notifier:   notifier,
		publisher:  publisher,
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

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

func (s *Service) Create(ctx context.Context, userID int64, req CreateQuoteRequest) (*domain.Quote, error) {
	q := &domain.Quote{
		Customer: domain.Customer{
			FirstName: strings.TrimSpace(req.Customer.FirstName),
			LastName:  strings.TrimSpace(req.Customer.LastName),
			Email:     domain.NormalizeEmail(req.Customer.Email),
			Phone:     strings.TrimSpace(req.Customer.Phone),
		},
		Address:      req.Address,
		PropertyType: req.PropertyType,
		Description:  strings.TrimSpace(req.Description),
		Timeline:     req.Timeline,
		BudgetRange:  req.BudgetRange,
		Attachments:  req.Attachments,
	}
	if userID > 0 {
		q.UserID = &userID
	}
	if req.ServiceID != nil {
		offering, err := s.services.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, fmt.Errorf("load service: %w", err)
		}
		q.ServiceID = &offering.ID
		q.Service = offering
	}

	if err := s.quotes.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	s.publisher.Publish(realtime.EventQuoteCreated, q)
	data := quoteMailData(q)
	s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateQuoteReceived, q.Customer.Email,
		"Quote request received: "+q.QuoteNumber, data))
	if s.adminEmail != "" {
		s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateQuoteAdmin, s.adminEmail,
			"New quote request: "+q.QuoteNumber, data))
	}
	return q, nil
}

func (s *Service) List(ctx context.Context, actor Actor, f repository.QuoteFilter, p repository.ListParams) ([]domain.Quote, int64, error) {
	if !actor.IsAdmin() {
		f.OwnerID = &actor.ID
		f.OwnerEmail = actor.Email
	}
	out, total, err := s.quotes.List(ctx, f, p.Normalize(DefaultLimit))
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	return out, total, nil
}

func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*domain.Quote, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !q.IsOwnedBy(actor.ID, actor.Email) {
		return nil, ErrForbidden
	}
	return q, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateQuoteRequest) (*domain.Quote, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		q.Status = domain.QuoteStatus(*req.Status)
	}
	if req.AdminNotes != nil {
		q.AdminNotes = strings.TrimSpace(*req.AdminNotes)
	}
	if req.Items != nil {
		q.Items = toItems(*req.Items)
	}
	if req.TaxRate != nil {
		q.TaxRate = *req.TaxRate
	}
	if req.ValidUntil != nil {
		until, err := utils.ParseTime(*req.ValidUntil)
		if err != nil {
			return nil, ErrInvalidDate
		}
		q.ValidUntil = &until
	}
	q.Recalculate()

	if err := s.quotes.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}
	return q, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.quotes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

// Send prices the quote and hands it to the customer.
func (s *Service) Send(ctx context.Context, id int64, req SendQuoteRequest) (*domain.Quote, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(sendable, q.Status) {
		return nil, ErrCannotSend
	}

	now := s.now()
	until := now.Add(domain.DefaultQuoteValidity)
	if req.ValidUntil != "" {
		if until, err = utils.ParseTime(req.ValidUntil); err != nil {
			return nil, ErrInvalidDate
		}
	}

	q.Items = toItems(req.Items)
	q.TaxRate = req.TaxRate
	q.Recalculate()
	q.ValidUntil = &until
	q.CustomerMessage = strings.TrimSpace(req.CustomerMessage)
	q.SentAt = &now
	q.Status = domain.QuoteSent
	if err := s.quotes.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("send quote: %w", err)
	}

	data := quoteMailData(q)
	data["total"] = q.Total
	data["validUntil"] = until.Format("2006-01-02")
	data["message"] = q.CustomerMessage
	s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateQuoteSent, q.Customer.Email,
		"Your quote is ready: "+q.QuoteNumber, data))
	return q, nil
}

func (s *Service) Accept(ctx context.Context, actor Actor, id int64, message string) (*domain.Quote, error) {
	return s.respond(ctx, actor, id, domain.QuoteAccepted, func(q *domain.Quote) error {
		if !q.AwaitingResponse() {
			return ErrNotAwaitingResponse
		}
		q.ResponseNote = strings.TrimSpace(message)
		return nil
	})
}

func (s *Service) Reject(ctx context.Context, actor Actor, id int64, message string) (*domain.Quote, error) {
	return s.respond(ctx, actor, id, domain.QuoteRejected, func(q *domain.Quote) error {
		if !q.AwaitingResponse() {
			return ErrNotAwaitingResponse
		}
		q.ResponseNote = strings.TrimSpace(message)
		return nil
	})
}

// CounterOffer is only possible on a freshly sent quote.
func (s *Service) CounterOffer(ctx context.Context, actor Actor, id int64, req CounterOfferRequest) (*domain.Quote, error) {
	return s.respond(ctx, actor, id, domain.QuoteCountered, func(q *domain.Quote) error {
		if q.Status != domain.QuoteSent {
			return ErrNotAwaitingResponse
		}
		amount := req.Amount
		q.CounterAmount = &amount
		q.CounterMessage = strings.TrimSpace(req.Message)
		return nil
	})
}

func (s *Service) Stats(ctx context.Context) (*repository.QuoteStats, error) {
	stats, err := s.quotes.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("quote stats: %w", err)
	}
	return stats, nil
}

// respond applies a customer decision. A quote found past its validity is
// marked expired instead.
func (s *Service) respond(ctx context.Context, actor Actor, id int64, to domain.QuoteStatus, apply func(*domain.Quote) error) (*domain.Quote, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.IsOwnedBy(actor.ID, actor.Email) {
		return nil, ErrForbidden
	}

	now := s.now()
	if q.AwaitingResponse() && q.IsExpired(now) {
		q.Status = domain.QuoteExpired
		if err := s.quotes.Update(ctx, q); err != nil {
			return nil, fmt.Errorf("expire quote: %w", err)
		}
		return nil, ErrQuoteExpired
	}
	if q.Status == domain.QuoteExpired {
		return nil, ErrQuoteExpired
	}
	if err := apply(q); err != nil {
		return nil, err
	}

	q.Status = to
	q.RespondedAt = &now
	if err := s.quotes.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}

	s.publisher.Publish(realtime.EventQuoteResponded, q)
	if s.adminEmail != "" {
		data := quoteMailData(q)
		data["response"] = string(to)
		data["message"] = q.ResponseNote
		if q.CounterAmount != nil && to == domain.QuoteCountered {
			data["counterAmount"] = *q.CounterAmount
			data["message"] = q.CounterMessage
		}
		s.notifier.Notify(ctx, notification.NewMessage(notification.TemplateQuoteResponse, s.adminEmail,
			fmt.Sprintf("Quote %s %s by customer", q.QuoteNumber, to), data))
	}
	return q, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Quote, error) {
	q, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

func quoteMailData(q *domain.Quote) map[string]any {
	data := map[string]any{
		"quoteNumber":  q.QuoteNumber,
		"firstName":    q.Customer.FirstName,
		"propertyType": q.PropertyType,
		"timeline":     q.Timeline,
	}
	if q.Service != nil {
		data["service"] = q.Service.Name
	}
	return data
}
