package quote

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"brightline/internal/database"
	"brightline/internal/domain"
	"brightline/internal/notification"
	"brightline/internal/realtime"
	"brightline/internal/repository"
)

type recorder struct {
	mu       sync.Mutex
	messages []notification.Message
	events   []string
}

func (r *recorder) Notify(_ context.Context, msg notification.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recorder) Publish(eventType string, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
}

var testNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	db       *gorm.DB
	rec      *recorder
	customer *domain.User
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)

	customer := &domain.User{FirstName: "Lee", Email: "lee@example.com", Role: domain.RoleUser, IsActive: true}
	require.NoError(t, db.Create(customer).Error)

	rec := &recorder{}
	svc := NewService(repository.NewQuoteRepository(db), repository.NewServiceRepository(db),
		repository.NewUserRepository(db), rec, rec, "admin@brightline.test")
	svc.now = func() time.Time { return testNow }
	return &fixture{svc: svc, db: db, rec: rec, customer: customer}
}

func request() CreateQuoteRequest {
	return CreateQuoteRequest{
		Customer:     CustomerInput{FirstName: "Lee", LastName: "Park", Email: "LEE@example.com", Phone: "512-555-0101"},
		Address:      domain.Address{Street: "9 Oak Ave", City: "Austin", State: "TX", ZipCode: "73301"},
		PropertyType: "residential",
		Description:  "Rewire the detached garage",
		Timeline:     "within-month",
	}
}

func sendRequest() SendQuoteRequest {
	return SendQuoteRequest{
		Items: []ItemInput{
			{Description: "Labor", Quantity: 6, UnitPrice: 95},
			{Description: "Wire and boxes", Quantity: 1, UnitPrice: 240.5},
		},
		TaxRate: 8.25,
	}
}

func TestCreate_GuestQuote(t *testing.T) {
	f := setup(t)

	q, err := f.svc.Create(context.Background(), 0, request())
	require.NoError(t, err)
	assert.Regexp(t, `^QT-\d{8}-[0-9A-F]{6}$`, q.QuoteNumber)
	assert.Equal(t, domain.QuotePending, q.Status)
	assert.Equal(t, "lee@example.com", q.Customer.Email)

	assert.Equal(t, []string{realtime.EventQuoteCreated}, f.rec.events)
	require.Len(t, f.rec.messages, 2)
	assert.Equal(t, notification.TemplateQuoteReceived, f.rec.messages[0].Template)
	assert.Equal(t, notification.TemplateQuoteAdmin, f.rec.messages[1].Template)
}

func TestCreate_UnknownService(t *testing.T) {
	f := setup(t)
	req := request()
	missing := int64(404)
	req.ServiceID = &missing

	_, err := f.svc.Create(context.Background(), 0, req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGet_OwnershipByEmail(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	q, err := f.svc.Create(ctx, 0, request())
	require.NoError(t, err)

	owner, err := f.svc.ResolveActor(ctx, f.customer.ID, "user")
	require.NoError(t, err)
	got, err := f.svc.Get(ctx, owner, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, got.ID)

	_, err = f.svc.Get(ctx, Actor{ID: 77, Role: "user", Email: "other@example.com"}, q.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Get(ctx, Actor{ID: 1, Role: "admin"}, q.ID)
	assert.NoError(t, err)
}

func TestSend_ComputesTotalsAndDefaultsValidity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	q, err := f.svc.Create(ctx, f.customer.ID, request())
	require.NoError(t, err)

	sent, err := f.svc.Send(ctx, q.ID, sendRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteSent, sent.Status)
	assert.InDelta(t, 810.5, sent.Subtotal, 0.001)
	assert.InDelta(t, 66.87, sent.Tax, 0.001)
	assert.InDelta(t, 877.37, sent.Total, 0.001)
	require.NotNil(t, sent.ValidUntil)
	assert.Equal(t, testNow.Add(domain.DefaultQuoteValidity), sent.ValidUntil.UTC())
	require.NotNil(t, sent.SentAt)

	last := f.rec.messages[len(f.rec.messages)-1]
	assert.Equal(t, notification.TemplateQuoteSent, last.Template)
	assert.Equal(t, "lee@example.com", last.To)

	_, err = f.svc.Send(ctx, q.ID, sendRequest())
	assert.ErrorIs(t, err, ErrCannotSend)
}

func TestAccept_RecordsResponse(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := Actor{ID: f.customer.ID, Role: "user", Email: f.customer.Email}

	q, err := f.svc.Create(ctx, f.customer.ID, request())
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, owner, q.ID, "")
	assert.ErrorIs(t, err, ErrNotAwaitingResponse)

	_, err = f.svc.Send(ctx, q.ID, sendRequest())
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, Actor{ID: 500, Role: "admin"}, q.ID, "")
	assert.ErrorIs(t, err, ErrForbidden)

	accepted, err := f.svc.Accept(ctx, owner, q.ID, "Go ahead")
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteAccepted, accepted.Status)
	assert.Equal(t, "Go ahead", accepted.ResponseNote)
	require.NotNil(t, accepted.RespondedAt)
	assert.Contains(t, f.rec.events, realtime.EventQuoteResponded)

	last := f.rec.messages[len(f.rec.messages)-1]
	assert.Equal(t, notification.TemplateQuoteResponse, last.Template)
	assert.Equal(t, "admin@brightline.test", last.To)
}

func TestRespond_ExpiredQuoteIsMarked(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := Actor{ID: f.customer.ID, Role: "user", Email: f.customer.Email}

	q, err := f.svc.Create(ctx, f.customer.ID, request())
	require.NoError(t, err)
	req := sendRequest()
	req.ValidUntil = "2026-04-05"
	_, err = f.svc.Send(ctx, q.ID, req)
	require.NoError(t, err)

	f.svc.now = func() time.Time { return testNow.AddDate(0, 0, 10) }
	_, err = f.svc.Reject(ctx, owner, q.ID, "")
	assert.ErrorIs(t, err, ErrQuoteExpired)

	stored, err := repository.NewQuoteRepository(f.db).GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteExpired, stored.Status)
}

func TestCounterOffer_OnlyFromSent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := Actor{ID: f.customer.ID, Role: "user", Email: f.customer.Email}

	q, err := f.svc.Create(ctx, f.customer.ID, request())
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, q.ID, sendRequest())
	require.NoError(t, err)

	countered, err := f.svc.CounterOffer(ctx, owner, q.ID, CounterOfferRequest{Amount: 750, Message: "Can you do 750?"})
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteCountered, countered.Status)
	require.NotNil(t, countered.CounterAmount)
	assert.Equal(t, 750.0, *countered.CounterAmount)

	_, err = f.svc.CounterOffer(ctx, owner, q.ID, CounterOfferRequest{Amount: 700})
	assert.ErrorIs(t, err, ErrNotAwaitingResponse)

	resent, err := f.svc.Send(ctx, q.ID, sendRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteSent, resent.Status)
}

func TestUpdate_RecalculatesOnItemChange(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	q, err := f.svc.Create(ctx, 0, request())
	require.NoError(t, err)

	items := []ItemInput{{Description: "Inspection", Quantity: 1, UnitPrice: 120}}
	rate := 10.0
	status := string(domain.QuoteReviewing)
	updated, err := f.svc.Update(ctx, q.ID, UpdateQuoteRequest{Items: &items, TaxRate: &rate, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteReviewing, updated.Status)
	assert.InDelta(t, 132.0, updated.Total, 0.001)

	bad := "tomorrow-ish"
	_, err = f.svc.Update(ctx, q.ID, UpdateQuoteRequest{ValidUntil: &bad})
	assert.ErrorIs(t, err, ErrInvalidDate)

	assert.ErrorIs(t, f.svc.Delete(ctx, 9999), ErrQuoteNotFound)
}
