package domain

import (
	"math"
	"slices"
	"time"

	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuotePending   QuoteStatus = "pending"
	QuoteReviewing QuoteStatus = "reviewing"
	QuoteSent      QuoteStatus = "sent"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteRejected  QuoteStatus = "rejected"
	QuoteCountered QuoteStatus = "countered"
	QuoteExpired   QuoteStatus = "expired"
)

var (
	QuoteStatuses = []string{
		string(QuotePending), string(QuoteReviewing), string(QuoteSent), string(QuoteAccepted),
		string(QuoteRejected), string(QuoteCountered), string(QuoteExpired),
	}
	PropertyTypes  = []string{"residential", "commercial", "industrial"}
	QuoteTimelines = []string{"asap", "within-week", "within-month", "flexible"}
	BudgetRanges   = []string{"under-500", "500-1000", "1000-5000", "5000-10000", "over-10000", "not-sure"}
)

const DefaultQuoteValidity = 30 * 24 * time.Hour

type QuoteItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

type Quote struct {
	ID              int64            `gorm:"primaryKey" json:"id"`
	QuoteNumber     string           `gorm:"uniqueIndex;size:32" json:"quoteNumber"`
	UserID          *int64           `gorm:"index" json:"userId,omitempty"`
	Customer        Customer         `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	Address         Address          `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	ServiceID       *int64           `gorm:"index" json:"serviceId,omitempty"`
	Service         *ServiceOffering `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	PropertyType    string           `gorm:"size:20" json:"propertyType"`
	Description     string           `gorm:"type:text" json:"description"`
	Timeline        string           `gorm:"size:20" json:"timeline"`
	BudgetRange     string           `gorm:"size:20" json:"budgetRange,omitempty"`
	Attachments     []string         `gorm:"serializer:json" json:"attachments"`
	Status          QuoteStatus      `gorm:"size:20;index" json:"status"`
	Items           []QuoteItem      `gorm:"serializer:json" json:"items"`
	Subtotal        float64          `json:"subtotal"`
	TaxRate         float64          `json:"taxRate"`
	Tax             float64          `json:"tax"`
	Total           float64          `json:"total"`
	ValidUntil      *time.Time       `json:"validUntil,omitempty"`
	AdminNotes      string           `gorm:"type:text" json:"adminNotes,omitempty"`
	CustomerMessage string           `gorm:"type:text" json:"customerMessage,omitempty"`
	CounterAmount   *float64         `json:"counterAmount,omitempty"`
	CounterMessage  string           `gorm:"type:text" json:"counterMessage,omitempty"`
	ResponseNote    string           `gorm:"type:text" json:"responseNote,omitempty"`
	SentAt          *time.Time       `json:"sentAt,omitempty"`
	RespondedAt     *time.Time       `json:"respondedAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.QuoteNumber == "" {
		q.QuoteNumber = NewReference("QT", time.Now())
	}
	if q.Status == "" {
		q.Status = QuotePending
	}
	return nil
}

func (q *Quote) BeforeSave(tx *gorm.DB) error {
	if q.Attachments == nil {
		q.Attachments = []string{}
	}
	if q.Items == nil {
		q.Items = []QuoteItem{}
	}
	return nil
}

// Recalculate derives line totals, subtotal, tax and total, rounded to cents.
func (q *Quote) Recalculate() {
	var subtotal float64
	for i := range q.Items {
		q.Items[i].Total = roundCents(q.Items[i].Quantity * q.Items[i].UnitPrice)
		subtotal += q.Items[i].Total
	}
	q.Subtotal = roundCents(subtotal)
	q.Tax = roundCents(q.Subtotal * q.TaxRate / 100)
	q.Total = roundCents(q.Subtotal + q.Tax)
}

func (q *Quote) IsExpired(now time.Time) bool {
	return q.ValidUntil != nil && now.After(*q.ValidUntil)
}

// AwaitingResponse is true while the customer can still accept, reject or counter.
func (q *Quote) AwaitingResponse() bool {
	return slices.Contains([]QuoteStatus{QuoteSent, QuoteCountered}, q.Status)
}

func (q *Quote) IsOwnedBy(userID int64, email string) bool {
	if q.UserID != nil && *q.UserID == userID {
		return true
	}
	return email != "" && NormalizeEmail(q.Customer.Email) == NormalizeEmail(email)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
