package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending     BookingStatus = "pending"
	BookingConfirmed   BookingStatus = "confirmed"
	BookingInProgress  BookingStatus = "in-progress"
	BookingCompleted   BookingStatus = "completed"
	BookingCancelled   BookingStatus = "cancelled"
	BookingRescheduled BookingStatus = "rescheduled"
)

var (
	BookingStatuses = []string{
		string(BookingPending), string(BookingConfirmed), string(BookingInProgress),
		string(BookingCompleted), string(BookingCancelled), string(BookingRescheduled),
	}
	Priorities = []string{"low", "medium", "high", "emergency"}
	TimeSlots  = []string{"morning", "afternoon", "evening"}
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:     {BookingConfirmed, BookingCancelled, BookingRescheduled},
	BookingConfirmed:   {BookingInProgress, BookingCancelled, BookingRescheduled},
	BookingRescheduled: {BookingConfirmed, BookingCancelled, BookingRescheduled},
	BookingInProgress:  {BookingCompleted},
}

// Customer is the contact person submitted with public forms.
type Customer struct {
	FirstName string `gorm:"size:50" json:"firstName"`
	LastName  string `gorm:"size:50" json:"lastName"`
	Email     string `gorm:"size:255;index" json:"email"`
	Phone     string `gorm:"size:30" json:"phone"`
}

type Booking struct {
	ID                 int64            `gorm:"primaryKey" json:"id"`
	BookingNumber      string           `gorm:"uniqueIndex;size:32" json:"bookingNumber"`
	UserID             *int64           `gorm:"index" json:"userId,omitempty"`
	Customer           Customer         `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	ServiceID          int64            `gorm:"index" json:"serviceId"`
	Service            *ServiceOffering `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Address            Address          `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	PreferredDate      time.Time        `json:"preferredDate"`
	PreferredTime      string           `gorm:"size:20" json:"preferredTime"`
	Description        string           `gorm:"type:text" json:"description"`
	Priority           string           `gorm:"size:20;index" json:"priority"`
	Status             BookingStatus    `gorm:"size:20;index" json:"status"`
	TechnicianID       *int64           `gorm:"index" json:"technicianId,omitempty"`
	Technician         *User            `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	ScheduledDate      *time.Time       `json:"scheduledDate,omitempty"`
	EstimatedCost      *float64         `json:"estimatedCost,omitempty"`
	FinalCost          *float64         `json:"finalCost,omitempty"`
	AdminNotes         string           `gorm:"type:text" json:"adminNotes,omitempty"`
	CompletionNotes    string           `gorm:"type:text" json:"completionNotes,omitempty"`
	CancellationReason string           `gorm:"type:text" json:"cancellationReason,omitempty"`
	RescheduleCount    int              `json:"rescheduleCount"`
	ConfirmedAt        *time.Time       `json:"confirmedAt,omitempty"`
	StartedAt          *time.Time       `json:"startedAt,omitempty"`
	CompletedAt        *time.Time       `json:"completedAt,omitempty"`
	CancelledAt        *time.Time       `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.BookingNumber == "" {
		b.BookingNumber = NewReference("BK", time.Now())
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	if b.Priority == "" {
		b.Priority = "medium"
	}
	return nil
}

func (b *Booking) CanTransition(to BookingStatus) bool {
	return slices.Contains(bookingTransitions[b.Status], to)
}

// IsOwnedBy matches either the linked account or the customer email.
func (b *Booking) IsOwnedBy(userID int64, email string) bool {
	if b.UserID != nil && *b.UserID == userID {
		return true
	}
	return email != "" && NormalizeEmail(b.Customer.Email) == NormalizeEmail(email)
}

func (b *Booking) IsAssignedTo(userID int64) bool {
	return b.TechnicianID != nil && *b.TechnicianID == userID
}

// NewReference builds human readable numbers such as BK-20260301-3FA9C2.
func NewReference(prefix string, at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, at.Format("20060102"), suffix)
}
