package domain

import "time"

type ContactStatus string

const (
	ContactNew       ContactStatus = "new"
	ContactRead      ContactStatus = "read"
	ContactResponded ContactStatus = "responded"
	ContactArchived  ContactStatus = "archived"
)

var (
	ContactStatuses   = []string{string(ContactNew), string(ContactRead), string(ContactResponded), string(ContactArchived)}
	ContactPriorities = []string{"low", "medium", "high", "urgent"}
	ContactMethods    = []string{"email", "phone"}
)

type Contact struct {
	ID               int64         `gorm:"primaryKey" json:"id"`
	FirstName        string        `gorm:"size:50" json:"firstName"`
	LastName         string        `gorm:"size:50" json:"lastName"`
	Email            string        `gorm:"size:255;index" json:"email"`
	Phone            string        `gorm:"size:30" json:"phone,omitempty"`
	Company          string        `gorm:"size:100" json:"company,omitempty"`
	Subject          string        `gorm:"size:200" json:"subject"`
	Message          string        `gorm:"type:text" json:"message"`
	ServiceInterest  string        `gorm:"size:50" json:"serviceInterest,omitempty"`
	PreferredContact string        `gorm:"size:10" json:"preferredContact"`
	Status           ContactStatus `gorm:"size:20;index" json:"status"`
	Priority         string        `gorm:"size:20;index" json:"priority"`
	IsRead           bool          `gorm:"index" json:"isRead"`
	ReadAt           *time.Time    `json:"readAt,omitempty"`
	RespondedAt      *time.Time    `json:"respondedAt,omitempty"`
	AssignedToID     *int64        `gorm:"index" json:"assignedToId,omitempty"`
	AssignedTo       *User         `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	Notes            []ContactNote `gorm:"foreignKey:ContactID" json:"notes,omitempty"`
	Source           string        `gorm:"size:50" json:"source,omitempty"`
	IPAddress        string        `gorm:"size:64" json:"-"`
	UserAgent        string        `json:"-"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

type ContactNote struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ContactID int64     `gorm:"index" json:"contactId"`
	AuthorID  int64     `json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ApplyStatus moves the message to status and stamps the matching timestamps.
func (c *Contact) ApplyStatus(status ContactStatus, now time.Time) {
	c.Status = status
	if status != ContactNew && !c.IsRead {
		c.MarkRead(now)
	}
	if status == ContactResponded && c.RespondedAt == nil {
		c.RespondedAt = &now
	}
}

func (c *Contact) MarkRead(now time.Time) {
	c.IsRead = true
	if c.ReadAt == nil {
		c.ReadAt = &now
	}
	if c.Status == ContactNew {
		c.Status = ContactRead
	}
}

// AllModels lists every table for AutoMigrate.
func AllModels() []any {
	return []any{
		&User{},
		&ServiceOffering{},
		&Blog{},
		&BlogLike{},
		&BlogComment{},
		&Booking{},
		&Quote{},
		&Contact{},
		&ContactNote{},
	}
}
