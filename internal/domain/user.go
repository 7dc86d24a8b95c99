package domain

import (
	"strings"
	"time"
)

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

type User struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	FirstName       string     `gorm:"size:50" json:"firstName"`
	LastName        string     `gorm:"size:50" json:"lastName"`
	Email           string     `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash    string     `json:"-"`
	Phone           string     `gorm:"size:30" json:"phone,omitempty"`
	Role            UserRole   `gorm:"size:20;index" json:"role"`
	Avatar          string     `json:"avatar,omitempty"`
	IsActive        bool       `json:"isActive"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	Address         Address    `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`

	EmailVerificationTokenHash string     `gorm:"index" json:"-"`
	EmailVerificationExpires   *time.Time `json:"-"`
	PasswordResetTokenHash     string     `gorm:"index" json:"-"`
	PasswordResetExpires       *time.Time `json:"-"`
	FailedLoginAttempts        int        `json:"-"`
	LockedUntil                *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
