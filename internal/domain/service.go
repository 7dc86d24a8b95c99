package domain

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ServiceCategories = []string{"residential", "commercial", "industrial", "emergency", "maintenance", "installation"}
	PriceTypes        = []string{"fixed", "hourly", "quote"}
)

// ServiceOffering is one electrical service listed on the site.
type ServiceOffering struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:100" json:"name"`
	Slug              string    `gorm:"uniqueIndex;size:150" json:"slug"`
	ShortDescription  string    `gorm:"size:200" json:"shortDescription"`
	Description       string    `gorm:"type:text" json:"description"`
	Category          string    `gorm:"size:30;index" json:"category"`
	Icon              string    `json:"icon,omitempty"`
	Image             string    `json:"image,omitempty"`
	Features          []string  `gorm:"serializer:json" json:"features"`
	PriceType         string    `gorm:"size:20" json:"priceType"`
	BasePrice         float64   `json:"basePrice"`
	EstimatedDuration string    `gorm:"size:50" json:"estimatedDuration,omitempty"`
	IsActive          bool      `json:"isActive"`
	IsFeatured        bool      `json:"isFeatured"`
	SortOrder         int       `json:"sortOrder"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (ServiceOffering) TableName() string { return "services" }

func (s *ServiceOffering) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == s.Name && s.Slug != "" {
		return
	}
	s.Name = name
	s.Slug = slug.Make(name)
}

func (s *ServiceOffering) BeforeSave(tx *gorm.DB) error {
	if s.Slug == "" {
		s.Slug = slug.Make(s.Name)
	}
	if s.Features == nil {
		s.Features = []string{}
	}
	if s.PriceType == "" {
		s.PriceType = "quote"
	}
	return nil
}
