package domain

import (
	"math"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
	BlogArchived  BlogStatus = "archived"
)

var (
	BlogStatuses   = []string{string(BlogDraft), string(BlogPublished), string(BlogArchived)}
	BlogCategories = []string{
		"electrical-safety",
		"home-improvement",
		"commercial",
		"energy-efficiency",
		"smart-home",
		"maintenance",
		"industry-news",
	}
)

const wordsPerMinute = 200

type Blog struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:200" json:"title"`
	Slug            string     `gorm:"uniqueIndex;size:255" json:"slug"`
	Excerpt         string     `gorm:"size:500" json:"excerpt"`
	Content         string     `gorm:"type:text" json:"content"`
	FeaturedImage   string     `json:"featuredImage,omitempty"`
	Category        string     `gorm:"size:50;index" json:"category"`
	Tags            []string   `gorm:"serializer:json" json:"tags"`
	AuthorID        int64      `gorm:"index" json:"authorId"`
	Author          *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Status          BlogStatus `gorm:"size:20;index" json:"status"`
	IsFeatured      bool       `json:"isFeatured"`
	Views           int64      `json:"views"`
	LikesCount      int64      `json:"likesCount"`
	CommentsCount   int64      `json:"commentsCount"`
	ReadTime        int        `json:"readTime"`
	MetaTitle       string     `gorm:"size:70" json:"metaTitle,omitempty"`
	MetaDescription string     `gorm:"size:160" json:"metaDescription,omitempty"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type BlogLike struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	BlogID    int64     `gorm:"uniqueIndex:idx_blog_like" json:"blogId"`
	UserID    int64     `gorm:"uniqueIndex:idx_blog_like" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type BlogComment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	BlogID    int64     `gorm:"index" json:"blogId"`
	UserID    int64     `json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// SetTitle changes the title and regenerates the slug when the title differs.
func (b *Blog) SetTitle(title string) {
	title = strings.TrimSpace(title)
	if title == b.Title && b.Slug != "" {
		return
	}
	b.Title = title
	b.Slug = slug.Make(title)
}

func (b *Blog) BeforeSave(tx *gorm.DB) error {
	if b.Slug == "" {
		b.Slug = slug.Make(b.Title)
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	b.ReadTime = ReadTime(b.Content)
	if b.Status == BlogPublished && b.PublishedAt == nil {
		now := time.Now()
		b.PublishedAt = &now
	}
	return nil
}

var textOnly = bluemonday.StrictPolicy()

// ReadTime estimates minutes to read HTML content; never less than one.
func ReadTime(content string) int {
	words := len(strings.Fields(textOnly.Sanitize(content)))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
