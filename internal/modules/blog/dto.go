package blog

import "brightline/internal/domain"

type CreateBlogRequest struct {
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	FeaturedImage   string   `json:"featuredImage"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Status          string   `json:"status"`
	IsFeatured      bool     `json:"isFeatured"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
}

// UpdateBlogRequest applies only the fields that are present.
type UpdateBlogRequest struct {
	Title           *string   `json:"title"`
	Excerpt         *string   `json:"excerpt"`
	Content         *string   `json:"content"`
	FeaturedImage   *string   `json:"featuredImage"`
	Category        *string   `json:"category"`
	Tags            *[]string `json:"tags"`
	Status          *string   `json:"status"`
	IsFeatured      *bool     `json:"isFeatured"`
	MetaTitle       *string   `json:"metaTitle"`
	MetaDescription *string   `json:"metaDescription"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

// BlogDetail is a single post with its discussion.
type BlogDetail struct {
	*domain.Blog
	Comments []domain.BlogComment `json:"comments"`
	Liked    bool                 `json:"liked"`
}

type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}
