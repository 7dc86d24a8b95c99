package blog

import "errors"

var (
	ErrBlogNotFound    = errors.New("blog not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNotPublished    = errors.New("blog is not published")
)
