package blog

import (
	"brightline/internal/domain"
	v "brightline/internal/pkg/validation"
)

var (
	createRules = v.NewChain("blog-create",
		v.Field("title", v.Required("Title is required"), v.MaxLength(200, "Title cannot exceed 200 characters")),
		v.Field("excerpt", v.Required("Excerpt is required"), v.MaxLength(500, "Excerpt cannot exceed 500 characters")),
		v.Field("content", v.Required("Content is required")),
		v.Field("category", v.Required("Category is required"), v.Enum(domain.BlogCategories, "Invalid category")),
		v.Field("tags", v.IsArray("Tags must be an array")),
		v.Field("status", v.Enum(domain.BlogStatuses, "Invalid status")),
		v.Field("featuredImage", v.IsURL("Featured image must be a valid URL")),
		v.Field("isFeatured", v.IsBoolean("isFeatured must be a boolean")),
		v.Field("metaTitle", v.MaxLength(70, "Meta title cannot exceed 70 characters")),
		v.Field("metaDescription", v.MaxLength(160, "Meta description cannot exceed 160 characters")),
	)

	updateRules = v.NewChain("blog-update",
		v.Field("title", v.MaxLength(200, "Title cannot exceed 200 characters")),
		v.Field("excerpt", v.MaxLength(500, "Excerpt cannot exceed 500 characters")),
		v.Field("category", v.Enum(domain.BlogCategories, "Invalid category")),
		v.Field("tags", v.IsArray("Tags must be an array")),
		v.Field("status", v.Enum(domain.BlogStatuses, "Invalid status")),
		v.Field("featuredImage", v.IsURL("Featured image must be a valid URL")),
		v.Field("isFeatured", v.IsBoolean("isFeatured must be a boolean")),
		v.Field("metaTitle", v.MaxLength(70, "Meta title cannot exceed 70 characters")),
		v.Field("metaDescription", v.MaxLength(160, "Meta description cannot exceed 160 characters")),
	)

	commentRules = v.NewChain("blog-comment",
		v.Field("content", v.Required("Comment content is required"), v.MaxLength(1000, "Comment cannot exceed 1000 characters")),
	)

	listRules = v.Pagination.Extend("blog-list",
		v.Field("category", v.Enum(domain.BlogCategories, "Invalid category")),
		v.Field("featured", v.IsBoolean("featured must be a boolean")),
	)

	searchRules = v.Pagination.Extend("blog-search",
		v.Field("q", v.Required("Search query is required"), v.MinLength(2, "Search query must be at least 2 characters")),
	)
)
