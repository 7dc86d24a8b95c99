package services

import (
	"brightline/internal/domain"
	v "brightline/internal/pkg/validation"
)

var (
	createRules = v.NewChain("service-create",
		v.Field("name", v.Required("Service name is required"), v.MaxLength(100, "Service name cannot exceed 100 characters")),
		v.Field("shortDescription", v.Required("Short description is required"), v.MaxLength(200, "Short description cannot exceed 200 characters")),
		v.Field("description", v.Required("Description is required")),
		v.Field("category", v.Required("Category is required"), v.Enum(domain.ServiceCategories, "Invalid category")),
		v.Field("features", v.IsArray("Features must be an array")),
		v.Field("priceType", v.Enum(domain.PriceTypes, "Invalid price type")),
		v.Field("basePrice", v.Min(0, "Base price cannot be negative")),
		v.Field("image", v.IsURL("Image must be a valid URL")),
		v.Field("isActive", v.IsBoolean("isActive must be a boolean")),
		v.Field("isFeatured", v.IsBoolean("isFeatured must be a boolean")),
		v.Field("sortOrder", v.Min(0, "Sort order cannot be negative")),
	)

	updateRules = v.NewChain("service-update",
		v.Field("name", v.MaxLength(100, "Service name cannot exceed 100 characters")),
		v.Field("shortDescription", v.MaxLength(200, "Short description cannot exceed 200 characters")),
		v.Field("category", v.Enum(domain.ServiceCategories, "Invalid category")),
		v.Field("features", v.IsArray("Features must be an array")),
		v.Field("priceType", v.Enum(domain.PriceTypes, "Invalid price type")),
		v.Field("basePrice", v.Min(0, "Base price cannot be negative")),
		v.Field("image", v.IsURL("Image must be a valid URL")),
		v.Field("isActive", v.IsBoolean("isActive must be a boolean")),
		v.Field("isFeatured", v.IsBoolean("isFeatured must be a boolean")),
		v.Field("sortOrder", v.Min(0, "Sort order cannot be negative")),
	)

	listRules = v.Pagination.Extend("service-list",
		v.Field("category", v.Enum(domain.ServiceCategories, "Invalid category")),
		v.Field("featured", v.IsBoolean("featured must be a boolean")),
	)
)
