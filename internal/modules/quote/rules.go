package quote

import (
	"brightline/internal/domain"
	v "brightline/internal/pkg/validation"
)

// lineItems checks every entry of an items array; the engine addresses
// scalar paths only, so array elements are inspected here.
func lineItems(msg string) v.Check {
	return v.Custom(func(value any, _ map[string]any) bool {
		items, ok := value.([]any)
		if !ok || len(items) == 0 {
			return false
		}
		for _, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok {
				return false
			}
			desc, _ := item["description"].(string)
			qty, qok := item["quantity"].(float64)
			price, pok := item["unitPrice"].(float64)
			if desc == "" || !qok || !pok || qty <= 0 || price < 0 {
				return false
			}
		}
		return true
	}, msg)
}

const itemsMessage = "At least one line item with description, positive quantity and unit price is required"

var (
	createRules = v.NewChain("quote-create",
		v.Field("customer.firstName", v.Required("First name is required"), v.MaxLength(50, "First name cannot exceed 50 characters")),
		v.Field("customer.lastName", v.Required("Last name is required"), v.MaxLength(50, "Last name cannot exceed 50 characters")),
		v.Field("customer.email", v.Required("Email is required"), v.IsEmail("Please provide a valid email")),
		v.Field("customer.phone", v.Required("Phone number is required"), v.Pattern(v.PhonePattern, "Please provide a valid phone number")),
		v.Field("address.street", v.Required("Street address is required"), v.MaxLength(200, "Street cannot exceed 200 characters")),
		v.Field("address.city", v.Required("City is required"), v.MaxLength(100, "City cannot exceed 100 characters")),
		v.Field("address.state", v.Required("State is required"), v.MaxLength(50, "State cannot exceed 50 characters")),
		v.Field("address.zipCode", v.Required("ZIP code is required"), v.Pattern(v.ZipPattern, "Please provide a valid ZIP code")),
		v.Field("serviceId", v.Min(1, "Valid service ID is required")),
		v.Field("propertyType", v.Required("Property type is required"), v.Enum(domain.PropertyTypes, "Invalid property type")),
		v.Field("description", v.Required("Project description is required"), v.MinLength(10, "Description must be at least 10 characters"), v.MaxLength(2000, "Description cannot exceed 2000 characters")),
		v.Field("timeline", v.Required("Timeline is required"), v.Enum(domain.QuoteTimelines, "Invalid timeline")),
		v.Field("budgetRange", v.Enum(domain.BudgetRanges, "Invalid budget range")),
		v.Field("attachments", v.IsArray("Attachments must be an array"), v.MaxLength(5, "Maximum 5 attachments allowed")),
	)

	updateRules = v.NewChain("quote-update",
		v.Field("status", v.Enum(domain.QuoteStatuses, "Invalid status")),
		v.Field("adminNotes", v.MaxLength(2000, "Admin notes cannot exceed 2000 characters")),
		v.Field("items", lineItems(itemsMessage)),
		v.Field("taxRate", v.Min(0, "Tax rate must be between 0 and 100"), v.Max(100, "Tax rate must be between 0 and 100")),
		v.Field("validUntil", v.IsISODate("Please provide a valid date")),
	)

	sendRules = v.NewChain("quote-send",
		v.Field("items", v.Required("Line items are required"), lineItems(itemsMessage)),
		v.Field("taxRate", v.Min(0, "Tax rate must be between 0 and 100"), v.Max(100, "Tax rate must be between 0 and 100")),
		v.Field("validUntil", v.IsISODate("Please provide a valid date")),
		v.Field("customerMessage", v.MaxLength(2000, "Message cannot exceed 2000 characters")),
	)

	respondRules = v.NewChain("quote-respond",
		v.Field("message", v.MaxLength(1000, "Message cannot exceed 1000 characters")),
	)

	counterRules = v.NewChain("quote-counter",
		v.Field("amount", v.Required("Counter offer amount is required"), v.Min(0.01, "Counter offer amount must be positive")),
		v.Field("message", v.MaxLength(1000, "Message cannot exceed 1000 characters")),
	)

	listRules = v.Pagination.Extend("quote-list",
		v.Field("status", v.Enum(domain.QuoteStatuses, "Invalid status")),
		v.Field("propertyType", v.Enum(domain.PropertyTypes, "Invalid property type")),
		v.Field("startDate", v.IsISODate("Invalid start date")),
		v.Field("endDate", v.IsISODate("Invalid end date")),
	)
)
