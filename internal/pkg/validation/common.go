package validation

import (
	"regexp"
	"unicode"
)

// Shared patterns and rules reused across resource chains.
var (
	PhonePattern   = regexp.MustCompile(`^[+]?[\d\s\-().]{7,20}$`)
	ZipPattern     = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	DigitsPattern  = regexp.MustCompile(`^\d+$`)
	TimeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// StrongPassword requires upper and lower case letters and a digit.
func StrongPassword(msg string) Check {
	return Custom(func(value any, _ map[string]any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		var upper, lower, digit bool
		for _, r := range s {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return upper && lower && digit
	}, msg)
}

// Pagination validates page/limit query parameters on list routes.
var Pagination = NewChain("pagination",
	Field("page", Pattern(DigitsPattern, "Page must be a positive integer"), Min(1, "Page must be a positive integer")),
	Field("limit", Pattern(DigitsPattern, "Limit must be between 1 and 100"), Min(1, "Limit must be between 1 and 100"), Max(100, "Limit must be between 1 and 100")),
)

// IDParam validates a numeric :id path parameter.
var IDParam = NewChain("id",
	Field("id", Required("ID is required"), Pattern(DigitsPattern, "Invalid ID format"), Min(1, "Invalid ID format")),
)

// AddressRules returns the optional address checks rooted at prefix.
func AddressRules(prefix string) []FieldRule {
	return []FieldRule{
		Field(prefix+".street", MaxLength(200, "Street cannot exceed 200 characters")),
		Field(prefix+".city", MaxLength(100, "City cannot exceed 100 characters")),
		Field(prefix+".state", MaxLength(50, "State cannot exceed 50 characters")),
		Field(prefix+".zipCode", Pattern(ZipPattern, "Please provide a valid ZIP code")),
	}
}
