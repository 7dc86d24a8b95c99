package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"brightline/internal/pkg/utils"
)

// Kind tags the variant of a Check.
type Kind string

const (
	KindRequired  Kind = "required"
	KindMaxLength Kind = "maxLength"
	KindMinLength Kind = "minLength"
	KindMin       Kind = "min"
	KindMax       Kind = "max"
	KindPattern   Kind = "pattern"
	KindEnum      Kind = "enum"
	KindIsEmail   Kind = "isEmail"
	KindIsURL     Kind = "isURL"
	KindIsISODate Kind = "isISODate"
	KindIsBoolean Kind = "isBoolean"
	KindIsArray   Kind = "isArray"
	KindCustom    Kind = "custom"
)

// Predicate receives the field value and the whole body.
type Predicate func(value any, body map[string]any) bool

// Check is a single serializable rule descriptor. Only the fields relevant to
// Kind are populated.
type Check struct {
	Kind      Kind           `json:"kind"`
	Length    int            `json:"length,omitempty"`
	Bound     float64        `json:"bound,omitempty"`
	Pattern   *regexp.Regexp `json:"-"`
	Values    []string       `json:"values,omitempty"`
	Predicate Predicate      `json:"-"`
	Message   string         `json:"message"`
}

var fieldValidate = validator.New()

func Required(msg string) Check { return Check{Kind: KindRequired, Message: msg} }

func MaxLength(n int, msg string) Check { return Check{Kind: KindMaxLength, Length: n, Message: msg} }

func MinLength(n int, msg string) Check { return Check{Kind: KindMinLength, Length: n, Message: msg} }

func Min(bound float64, msg string) Check { return Check{Kind: KindMin, Bound: bound, Message: msg} }

func Max(bound float64, msg string) Check { return Check{Kind: KindMax, Bound: bound, Message: msg} }

func Pattern(re *regexp.Regexp, msg string) Check {
	return Check{Kind: KindPattern, Pattern: re, Message: msg}
}

func Enum(values []string, msg string) Check {
	if msg == "" {
		msg = fmt.Sprintf("Must be one of: %s", strings.Join(values, ", "))
	}
	return Check{Kind: KindEnum, Values: values, Message: msg}
}

func IsEmail(msg string) Check   { return Check{Kind: KindIsEmail, Message: msg} }
func IsURL(msg string) Check     { return Check{Kind: KindIsURL, Message: msg} }
func IsISODate(msg string) Check { return Check{Kind: KindIsISODate, Message: msg} }
func IsBoolean(msg string) Check { return Check{Kind: KindIsBoolean, Message: msg} }
func IsArray(msg string) Check   { return Check{Kind: KindIsArray, Message: msg} }

func Custom(p Predicate, msg string) Check {
	return Check{Kind: KindCustom, Predicate: p, Message: msg}
}

// passes reports whether a present value satisfies the check.
func (ch Check) passes(value any, body map[string]any) bool {
	switch ch.Kind {
	case KindRequired:
		return !isAbsent(value)
	case KindMaxLength:
		n, ok := length(value)
		return ok && n <= ch.Length
	case KindMinLength:
		n, ok := length(value)
		return ok && n >= ch.Length
	case KindMin:
		f, ok := number(value)
		return ok && f >= ch.Bound
	case KindMax:
		f, ok := number(value)
		return ok && f <= ch.Bound
	case KindPattern:
		s, ok := value.(string)
		return ok && ch.Pattern != nil && ch.Pattern.MatchString(s)
	case KindEnum:
		s, ok := value.(string)
		return ok && slices.Contains(ch.Values, s)
	case KindIsEmail:
		s, ok := value.(string)
		return ok && fieldValidate.Var(strings.TrimSpace(s), "required,email") == nil
	case KindIsURL:
		s, ok := value.(string)
		return ok && isURL(s)
	case KindIsISODate:
		s, ok := value.(string)
		return ok && isISODate(s)
	case KindIsBoolean:
		return isBoolean(value)
	case KindIsArray:
		_, ok := value.([]any)
		return ok
	case KindCustom:
		return ch.Predicate != nil && ch.Predicate(value, body)
	}
	return false
}

// isAbsent treats missing, null and whitespace-only strings as absent.
func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func length(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(strings.TrimSpace(v)), true
	case []any:
		return len(v), true
	}
	return 0, false
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil && !math.IsNaN(f)
	}
	return 0, false
}

// isURL accepts absolute URLs and site-relative paths such as /uploads/blog/x.jpg.
func isURL(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		_, err := url.ParseRequestURI(s)
		return err == nil
	}
	return fieldValidate.Var(s, "required,url") == nil
}

// isISODate accepts exactly what handlers later parse with utils.ParseTime.
func isISODate(s string) bool {
	_, err := utils.ParseTime(s)
	return err == nil
}

func isBoolean(value any) bool {
	switch v := value.(type) {
	case bool:
		return true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "false", "1", "0":
			return true
		}
	case float64:
		return v == 0 || v == 1
	}
	return false
}
