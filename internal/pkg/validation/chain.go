// Package validation evaluates declarative per-field rule sets against a
// decoded request body.
//
// A Chain is plain data: a list of FieldRules, each an ordered list of
// Checks. Chain.Validate is the single interpreter. For every field the first
// failing check produces exactly one FieldError and the remaining checks on
// that field are skipped; all fields are always evaluated.
//
// Absent values (missing, null or whitespace-only) are handled before any
// check runs, so declaration order does not matter for optional fields: an
// absent field fails only if its rule carries a Required check, and is
// skipped otherwise.
package validation

import (
	"strings"
)

// FieldError is one failed field in a rejected request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// FieldRule addresses a field by dot path, e.g. "customer.email".
type FieldRule struct {
	Field  string  `json:"field"`
	Checks []Check `json:"checks"`
}

// Chain is an immutable, named rule set built once per route.
type Chain struct {
	Name  string      `json:"name"`
	Rules []FieldRule `json:"rules"`
}

// Field is a small constructor to keep rule tables readable.
func Field(path string, checks ...Check) FieldRule {
	return FieldRule{Field: path, Checks: checks}
}

func NewChain(name string, rules ...FieldRule) Chain {
	return Chain{Name: name, Rules: rules}
}

// Validate runs every rule against body and returns nil when all pass.
func (c Chain) Validate(body map[string]any) []FieldError {
	var errs []FieldError
	for _, rule := range c.Rules {
		if fe, failed := rule.evaluate(body); failed {
			errs = append(errs, fe)
		}
	}
	return errs
}

func (r FieldRule) evaluate(body map[string]any) (FieldError, bool) {
	value, _ := Lookup(body, r.Field)

	if isAbsent(value) {
		for _, ch := range r.Checks {
			if ch.Kind == KindRequired {
				return FieldError{Field: r.Field, Message: ch.Message, Value: value}, true
			}
		}
		return FieldError{}, false
	}

	for _, ch := range r.Checks {
		if ch.Kind == KindRequired {
			continue
		}
		if !ch.passes(value, body) {
			return FieldError{Field: r.Field, Message: ch.Message, Value: value}, true
		}
	}
	return FieldError{}, false
}

// Lookup resolves a dot path in a decoded JSON object. A missing or non-object
// parent yields (nil, false), i.e. the nested field is absent.
func Lookup(body map[string]any, path string) (any, bool) {
	if body == nil {
		return nil, false
	}
	parts := strings.Split(path, ".")
	var cur any = body
	for _, part := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Fields lists the field paths the chain inspects.
func (c Chain) Fields() []string {
	out := make([]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		out = append(out, r.Field)
	}
	return out
}

// Extend returns a new chain with c's rules followed by rules.
func (c Chain) Extend(name string, rules ...FieldRule) Chain {
	out := make([]FieldRule, 0, len(c.Rules)+len(rules))
	out = append(out, c.Rules...)
	return Chain{Name: name, Rules: append(out, rules...)}
}
