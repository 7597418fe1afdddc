// internal/app/system/formschema/formschema.go
//
// Package formschema evaluates declarative field descriptors against a
// generic document. A descriptor can make a field required or forced-absent
// depending on other fields of the same document, so the effective schema
// is always a pure function of (schema, document).
package formschema

import (
	"fmt"
	"strings"
)

// Predicate decides whether a conditional rule applies to the document.
type Predicate func(doc map[string]any) bool

// Validation checks one field value and returns an error message, or ""
// when the value is acceptable.
type Validation func(v any) string

// Rule is a conditional override on a field. When its predicate holds, the
// non-zero parts of the rule replace or extend the field's base behavior.
type Rule struct {
	When        Predicate
	Required    *bool
	Force       bool
	ForcedValue any
	Validations []Validation
}

// Field describes one document field.
type Field struct {
	Name        string
	Required    bool
	Validations []Validation
	Rules       []Rule
}

// Effective is the resolved behavior of one field for a given document.
// Forced fields carry ForcedValue and ignore client input entirely.
type Effective struct {
	Required    bool
	Forced      bool
	ForcedValue any
	Validations []Validation
}

// Schema is an ordered set of field descriptors.
type Schema struct {
	Fields []Field
}

// Eval resolves every field against doc. Later rules win when several
// predicates hold for the same field.
func (s Schema) Eval(doc map[string]any) map[string]Effective {
	out := make(map[string]Effective, len(s.Fields))
	for _, f := range s.Fields {
		eff := Effective{Required: f.Required, Validations: f.Validations}
		for _, r := range f.Rules {
			if r.When != nil && !r.When(doc) {
				continue
			}
			if r.Required != nil {
				eff.Required = *r.Required
			}
			if r.Force {
				eff.Forced = true
				eff.ForcedValue = r.ForcedValue
				eff.Required = false
			}
			if len(r.Validations) > 0 {
				eff.Validations = append(eff.Validations, r.Validations...)
			}
		}
		out[f.Name] = eff
	}
	return out
}

// Validate evaluates the schema and checks doc against it. Forced fields
// are never validated; their value is overwritten on write instead.
func (s Schema) Validate(doc map[string]any) ErrorTree {
	errs := ErrorTree{}
	for name, eff := range s.Eval(doc) {
		if eff.Forced {
			continue
		}
		v := doc[name]
		if eff.Required && absent(v) {
			errs.Add(name, "This field is required.")
			continue
		}
		if absent(v) {
			continue
		}
		for _, check := range eff.Validations {
			if msg := check(v); msg != "" {
				errs.Add(name, msg)
				break
			}
		}
	}
	return errs
}

// ApplyForced overwrites forced fields on doc with their forced values and
// returns doc. Forced-absent fields are removed.
func (s Schema) ApplyForced(doc map[string]any) map[string]any {
	for name, eff := range s.Eval(doc) {
		if !eff.Forced {
			continue
		}
		if eff.ForcedValue == nil {
			delete(doc, name)
		} else {
			doc[name] = eff.ForcedValue
		}
	}
	return doc
}

// RequiredTrue and RequiredFalse are ready-made pointers for Rule.Required.
var (
	RequiredTrue  = ptr(true)
	RequiredFalse = ptr(false)
)

func ptr(b bool) *bool { return &b }

// ForceAbsent builds a rule that removes the field whenever pred holds.
func ForceAbsent(pred Predicate) Rule {
	return Rule{When: pred, Force: true, ForcedValue: nil}
}

// FieldEquals builds a predicate testing another field of the document
// against a literal. Numeric JSON values compare through their float64 form.
func FieldEquals(field string, want any) Predicate {
	return func(doc map[string]any) bool {
		got := doc[field]
		if wi, ok := want.(int); ok {
			if gf, ok := got.(float64); ok {
				return gf == float64(wi)
			}
			if gi, ok := got.(int); ok {
				return gi == wi
			}
			return false
		}
		return got == want
	}
}

// NonEmptyString rejects whitespace-only strings.
func NonEmptyString(v any) string {
	s, ok := v.(string)
	if !ok {
		return "Expected text."
	}
	if strings.TrimSpace(s) == "" {
		return "This field may not be blank."
	}
	return ""
}

// MaxNumber rejects numeric values above limit.
func MaxNumber(limit float64) Validation {
	return func(v any) string {
		n, ok := asNumber(v)
		if !ok {
			return "Expected a number."
		}
		if n > limit {
			return fmt.Sprintf("Ensure this value is less than or equal to %v.", limit)
		}
		return ""
	}
}

// MinNumber rejects numeric values below limit.
func MinNumber(limit float64) Validation {
	return func(v any) string {
		n, ok := asNumber(v)
		if !ok {
			return "Expected a number."
		}
		if n < limit {
			return fmt.Sprintf("Ensure this value is greater than or equal to %v.", limit)
		}
		return ""
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func absent(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
