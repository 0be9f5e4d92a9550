// Package validation evaluates per-step form rules.
//
// A Rule is a tagged union: Kind selects which of the value fields is
// inspected. Forms build their rule list from a typed struct, choosing
// conditional rules by discriminant, and Check folds the list into a map of
// field path to the first failing message.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind selects the check a Rule performs.
type Kind uint8

const (
	// KindRequired fails on a blank Text.
	KindRequired Kind = iota + 1
	// KindEmail fails unless Text is a well-formed e-mail address.
	KindEmail
	// KindDigits fails unless Text is exactly N decimal digits.
	KindDigits
	// KindTrue fails unless Flag is set.
	KindTrue
	// KindOneOf fails unless Text is one of Options.
	KindOneOf
	// KindMinItems fails when Count is below N.
	KindMinItems
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindEmail:
		return "email"
	case KindDigits:
		return "digits"
	case KindTrue:
		return "true"
	case KindOneOf:
		return "oneof"
	case KindMinItems:
		return "min_items"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Rule is a single check against one field.
type Rule struct {
	Kind    Kind
	Field   string
	Message string

	Text    string
	Flag    bool
	Count   int
	N       int
	Options []string
}

var engine = validator.New(validator.WithRequiredStructEnabled())

// Required builds a KindRequired rule.
func Required(field, value, message string) Rule {
	return Rule{Kind: KindRequired, Field: field, Text: value, Message: message}
}

// Email builds a KindEmail rule.
func Email(field, value, message string) Rule {
	return Rule{Kind: KindEmail, Field: field, Text: value, Message: message}
}

// Digits builds a KindDigits rule.
func Digits(field, value string, n int, message string) Rule {
	return Rule{Kind: KindDigits, Field: field, Text: value, N: n, Message: message}
}

// True builds a KindTrue rule.
func True(field string, value bool, message string) Rule {
	return Rule{Kind: KindTrue, Field: field, Flag: value, Message: message}
}

// OneOf builds a KindOneOf rule.
func OneOf(field, value string, options []string, message string) Rule {
	return Rule{Kind: KindOneOf, Field: field, Text: value, Options: options, Message: message}
}

// MinItems builds a KindMinItems rule.
func MinItems(field string, count, n int, message string) Rule {
	return Rule{Kind: KindMinItems, Field: field, Count: count, N: n, Message: message}
}

// Passes reports whether the rule holds.
func (r Rule) Passes() bool {
	switch r.Kind {
	case KindRequired:
		return strings.TrimSpace(r.Text) != ""
	case KindEmail:
		return engine.Var(r.Text, "required,email") == nil
	case KindDigits:
		return len(r.Text) == r.N && isDigits(r.Text)
	case KindTrue:
		return r.Flag
	case KindOneOf:
		return slices.Contains(r.Options, r.Text)
	case KindMinItems:
		return r.Count >= r.N
	default:
		return false
	}
}

// Check evaluates rules in order and keeps the first failure per field.
func Check(rules ...Rule) Errors {
	errs := Errors{}
	for _, r := range rules {
		if _, seen := errs[r.Field]; seen {
			continue
		}
		if !r.Passes() {
			errs[r.Field] = r.Message
		}
	}
	return errs
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
