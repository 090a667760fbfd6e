package validator

import (
	"net/mail"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// PositiveInt validates that a count is greater than zero.
func PositiveInt(field string, value int) Rule {
	return Rule{
		Check: func() bool {
			return value > 0
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be greater than zero",
			TranslationKey: "validation.positive",
			TranslationValues: map[string]any{
				"field": field,
				"value": value,
			},
		},
	}
}

// IntAtMost validates value <= max.
func IntAtMost(field string, value, max int) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must not exceed " + strconv.Itoa(max),
			TranslationKey: "validation.max",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

func NonNegativeAmount(field string, value decimal.Decimal) Rule {
	return Rule{
		Check: func() bool {
			return !value.IsNegative()
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must not be negative",
			TranslationKey: "validation.non_negative_amount",
			TranslationValues: map[string]any{
				"field": field,
				"value": value.String(),
			},
		},
	}
}

// AmountAtMost validates value <= max.
func AmountAtMost(field string, value, max decimal.Decimal) Rule {
	return Rule{
		Check: func() bool {
			return value.LessThanOrEqual(max)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must not exceed " + max.String(),
			TranslationKey: "validation.max_amount",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max.String(),
			},
		},
	}
}

// Present validates that an optional value was supplied.
func Present(field string, ok bool) Rule {
	return Rule{
		Check: func() bool {
			return ok
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
