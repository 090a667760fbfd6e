package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("joins field messages", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "is required"})
		errs.Add(validator.ValidationError{Field: "password", Message: "too short"})
		assert.Equal(t, "validation failed: email: is required; password: too short", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add(validator.ValidationError{Field: "price", Message: "a"})
	errs.Add(validator.ValidationError{Field: "name", Message: "b"})
	errs.Add(validator.ValidationError{Field: "price", Message: "c"})

	assert.True(t, errs.Has("price"))
	assert.False(t, errs.Has("id"))
	assert.Equal(t, []string{"price", "name"}, errs.Fields())
	assert.Equal(t, map[string][]string{"price": {"a", "c"}, "name": {"b"}}, errs.Map())
}

func TestApply(t *testing.T) {
	t.Run("nil when all rules pass", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("name", "Widget"),
			validator.PositiveInt("quantity", 1),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("name", "  "),
			validator.PositiveInt("quantity", 0),
			validator.Present("price", false),
		)
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{"name", "quantity", "price"}, verrs.Fields())
	})

	t.Run("survives wrapping", func(t *testing.T) {
		base := validator.Apply(validator.PositiveInt("quantity", -1))
		wrapped := fmt.Errorf("add to cart: %w", errors.Join(errors.New("cart.invalid_quantity"), base))

		assert.True(t, validator.IsValidationError(wrapped))
		assert.True(t, validator.ExtractValidationErrors(wrapped).Has("quantity"))
		assert.False(t, validator.IsValidationError(errors.New("plain")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}

func TestIntAtMost(t *testing.T) {
	assert.True(t, validator.IntAtMost("quantity", 99, 99).Check())
	assert.False(t, validator.IntAtMost("quantity", 100, 99).Check())

	err := validator.Apply(validator.IntAtMost("quantity", 1000, 99))
	require.Error(t, err)
	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "quantity", errs[0].Field)
	assert.Equal(t, "must not exceed 99", errs[0].Message)
}

func TestAmountRules(t *testing.T) {
	tests := []struct {
		name string
		rule validator.Rule
		ok   bool
	}{
		{"zero is non-negative", validator.NonNegativeAmount("discount", decimal.Zero), true},
		{"negative rejected", validator.NonNegativeAmount("discount", decimal.NewFromInt(-1)), false},
		{"equal to max", validator.AmountAtMost("price", decimal.NewFromInt(100), decimal.NewFromInt(100)), true},
		{"above max", validator.AmountAtMost("price", decimal.RequireFromString("100.01"), decimal.NewFromInt(100)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.rule.Check())
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validator.ValidEmail("email", "jane@example.com").Check())
	assert.False(t, validator.ValidEmail("email", "Jane <jane@example.com>").Check())
	assert.False(t, validator.ValidEmail("email", "not-an-email").Check())
	assert.False(t, validator.ValidEmail("email", "").Check())
}
