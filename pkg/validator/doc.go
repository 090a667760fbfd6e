// Package validator builds declarative field checks.
//
// A Rule pairs a Check func with translation-friendly error metadata. Apply
// evaluates rules and aggregates failures into ValidationErrors, which
// implements error and can be recovered with ExtractValidationErrors after
// wrapping:
//
//	err := validator.Apply(
//	    validator.RequiredString("name", p.Name),
//	    validator.NonNegativeAmount("discount", p.Discount),
//	    validator.PositiveInt("quantity", qty),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    fields := verrs.Map()
//	}
//
// Amount rules operate on shopspring/decimal values.
package validator
