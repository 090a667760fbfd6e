package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts for display in one locale and currency.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
	scale   int
}

// NewFormatter builds a formatter from a BCP 47 locale and an ISO 4217 code.
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)

	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
		scale:   scale,
	}, nil
}

// Format returns the amount with the locale's currency symbol and grouping.
func (f *Formatter) Format(v decimal.Decimal) string {
	amount := v.Round(int32(f.scale)).InexactFloat64()
	return f.printer.Sprintf("%v %v",
		currency.Symbol(f.unit),
		number.Decimal(amount, number.Scale(f.scale)),
	)
}

var defaultFormatter = func() *Formatter {
	f, err := NewFormatter("id-ID", "IDR")
	if err != nil {
		panic(err)
	}
	return f
}()

// FormatCurrency formats v with the default storefront locale (Indonesian
// rupiah). Display only.
func FormatCurrency(v decimal.Decimal) string {
	return defaultFormatter.Format(v)
}
