package storefront

import (
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/cart"
)

// CartView is the cart as rendered to the shopper.
type CartView struct {
	Items         []cart.Item     `json:"items"`
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
	EVPointTotal  decimal.Decimal `json:"evPointTotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	Formatted     FormattedTotals `json:"formatted"`
	Authenticated bool            `json:"authenticated"`
}

// FormattedTotals holds the display strings for the cart totals.
type FormattedTotals struct {
	Total         string `json:"total"`
	EVPointTotal  string `json:"evPointTotal"`
	TotalDiscount string `json:"totalDiscount"`
	GrandTotal    string `json:"grandTotal"`
}

func newCartView(c *cart.Store, f *cart.Formatter) CartView {
	format := cart.FormatCurrency
	if f != nil {
		format = f.Format
	}

	items := c.Items()
	if items == nil {
		items = []cart.Item{}
	}
	v := CartView{
		Items:         items,
		Count:         c.Count(),
		Total:         c.Total(),
		EVPointTotal:  c.EVPointTotal(),
		TotalDiscount: c.TotalDiscount(),
		GrandTotal:    c.GrandTotal(),
		Authenticated: c.Authenticated(),
	}
	v.Formatted = FormattedTotals{
		Total:         format(v.Total),
		EVPointTotal:  format(v.EVPointTotal),
		TotalDiscount: format(v.TotalDiscount),
		GrandTotal:    format(v.GrandTotal),
	}
	return v
}

// withNotices attaches collected notices to the response meta.
func withNotices(notices *cart.NoticeCollector) handler.JSONOption {
	if n := notices.Drain(); len(n) > 0 {
		return handler.WithJSONMeta("notices", n)
	}
	return handler.WithJSONMeta("notices", nil)
}
