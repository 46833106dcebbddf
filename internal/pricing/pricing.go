// Package pricing computes line prices from catalog data. It is a pure
// computation layer: no persistence, no rounding on intermediate sums.
package pricing

import (
	"github.com/shopspring/decimal"

	"go-shop-backend/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Tax carries the per-product GST configuration relevant to pricing.
type Tax struct {
	Enabled bool
	Type    string // models.GstTypeInclusive or models.GstTypeExclusive
	Percent decimal.Decimal
}

// TaxFromAffinity maps a catalog tax affinity row to pricing input.
// A nil row means tax is disabled for the product.
func TaxFromAffinity(t *models.ProductTaxAffinity) Tax {
	if t == nil {
		return Tax{}
	}
	return Tax{
		Enabled: t.GstEnabled,
		Type:    t.GstType,
		Percent: t.GstPercent,
	}
}

// LinePrice computes the unit price of one order line:
// base + variant extra - discount, then GST.
//
// GST rules:
//   - disabled: price unmodified
//   - exclusive: multiplied by (1 + percent/100)
//   - inclusive: the stored price already includes tax, returned unmodified
//
// A discount larger than base+extra clamps the price at zero rather than
// going negative. No rounding happens here; call Round2 at the point the
// price is exposed to a client or persisted to a money column.
func LinePrice(base, extra, discount decimal.Decimal, tax Tax) decimal.Decimal {
	price := base.Add(extra).Sub(discount)
	if price.IsNegative() {
		price = decimal.Zero
	}

	if !tax.Enabled || tax.Type == models.GstTypeInclusive {
		return price
	}

	factor := decimal.NewFromInt(1).Add(tax.Percent.Div(hundred))
	return price.Mul(factor)
}

// EffectivePrice is the storefront display price of a product without any
// variant: base - discount, clamped at zero.
func EffectivePrice(p *models.Product) decimal.Decimal {
	price := p.BasePrice.Sub(p.Discount)
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// Round2 applies the two-decimal exposure rounding. Intermediate sums must
// never pass through this.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
