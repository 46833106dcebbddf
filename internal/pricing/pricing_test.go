package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-shop-backend/internal/models"
	"go-shop-backend/internal/pricing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLinePrice_ExclusiveGST(t *testing.T) {
	// base 100, discount 10, extra 20, exclusive 18% -> (100-10+20)*1.18
	tax := pricing.Tax{Enabled: true, Type: models.GstTypeExclusive, Percent: d("18")}

	price := pricing.LinePrice(d("100"), d("20"), d("10"), tax)

	assert.True(t, d("129.80").Equal(pricing.Round2(price)), "got %s", price)
}

func TestLinePrice_InclusiveGSTReturnsStoredPrice(t *testing.T) {
	// Inclusive prices already carry tax and pass through unmodified.
	tax := pricing.Tax{Enabled: true, Type: models.GstTypeInclusive, Percent: d("18")}

	price := pricing.LinePrice(d("100"), d("20"), d("10"), tax)

	assert.True(t, d("110").Equal(price), "got %s", price)
}

func TestLinePrice_TaxDisabled(t *testing.T) {
	price := pricing.LinePrice(d("100"), d("20"), d("10"), pricing.Tax{})

	assert.True(t, d("110").Equal(price), "got %s", price)
}

func TestLinePrice_DiscountLargerThanBaseClampsAtZero(t *testing.T) {
	tax := pricing.Tax{Enabled: true, Type: models.GstTypeExclusive, Percent: d("18")}

	price := pricing.LinePrice(d("50"), d("0"), d("80"), tax)

	assert.True(t, price.IsZero(), "got %s", price)
}

func TestLinePrice_NoIntermediateRounding(t *testing.T) {
	// 33.335 * 1.18 = 39.3353; rounding only happens at exposure.
	tax := pricing.Tax{Enabled: true, Type: models.GstTypeExclusive, Percent: d("18")}

	price := pricing.LinePrice(d("33.335"), d("0"), d("0"), tax)

	assert.True(t, d("39.3353").Equal(price), "got %s", price)
	assert.True(t, d("39.34").Equal(pricing.Round2(price)))
}

func TestEffectivePrice(t *testing.T) {
	p := &models.Product{BasePrice: d("500"), Discount: d("50")}
	assert.True(t, d("450").Equal(pricing.EffectivePrice(p)))

	over := &models.Product{BasePrice: d("30"), Discount: d("80")}
	assert.True(t, pricing.EffectivePrice(over).IsZero())
}

func TestTaxFromAffinity_NilMeansDisabled(t *testing.T) {
	tax := pricing.TaxFromAffinity(nil)
	assert.False(t, tax.Enabled)
}
