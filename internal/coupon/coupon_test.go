package coupon_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-shop-backend/internal/coupon"
	"go-shop-backend/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func percentCoupon(value, maxDiscount string) *models.Coupon {
	cap := d(maxDiscount)
	return &models.Coupon{
		Code:        "PERCENT10MAX50",
		Type:        models.CouponTypePercent,
		Value:       d(value),
		MaxDiscount: &cap,
		IsActive:    true,
	}
}

func TestApply_PercentCappedByMaxDiscount(t *testing.T) {
	c := percentCoupon("10", "50")

	// 10% of 1000 = 100, capped at 50.
	res, err := coupon.Apply(c, d("1000"))
	assert.NoError(t, err)
	assert.True(t, d("50").Equal(res.Discount), "got %s", res.Discount)
	assert.True(t, d("950").Equal(res.FinalAmount), "got %s", res.FinalAmount)
}

func TestApply_PercentBelowCap(t *testing.T) {
	c := percentCoupon("10", "50")

	res, err := coupon.Apply(c, d("300"))
	assert.NoError(t, err)
	assert.True(t, d("30").Equal(res.Discount), "got %s", res.Discount)
	assert.True(t, d("270").Equal(res.FinalAmount), "got %s", res.FinalAmount)
}

func TestApply_PercentUncappedWhenMaxDiscountNil(t *testing.T) {
	c := &models.Coupon{
		Code:     "PERCENT20",
		Type:     models.CouponTypePercent,
		Value:    d("20"),
		IsActive: true,
	}

	res, err := coupon.Apply(c, d("1000"))
	assert.NoError(t, err)
	assert.True(t, d("200").Equal(res.Discount))
}

func TestApply_FlatClampedToAmount(t *testing.T) {
	c := &models.Coupon{
		Code:     "FLAT500",
		Type:     models.CouponTypeFlat,
		Value:    d("500"),
		IsActive: true,
	}

	res, err := coupon.Apply(c, d("300"))
	assert.NoError(t, err)
	assert.True(t, d("300").Equal(res.Discount))
	assert.True(t, res.FinalAmount.IsZero())
}

func TestApply_InactiveIsInvalid(t *testing.T) {
	c := &models.Coupon{Code: "OLD", Type: models.CouponTypeFlat, Value: d("10")}

	_, err := coupon.Apply(c, d("100"))
	assert.ErrorIs(t, err, coupon.ErrInvalidCoupon)
}

func TestApply_NilIsInvalid(t *testing.T) {
	_, err := coupon.Apply(nil, d("100"))
	assert.ErrorIs(t, err, coupon.ErrInvalidCoupon)
}

func TestApply_Expired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	c := &models.Coupon{
		Code:       "GONE",
		Type:       models.CouponTypeFlat,
		Value:      d("10"),
		ExpiryDate: &past,
		IsActive:   true,
	}

	_, err := coupon.Apply(c, d("100"))
	assert.ErrorIs(t, err, coupon.ErrCouponExpired)
}

func TestApply_NoExpiryNeverExpires(t *testing.T) {
	c := &models.Coupon{Code: "EVERGREEN", Type: models.CouponTypeFlat, Value: d("10"), IsActive: true}

	res, err := coupon.Apply(c, d("100"))
	assert.NoError(t, err)
	assert.True(t, d("10").Equal(res.Discount))
}

func TestApply_MinimumOrderNotMet(t *testing.T) {
	c := &models.Coupon{
		Code:     "BIGBASKET",
		Type:     models.CouponTypeFlat,
		Value:    d("50"),
		MinOrder: d("500"),
		IsActive: true,
	}

	_, err := coupon.Apply(c, d("499.99"))
	assert.ErrorIs(t, err, coupon.ErrMinimumOrderNotMet)
}
