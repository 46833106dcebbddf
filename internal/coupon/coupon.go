// Package coupon validates discount codes against amount, expiry and
// activity constraints and computes the resulting discount.
package coupon

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"go-shop-backend/internal/models"
)

var (
	ErrInvalidCoupon      = errors.New("invalid coupon")
	ErrCouponExpired      = errors.New("coupon expired")
	ErrMinimumOrderNotMet = errors.New("minimum order not met")
)

var hundred = decimal.NewFromInt(100)

// Result is the outcome of applying a coupon to an order amount.
type Result struct {
	Discount    decimal.Decimal
	FinalAmount decimal.Decimal
}

// Apply validates c against amount and computes the discount.
//
// Percent coupons take value% of amount, capped by max_discount when set.
// Flat coupons take the value verbatim, clamped to amount so the final
// amount never goes negative.
func Apply(c *models.Coupon, amount decimal.Decimal) (Result, error) {
	if c == nil || !c.IsActive {
		return Result{}, ErrInvalidCoupon
	}

	if c.ExpiryDate != nil && c.ExpiryDate.Before(time.Now()) {
		return Result{}, ErrCouponExpired
	}

	if amount.LessThan(c.MinOrder) {
		return Result{}, ErrMinimumOrderNotMet
	}

	var discount decimal.Decimal
	switch c.Type {
	case models.CouponTypePercent:
		discount = amount.Mul(c.Value).Div(hundred)
		if c.MaxDiscount != nil && discount.GreaterThan(*c.MaxDiscount) {
			discount = *c.MaxDiscount
		}
	case models.CouponTypeFlat:
		discount = c.Value
		if discount.GreaterThan(amount) {
			discount = amount
		}
	default:
		return Result{}, ErrInvalidCoupon
	}

	return Result{
		Discount:    discount,
		FinalAmount: amount.Sub(discount),
	}, nil
}
