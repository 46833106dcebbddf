package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon discount types
const (
	CouponTypeFlat    = "flat"
	CouponTypePercent = "percent"
)

// Coupon - promotional discount code
type Coupon struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Code        string           `gorm:"uniqueIndex;size:50;not null" json:"code"`
	Type        string           `gorm:"size:10;not null" json:"type"` // 'flat' or 'percent'
	Value       decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"value"`
	MinOrder    decimal.Decimal  `gorm:"type:decimal(10,2);default:0" json:"min_order"`
	MaxDiscount *decimal.Decimal `gorm:"type:decimal(10,2)" json:"max_discount"` // percent only, nil = uncapped
	ExpiryDate  *time.Time       `json:"expiry_date"`                            // nil = never expires
	IsActive    bool             `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
