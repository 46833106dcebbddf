package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem - server mirror of the client cart, keyed by user+product+variant
type CartItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index:idx_cart_user_product_variant,unique;not null" json:"user_id"`
	ProductID uint            `gorm:"index:idx_cart_user_product_variant,unique;not null" json:"product_id"`
	VariantID *uint           `gorm:"index:idx_cart_user_product_variant,unique" json:"variant_id"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Wishlist - simple keyed collection, toggled from the storefront
type Wishlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_wishlist_user_product,unique;not null" json:"user_id"`
	ProductID uint      `gorm:"index:idx_wishlist_user_product,unique;not null" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
