package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Transitions are admin-driven and one-way forward,
// except cancellation which is reachable from any non-terminal state.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusBillSent  = "bill_sent"
	OrderStatusReady     = "ready"
	OrderStatusInTransit = "in_transit"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order - the web checkout transaction header. Created atomically with its
// items; never deleted, only status-updated.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	AddressID     uint            `gorm:"not null" json:"address_id"`
	CouponCode    string          `gorm:"size:50" json:"coupon_code"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod string          `gorm:"size:30;not null" json:"payment_method"`
	PaymentID     string          `gorm:"size:100" json:"payment_id"`
	PaymentStatus string          `gorm:"size:20;default:paid" json:"payment_status"`
	OrderStatus   string          `gorm:"size:20;default:placed" json:"order_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem - immutable priced line. Price is the snapshot computed at
// order time, NOT a live join against the catalog.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index;not null" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	VariantID *uint           `json:"variant_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *Variant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

// PosOrder - counter sale header. Customer is free text, no user account
// or address required.
type PosOrder struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderNo       string          `gorm:"uniqueIndex;size:60" json:"order_no"`
	CustomerName  string          `gorm:"size:100" json:"customer_name"`
	CustomerPhone string          `gorm:"size:20" json:"customer_phone"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	GstEnabled    bool            `json:"gst_enabled"`
	GstPercent    decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"gst_percent"`
	GstAmount     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"gst_amount"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	PaymentMode   string          `gorm:"size:30" json:"payment_mode"`
	PaymentStatus string          `gorm:"size:20;default:paid" json:"payment_status"`
	CreatedBy     uint            `gorm:"index" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Items []PosOrderItem `gorm:"foreignKey:PosOrderID" json:"items,omitempty"`
}

// PosOrderItem - counter sale line; names are denormalized so receipts
// survive later catalog edits.
type PosOrderItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PosOrderID    uint            `gorm:"index;not null" json:"pos_order_id"`
	ProductID     uint            `gorm:"not null" json:"product_id"`
	VariantID     *uint           `json:"variant_id"`
	ProductName   string          `gorm:"size:255" json:"product_name"`
	VariantName   string          `gorm:"size:255" json:"variant_name"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Qty           int             `gorm:"not null" json:"qty"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}
