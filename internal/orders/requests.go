package orders

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// OrderItemInput is one web checkout line. Quantity and product are
// required; the server recomputes the price, client-sent prices are
// ignored for the snapshot.
type OrderItemInput struct {
	ProductID uint  `json:"product_id"`
	VariantID *uint `json:"variation_id"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest is the web checkout payload. UserID comes from the
// authenticated token, never from the body.
type CreateOrderRequest struct {
	UserID        uint             `json:"-"`
	AddressID     uint             `json:"address_id"`
	Items         []OrderItemInput `json:"items"`
	CouponCode    string           `json:"coupon_code"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	PaymentMethod string           `json:"payment_method"`
	PaymentID     string           `json:"payment_id"`
}

// OrderResult is returned on successful order creation.
type OrderResult struct {
	OrderID     uint            `json:"order_id"`
	OrderStatus string          `json:"order_status"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// POSItemInput is one counter sale line.
type POSItemInput struct {
	ProductID   uint            `json:"product_id"`
	VariantID   *uint           `json:"variation_id"`
	ProductName string          `json:"product_name"`
	VariantName string          `json:"variation_name"`
	Price       decimal.Decimal `json:"price"`
	Qty         int             `json:"qty"`
}

// POSItemList accepts either a JSON array or an index-keyed object
// ({"0":{...},"1":{...}}, the shape multipart form encoders produce) and
// normalizes both to one ordered sequence at the boundary. Business logic
// never branches on the wire shape.
type POSItemList []POSItemInput

func (l *POSItemList) UnmarshalJSON(data []byte) error {
	var arr []POSItemInput
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}

	var byIndex map[string]POSItemInput
	if err := json.Unmarshal(data, &byIndex); err != nil {
		return err
	}

	keys := make([]string, 0, len(byIndex))
	for k := range byIndex {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})

	items := make([]POSItemInput, 0, len(keys))
	for _, k := range keys {
		items = append(items, byIndex[k])
	}
	*l = items
	return nil
}

// POSCustomer is the walk-in customer on a counter sale.
type POSCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// POSGst carries the tax figures the cashier terminal computed.
type POSGst struct {
	Enabled bool            `json:"enabled"`
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// CreatePOSOrderRequest is the counter sale payload. CashierID comes from
// the authenticated token.
type CreatePOSOrderRequest struct {
	CashierID   uint            `json:"-"`
	Customer    POSCustomer     `json:"customer"`
	PaymentMode string          `json:"payment_mode"`
	Gst         POSGst          `json:"gst"`
	Items       POSItemList     `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// POSOrderResult is returned on successful counter sale creation.
type POSOrderResult struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
}

// StatusResult is the outcome of an order status update.
type StatusResult struct {
	OrderID     uint   `json:"id"`
	OrderStatus string `json:"order_status"`
}
