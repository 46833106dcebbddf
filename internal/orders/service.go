// Package orders is the order placement core. It orchestrates validation,
// server-side pricing, coupon application, inventory decrement and order
// persistence as one atomic unit, for both checkout surfaces (web, POS).
package orders

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-shop-backend/internal/coupon"
	"go-shop-backend/internal/inventory"
	"go-shop-backend/internal/models"
	"go-shop-backend/internal/pricing"
)

// ServiceError is a typed failure with the HTTP status it maps to.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// Store is the persistence surface the order core needs. SaveOrder and
// SavePOSOrder are atomic: header, items and every stock decrement commit
// together or not at all.
type Store interface {
	GetAddress(ctx context.Context, id uint) (*models.Address, error)
	GetCoupon(ctx context.Context, code string) (*models.Coupon, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetVariant(ctx context.Context, id uint) (*models.Variant, error)
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	SaveOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error
	SavePOSOrder(ctx context.Context, order *models.PosOrder, items []models.PosOrderItem) error
	SetOrderStatus(ctx context.Context, id uint, status string) error
}

// Service is the order core entry surface.
type Service interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResult, *ServiceError)
	CreatePOSOrder(ctx context.Context, req *CreatePOSOrderRequest) (*POSOrderResult, *ServiceError)
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*StatusResult, *ServiceError)
}

type service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates the order core over a Store.
func NewService(store Store, logger *zap.Logger) Service {
	return &service{store: store, logger: logger}
}

// statusRank orders the forward-only lifecycle. Cancelled is outside the
// rank line: reachable from any non-terminal state, terminal itself.
var statusRank = map[string]int{
	models.OrderStatusPlaced:    0,
	models.OrderStatusBillSent:  1,
	models.OrderStatusReady:     2,
	models.OrderStatusInTransit: 3,
	models.OrderStatusCompleted: 4,
}

// CreateOrder places a web checkout order.
//
// Line prices are recomputed server-side from the catalog and tax affinity;
// the client-submitted subtotal must match the recomputation to the cent,
// closing the price-tampering gap. Any inventory failure aborts the whole
// order - there is no partial fulfilment of priced order items.
func (s *service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResult, *ServiceError) {
	if req.UserID == 0 {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
	}
	if len(req.Items) == 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Order must contain at least one item"}
	}
	if req.PaymentMethod == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Payment method is required"}
	}

	addr, err := s.store.GetAddress(ctx, req.AddressID)
	if err != nil || addr == nil {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Address not found"}
	}
	if addr.UserID != req.UserID {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Address not found"}
	}

	// Price every line from the catalog. Intermediate sums stay unrounded.
	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		if in.ProductID == 0 || in.Quantity < 1 {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Every item needs a product and a quantity of at least 1"}
		}

		product, err := s.store.GetProduct(ctx, in.ProductID)
		if err != nil || product == nil {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("Product %d not found", in.ProductID)}
		}

		extra := decimal.Zero
		if in.VariantID != nil {
			variant, err := s.store.GetVariant(ctx, *in.VariantID)
			if err != nil || variant == nil {
				return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("Variant %d not found", *in.VariantID)}
			}
			if variant.ProductID != product.ID {
				return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf("Variant %d does not belong to product %d", *in.VariantID, product.ID)}
			}
			extra = variant.ExtraPrice
		}

		unit := pricing.LinePrice(product.BasePrice, extra, product.Discount, pricing.TaxFromAffinity(product.Tax))
		subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(in.Quantity))))

		items = append(items, models.OrderItem{
			ProductID: in.ProductID,
			VariantID: in.VariantID,
			Quantity:  in.Quantity,
			Price:     pricing.Round2(unit), // snapshot, frozen forever
		})
	}

	discount := decimal.Zero
	total := subtotal
	if req.CouponCode != "" {
		c, err := s.store.GetCoupon(ctx, req.CouponCode)
		if err != nil || c == nil {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Coupon not found"}
		}
		res, err := coupon.Apply(c, subtotal)
		if err != nil {
			return nil, couponError(err)
		}
		discount = res.Discount
		total = res.FinalAmount
	}

	// The client computed its own totals; they must agree with ours.
	if !pricing.Round2(subtotal).Equal(pricing.Round2(req.Subtotal)) ||
		!pricing.Round2(total).Equal(pricing.Round2(req.TotalAmount)) {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Order totals do not match the catalog prices"}
	}

	order := &models.Order{
		UserID:        req.UserID,
		AddressID:     req.AddressID,
		CouponCode:    req.CouponCode,
		Discount:      pricing.Round2(discount),
		Subtotal:      pricing.Round2(subtotal),
		TotalAmount:   pricing.Round2(total),
		PaymentMethod: req.PaymentMethod,
		PaymentID:     req.PaymentID,
		PaymentStatus: "paid",
		OrderStatus:   models.OrderStatusPlaced,
	}

	if err := s.store.SaveOrder(ctx, order, items); err != nil {
		return nil, s.saveError("web order", err)
	}

	s.logger.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", req.UserID),
		zap.String("total", order.TotalAmount.String()),
	)

	return &OrderResult{
		OrderID:     order.ID,
		OrderStatus: order.OrderStatus,
		Subtotal:    order.Subtotal,
		Discount:    order.Discount,
		TotalAmount: order.TotalAmount,
	}, nil
}

// CreatePOSOrder places a counter sale. Cashier-entered totals are trusted
// (admin surface); line totals are recomputed as price x qty. Stock
// decrements run under per-variant row locks inside one transaction and
// any failure rolls the whole sale back.
func (s *service) CreatePOSOrder(ctx context.Context, req *CreatePOSOrderRequest) (*POSOrderResult, *ServiceError) {
	if req.CashierID == 0 {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
	}
	if len(req.Items) == 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Sale must contain at least one item"}
	}

	items := make([]models.PosOrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		if in.ProductID == 0 || in.Qty < 1 || in.Price.IsNegative() {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Every item needs a product, a price and a quantity of at least 1"}
		}
		items = append(items, models.PosOrderItem{
			ProductID:   in.ProductID,
			VariantID:   in.VariantID,
			ProductName: in.ProductName,
			VariantName: in.VariantName,
			Price:       pricing.Round2(in.Price),
			Qty:         in.Qty,
			Total:       pricing.Round2(in.Price.Mul(decimal.NewFromInt(int64(in.Qty)))),
		})
	}

	order := &models.PosOrder{
		OrderNo:       newPOSOrderNo(),
		CustomerName:  req.Customer.Name,
		CustomerPhone: req.Customer.Phone,
		Subtotal:      pricing.Round2(req.Subtotal),
		GstEnabled:    req.Gst.Enabled,
		GstPercent:    req.Gst.Percent,
		GstAmount:     pricing.Round2(req.Gst.Amount),
		Discount:      pricing.Round2(req.Discount),
		Total:         pricing.Round2(req.Total),
		PaymentMode:   req.PaymentMode,
		PaymentStatus: "paid",
		CreatedBy:     req.CashierID,
	}

	if err := s.store.SavePOSOrder(ctx, order, items); err != nil {
		return nil, s.saveError("pos order", err)
	}

	s.logger.Info("pos order placed",
		zap.Uint("order_id", order.ID),
		zap.String("order_no", order.OrderNo),
		zap.Uint("cashier_id", req.CashierID),
	)

	return &POSOrderResult{OrderID: order.ID, OrderNo: order.OrderNo}, nil
}

// UpdateOrderStatus moves an order along the lifecycle. Transitions are
// forward-only; cancellation is allowed from any non-terminal state.
// Re-submitting the current status is a no-op returning the current state.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*StatusResult, *ServiceError) {
	if _, known := statusRank[status]; !known && status != models.OrderStatusCancelled {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid order status"}
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil || order == nil {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Order not found"}
	}

	if order.OrderStatus == status {
		return &StatusResult{OrderID: order.ID, OrderStatus: order.OrderStatus}, nil
	}

	terminal := order.OrderStatus == models.OrderStatusCompleted || order.OrderStatus == models.OrderStatusCancelled
	switch {
	case terminal:
		return nil, &ServiceError{
			StatusCode: http.StatusConflict,
			Message:    fmt.Sprintf("Order is already %s", order.OrderStatus),
		}
	case status == models.OrderStatusCancelled:
		// allowed from any non-terminal state
	case statusRank[status] < statusRank[order.OrderStatus]:
		return nil, &ServiceError{
			StatusCode: http.StatusConflict,
			Message:    fmt.Sprintf("Cannot move order from %s back to %s", order.OrderStatus, status),
		}
	}

	if err := s.store.SetOrderStatus(ctx, orderID, status); err != nil {
		s.logger.Error("status update failed", zap.Uint("order_id", orderID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update order status"}
	}

	return &StatusResult{OrderID: orderID, OrderStatus: status}, nil
}

// saveError maps transactional save failures to the client taxonomy.
// Inventory shortfalls are conflicts, not server faults.
func (s *service) saveError(surface string, err error) *ServiceError {
	switch {
	case errors.Is(err, inventory.ErrOutOfStock):
		return &ServiceError{StatusCode: http.StatusConflict, Message: "Order creation failed: insufficient stock"}
	case errors.Is(err, inventory.ErrVariantNotFound):
		return &ServiceError{StatusCode: http.StatusNotFound, Message: "Order creation failed: variant not found"}
	case errors.Is(err, inventory.ErrBadQuantity):
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: "Order creation failed: invalid quantity"}
	default:
		s.logger.Error("order save failed", zap.String("surface", surface), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Order creation failed"}
	}
}

func couponError(err error) *ServiceError {
	switch {
	case errors.Is(err, coupon.ErrCouponExpired):
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: "Coupon expired"}
	case errors.Is(err, coupon.ErrMinimumOrderNotMet):
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: "Minimum order amount not met"}
	default:
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid coupon"}
	}
}

// newPOSOrderNo builds a human-readable receipt number. The uuid fragment
// keeps two sales in the same second from colliding.
func newPOSOrderNo() string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("POS-%d-%s", time.Now().Unix(), frag)
}
