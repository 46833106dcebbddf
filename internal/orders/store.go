package orders

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"go-shop-backend/internal/inventory"
	"go-shop-backend/internal/models"
)

// GormStore is the MySQL-backed Store. Order creation runs as one
// transaction: header, items and every inventory decrement commit together
// or the whole thing rolls back.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetAddress(ctx context.Context, id uint) (*models.Address, error) {
	var addr models.Address
	if err := s.db.WithContext(ctx).First(&addr, id).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *GormStore) GetCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GormStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).Preload("Tax").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) GetVariant(ctx context.Context, id uint) (*models.Variant, error) {
	var v models.Variant
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *GormStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := s.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// SaveOrder persists a web order atomically. Decrements run inside the
// same transaction in item order; any failure rolls everything back so no
// partial order is ever visible to readers.
func (s *GormStore) SaveOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return err
	}

	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return err
		}

		if items[i].VariantID != nil {
			if _, err := inventory.Decrement(tx, *items[i].VariantID, items[i].Quantity); err != nil {
				tx.Rollback()
				return err
			}
		}
	}

	return tx.Commit().Error
}

// SavePOSOrder persists a counter sale atomically, same contract as
// SaveOrder.
func (s *GormStore) SavePOSOrder(ctx context.Context, order *models.PosOrder, items []models.PosOrderItem) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return err
	}

	for i := range items {
		items[i].PosOrderID = order.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return err
		}

		if items[i].VariantID != nil {
			if _, err := inventory.Decrement(tx, *items[i].VariantID, items[i].Qty); err != nil {
				tx.Rollback()
				return err
			}
		}
	}

	return tx.Commit().Error
}

func (s *GormStore) SetOrderStatus(ctx context.Context, id uint, status string) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("order_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Read side used by the handlers ---

// Pagination is the envelope block every list endpoint returns.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalPages int   `json:"totalPages"`
}

func paginate(total int64, page, perPage int) Pagination {
	return Pagination{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: int(math.Ceil(float64(total) / float64(perPage))),
	}
}

// ListOrders returns admin order listings with optional status filter and
// id/payment-id search.
func (s *GormStore) ListOrders(ctx context.Context, page, perPage int, search, status string) ([]models.Order, Pagination, error) {
	q := s.db.WithContext(ctx).Model(&models.Order{})

	if status != "" && status != "all" {
		q = q.Where("order_status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("id LIKE ? OR payment_id LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var rows []models.Order
	err := q.Preload("User").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Variant").
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&rows).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return rows, paginate(total, page, perPage), nil
}

// OrderDetail loads one order with its snapshot-priced items. Product and
// variant rows ride along for display only; prices always come from the
// order items themselves.
func (s *GormStore) OrderDetail(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Variant").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// MyOrders is the customer-facing order history.
func (s *GormStore) MyOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var rows []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Variant").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// MyOrder loads one order scoped to its owner.
func (s *GormStore) MyOrder(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Variant").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// StatusCounts aggregates orders per lifecycle state for the dashboard.
func (s *GormStore) StatusCounts(ctx context.Context) (map[string]int64, error) {
	type row struct {
		OrderStatus string
		Count       int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("order_status, COUNT(id) as count").
		Group("order_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		"all":                     0,
		models.OrderStatusPlaced:    0,
		models.OrderStatusBillSent:  0,
		models.OrderStatusReady:     0,
		models.OrderStatusInTransit: 0,
		models.OrderStatusCompleted: 0,
		models.OrderStatusCancelled: 0,
	}
	for _, r := range rows {
		counts["all"] += r.Count
		if _, ok := counts[r.OrderStatus]; ok {
			counts[r.OrderStatus] = r.Count
		}
	}
	return counts, nil
}

// ListPOSOrders pages through counter sales with order-no/customer search.
func (s *GormStore) ListPOSOrders(ctx context.Context, page, perPage int, search string) ([]models.PosOrder, Pagination, error) {
	q := s.db.WithContext(ctx).Model(&models.PosOrder{})

	if search != "" {
		like := "%" + search + "%"
		q = q.Where("order_no LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var rows []models.PosOrder
	err := q.Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&rows).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return rows, paginate(total, page, perPage), nil
}

// POSOrderDetail loads one counter sale with its lines.
func (s *GormStore) POSOrderDetail(ctx context.Context, id uint) (*models.PosOrder, error) {
	var o models.PosOrder
	err := s.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// NotFound reports whether err is the store's missing-record error.
func NotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
