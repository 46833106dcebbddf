package orders_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-shop-backend/internal/inventory"
	"go-shop-backend/internal/models"
	"go-shop-backend/internal/orders"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- Mock store ---
//
// In-memory Store whose SaveOrder/SavePOSOrder honour the same contract as
// the SQL implementation: decrements apply atomically under a lock, or not
// at all.

type mockStore struct {
	mu        sync.Mutex
	addresses map[uint]*models.Address
	coupons   map[string]*models.Coupon
	products  map[uint]*models.Product
	variants  map[uint]*models.Variant
	orders    map[uint]*models.Order
	posOrders map[uint]*models.PosOrder
	nextID    uint
}

func newMockStore() *mockStore {
	return &mockStore{
		addresses: make(map[uint]*models.Address),
		coupons:   make(map[string]*models.Coupon),
		products:  make(map[uint]*models.Product),
		variants:  make(map[uint]*models.Variant),
		orders:    make(map[uint]*models.Order),
		posOrders: make(map[uint]*models.PosOrder),
	}
}

func (m *mockStore) GetAddress(_ context.Context, id uint) (*models.Address, error) {
	a, ok := m.addresses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (m *mockStore) GetCoupon(_ context.Context, code string) (*models.Coupon, error) {
	c, ok := m.coupons[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockStore) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockStore) GetVariant(_ context.Context, id uint) (*models.Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.variants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *v
	return &copy, nil
}

func (m *mockStore) GetOrder(_ context.Context, id uint) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

// decrementAll stages every decrement first and applies only when all of
// them fit, mirroring the all-or-nothing transaction.
func (m *mockStore) decrementAll(variantQty map[uint]int) error {
	staged := make(map[uint]int)
	for id, qty := range variantQty {
		v, ok := m.variants[id]
		if !ok {
			return inventory.ErrVariantNotFound
		}
		if v.Quantity-staged[id] < qty {
			return inventory.ErrOutOfStock
		}
		staged[id] += qty
	}
	for id, qty := range variantQty {
		m.variants[id].Quantity -= qty
	}
	return nil
}

func (m *mockStore) SaveOrder(_ context.Context, order *models.Order, items []models.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[uint]int)
	for _, it := range items {
		if it.VariantID != nil {
			wanted[*it.VariantID] += it.Quantity
		}
	}
	if err := m.decrementAll(wanted); err != nil {
		return err
	}

	m.nextID++
	order.ID = m.nextID
	saved := *order
	for i := range items {
		items[i].OrderID = order.ID
	}
	saved.Items = items
	m.orders[order.ID] = &saved
	return nil
}

func (m *mockStore) SavePOSOrder(_ context.Context, order *models.PosOrder, items []models.PosOrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[uint]int)
	for _, it := range items {
		if it.VariantID != nil {
			wanted[*it.VariantID] += it.Qty
		}
	}
	if err := m.decrementAll(wanted); err != nil {
		return err
	}

	m.nextID++
	order.ID = m.nextID
	saved := *order
	saved.Items = items
	m.posOrders[order.ID] = &saved
	return nil
}

func (m *mockStore) SetOrderStatus(_ context.Context, id uint, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.OrderStatus = status
	return nil
}

// --- Fixtures ---

func uintPtr(v uint) *uint { return &v }

// seedCatalog: product 1 (base 100, discount 10, exclusive GST 18%) with
// variant 7 (extra 20, given stock). Unit line price is 129.80.
func seedCatalog(store *mockStore, stock int) {
	store.products[1] = &models.Product{
		ID:        1,
		Name:      "Test Shirt",
		BasePrice: d("100"),
		Discount:  d("10"),
		Status:    models.ProductStatusPublished,
		Tax: &models.ProductTaxAffinity{
			ProductID:  1,
			GstEnabled: true,
			GstType:    models.GstTypeExclusive,
			GstPercent: d("18"),
		},
	}
	store.variants[7] = &models.Variant{ID: 7, ProductID: 1, Sku: "SHIRT-M", ExtraPrice: d("20"), Quantity: stock}
	store.addresses[3] = &models.Address{ID: 3, UserID: 42}
}

func webOrderRequest(qty int, subtotal, total string) *orders.CreateOrderRequest {
	return &orders.CreateOrderRequest{
		UserID:        42,
		AddressID:     3,
		Items:         []orders.OrderItemInput{{ProductID: 1, VariantID: uintPtr(7), Quantity: qty}},
		Subtotal:      d(subtotal),
		TotalAmount:   d(total),
		PaymentMethod: "razorpay",
		PaymentID:     "pay_123",
	}
}

func newService(store *mockStore) orders.Service {
	return orders.NewService(store, zap.NewNop())
}

// --- Web checkout ---

func TestCreateOrder_SnapshotsServerComputedPrice(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 5)
	svc := newService(store)

	res, svcErr := svc.CreateOrder(context.Background(), webOrderRequest(2, "259.60", "259.60"))
	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusPlaced, res.OrderStatus)
	assert.True(t, d("259.60").Equal(res.TotalAmount), "got %s", res.TotalAmount)

	saved := store.orders[res.OrderID]
	assert.Len(t, saved.Items, 1)
	assert.True(t, d("129.80").Equal(saved.Items[0].Price), "snapshot price, got %s", saved.Items[0].Price)
	assert.Equal(t, 3, store.variants[7].Quantity, "stock decremented by ordered qty")
}

func TestCreateOrder_RejectsTamperedTotals(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 5)
	svc := newService(store)

	_, svcErr := svc.CreateOrder(context.Background(), webOrderRequest(2, "2.00", "2.00"))
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, 5, store.variants[7].Quantity, "no decrement on rejected order")
}

func TestCreateOrder_AppliesCoupon(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 5)
	cap := d("50")
	store.coupons["PERCENT10MAX50"] = &models.Coupon{
		Code: "PERCENT10MAX50", Type: models.CouponTypePercent,
		Value: d("10"), MaxDiscount: &cap, IsActive: true,
	}
	svc := newService(store)

	req := webOrderRequest(2, "259.60", "233.64") // 10% of 259.60 = 25.96
	req.CouponCode = "PERCENT10MAX50"

	res, svcErr := svc.CreateOrder(context.Background(), req)
	assert.Nil(t, svcErr)
	assert.True(t, d("25.96").Equal(res.Discount), "got %s", res.Discount)
	assert.True(t, d("233.64").Equal(res.TotalAmount), "got %s", res.TotalAmount)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 5)
	svc := newService(store)

	req := webOrderRequest(1, "129.80", "129.80")
	req.Items = nil

	_, svcErr := svc.CreateOrder(context.Background(), req)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestCreateOrder_AddressMustBelongToUser(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 5)
	store.addresses[3].UserID = 99 // someone else's address
	svc := newService(store)

	_, svcErr := svc.CreateOrder(context.Background(), webOrderRequest(1, "129.80", "129.80"))
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestCreateOrder_MixedValidAndMissingVariantFailsAtomically(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 5)
	svc := newService(store)

	req := webOrderRequest(2, "259.60", "259.60")
	req.Items = append(req.Items, orders.OrderItemInput{ProductID: 1, VariantID: uintPtr(999), Quantity: 1})

	_, svcErr := svc.CreateOrder(context.Background(), req)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, 5, store.variants[7].Quantity, "valid item's stock must remain untouched")
	assert.Empty(t, store.orders, "no partial order may be committed")
}

func TestCreateOrder_ConcurrentLastUnit(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 1)
	svc := newService(store)

	var wg sync.WaitGroup
	results := make([]*orders.ServiceError, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.CreateOrder(context.Background(), webOrderRequest(1, "129.80", "129.80"))
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, r := range results {
		switch {
		case r == nil:
			ok++
		case r.StatusCode == http.StatusConflict:
			conflict++
		}
	}
	assert.Equal(t, 1, ok, "exactly one request wins the last unit")
	assert.Equal(t, 1, conflict, "the loser fails with out-of-stock")
	assert.Equal(t, 0, store.variants[7].Quantity, "stock never goes negative")
}

func TestCreateOrder_StockConservation(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 10)
	svc := newService(store)

	placed := 0
	for i := 0; i < 4; i++ {
		if _, svcErr := svc.CreateOrder(context.Background(), webOrderRequest(3, "389.40", "389.40")); svcErr == nil {
			placed++
		}
	}

	// 10 units / 3 per order: three orders fit, the fourth hits stock.
	assert.Equal(t, 3, placed)
	total := 0
	for _, o := range store.orders {
		for _, it := range o.Items {
			total += it.Quantity
		}
	}
	assert.Equal(t, 10-total, store.variants[7].Quantity, "every decrement individually accounted")
}

// --- POS counter sale ---

func posRequest(qty int) *orders.CreatePOSOrderRequest {
	return &orders.CreatePOSOrderRequest{
		CashierID:   9,
		Customer:    orders.POSCustomer{Name: "Walk-in", Phone: "9999"},
		PaymentMode: "cash",
		Items: orders.POSItemList{{
			ProductID:   1,
			VariantID:   uintPtr(7),
			ProductName: "Test Shirt",
			VariantName: "M",
			Price:       d("129.80"),
			Qty:         qty,
		}},
		Subtotal: d("129.80"),
		Total:    d("129.80"),
	}
}

func TestCreatePOSOrder_Success(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 5)
	svc := newService(store)

	res, svcErr := svc.CreatePOSOrder(context.Background(), posRequest(2))
	assert.Nil(t, svcErr)
	assert.Contains(t, res.OrderNo, "POS-")
	assert.Equal(t, 3, store.variants[7].Quantity)

	saved := store.posOrders[res.OrderID]
	assert.True(t, d("259.60").Equal(saved.Items[0].Total), "line total is price x qty")
}

func TestCreatePOSOrder_OutOfStockRollsBack(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 1)
	svc := newService(store)

	_, svcErr := svc.CreatePOSOrder(context.Background(), posRequest(2))
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, 1, store.variants[7].Quantity)
	assert.Empty(t, store.posOrders)
}

func TestCreatePOSOrder_UniqueOrderNumbers(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 10)
	svc := newService(store)

	a, svcErr := svc.CreatePOSOrder(context.Background(), posRequest(1))
	assert.Nil(t, svcErr)
	b, svcErr := svc.CreatePOSOrder(context.Background(), posRequest(1))
	assert.Nil(t, svcErr)
	assert.NotEqual(t, a.OrderNo, b.OrderNo)
}

func TestCreatePOSOrder_RequiresCashier(t *testing.T) {
	store := newMockStore()
	seedCatalog(store, 5)
	svc := newService(store)

	req := posRequest(1)
	req.CashierID = 0

	_, svcErr := svc.CreatePOSOrder(context.Background(), req)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
}

// --- Status lifecycle ---

func seedOrder(store *mockStore, status string) uint {
	store.nextID++
	id := store.nextID
	store.orders[id] = &models.Order{ID: id, OrderStatus: status}
	return id
}

func TestUpdateOrderStatus_ForwardOnly(t *testing.T) {
	store := newMockStore()
	svc := newService(store)
	id := seedOrder(store, models.OrderStatusPlaced)

	res, svcErr := svc.UpdateOrderStatus(context.Background(), id, models.OrderStatusBillSent)
	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusBillSent, res.OrderStatus)

	// Backward is a conflict.
	_, svcErr = svc.UpdateOrderStatus(context.Background(), id, models.OrderStatusPlaced)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
}

func TestUpdateOrderStatus_SameStatusIsIdempotentNoOp(t *testing.T) {
	store := newMockStore()
	svc := newService(store)
	id := seedOrder(store, models.OrderStatusReady)

	res, svcErr := svc.UpdateOrderStatus(context.Background(), id, models.OrderStatusReady)
	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusReady, res.OrderStatus)
}

func TestUpdateOrderStatus_CancelFromNonTerminal(t *testing.T) {
	store := newMockStore()
	svc := newService(store)
	id := seedOrder(store, models.OrderStatusInTransit)

	res, svcErr := svc.UpdateOrderStatus(context.Background(), id, models.OrderStatusCancelled)
	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusCancelled, res.OrderStatus)
}

func TestUpdateOrderStatus_TerminalStatesAreFrozen(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	for _, terminal := range []string{models.OrderStatusCompleted, models.OrderStatusCancelled} {
		id := seedOrder(store, terminal)
		_, svcErr := svc.UpdateOrderStatus(context.Background(), id, models.OrderStatusReady)
		assert.NotNil(t, svcErr)
		assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	}
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	store := newMockStore()
	svc := newService(store)
	id := seedOrder(store, models.OrderStatusPlaced)

	_, svcErr := svc.UpdateOrderStatus(context.Background(), id, "shipped")
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	_, svcErr := svc.UpdateOrderStatus(context.Background(), 404, models.OrderStatusReady)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}
