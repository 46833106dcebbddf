package inventory_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"go-shop-backend/internal/inventory"
	"go-shop-backend/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func variantRows(quantity int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "product_id", "sku", "extra_price", "quantity", "low_quantity", "created_at", "updated_at",
	}).AddRow(7, 3, "TSHIRT-M-RED", "20.00", quantity, 2, now, now)
}

func TestDecrement_LocksRowThenDeducts(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT(.+)FROM `product_variants`(.+)FOR UPDATE").
		WillReturnRows(variantRows(5))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `product_variants` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	remaining, err := inventory.Decrement(gormDB, 7, 2)
	assert.NoError(t, err)
	assert.Equal(t, 3, remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrement_OutOfStockAfterLock(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT(.+)FROM `product_variants`(.+)FOR UPDATE").
		WillReturnRows(variantRows(1))

	_, err := inventory.Decrement(gormDB, 7, 2)
	assert.ErrorIs(t, err, inventory.ErrOutOfStock)
	// No UPDATE may be issued when stock is short.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrement_VariantNotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT(.+)FROM `product_variants`(.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := inventory.Decrement(gormDB, 99, 1)
	assert.ErrorIs(t, err, inventory.ErrVariantNotFound)
}

func TestDecrement_RejectsNonPositiveQuantity(t *testing.T) {
	gormDB, _ := setupMockDB(t)

	_, err := inventory.Decrement(gormDB, 7, 0)
	assert.ErrorIs(t, err, inventory.ErrBadQuantity)

	_, err = inventory.Decrement(gormDB, 7, -3)
	assert.ErrorIs(t, err, inventory.ErrBadQuantity)
}

func TestIsLow(t *testing.T) {
	assert.True(t, inventory.IsLow(&models.Variant{Quantity: 2, LowQuantity: 2}))
	assert.False(t, inventory.IsLow(&models.Variant{Quantity: 10, LowQuantity: 2}))
	assert.False(t, inventory.IsLow(&models.Variant{Quantity: 0, LowQuantity: 0}))
}
