package models

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}

func TestUniqueSlug_NoCollision(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT count(.+)FROM `categories`").
		WillReturnRows(countRows(0))

	s, err := uniqueSlug(gormDB, "categories", "Summer Shirts")
	require.NoError(t, err)
	assert.Equal(t, "summer-shirts", s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniqueSlug_CollisionGetsNumericSuffix(t *testing.T) {
	gormDB, mock := setupMockDB(t)

	// "shirt" taken, "shirt-2" taken, "shirt-3" free
	mock.ExpectQuery("SELECT count(.+)FROM `products`").
		WillReturnRows(countRows(1))
	mock.ExpectQuery("SELECT count(.+)FROM `products`").
		WillReturnRows(countRows(1))
	mock.ExpectQuery("SELECT count(.+)FROM `products`").
		WillReturnRows(countRows(0))

	s, err := uniqueSlug(gormDB, "products", "Shirt")
	require.NoError(t, err)
	assert.Equal(t, "shirt-3", s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeforeCreateKeepsExplicitSlug(t *testing.T) {
	gormDB, _ := setupMockDB(t)

	c := Category{Name: "Shoes", Slug: "custom-slug"}
	require.NoError(t, c.BeforeCreate(gormDB))
	assert.Equal(t, "custom-slug", c.Slug)
}
