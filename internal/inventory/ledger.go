// Package inventory is the stock ledger. Variant quantity is only ever
// mutated here, under a per-row lock held across both the read and the
// write, scoped to the caller's transaction.
package inventory

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-shop-backend/internal/models"
)

var (
	ErrVariantNotFound = errors.New("variant not found")
	ErrOutOfStock      = errors.New("out of stock")
	ErrBadQuantity     = errors.New("quantity must be positive")
)

// Decrement reserves and deducts qty units of a variant inside tx.
//
// It takes an exclusive row lock on the variant, checks stock AFTER the
// lock is held (read-after-lock closes the oversell race window), then
// writes the new quantity. Returns the post-decrement quantity. Nothing is
// visible outside tx until the caller commits; a rollback undoes the write.
//
// Concurrent orders for the same variant serialize on the row lock:
// first-lock-wins, losers block until the winner commits or rolls back,
// then re-check the remaining stock.
func Decrement(tx *gorm.DB, variantID uint, qty int) (int, error) {
	if qty <= 0 {
		return 0, ErrBadQuantity
	}

	var v models.Variant
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, variantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrVariantNotFound
		}
		return 0, err
	}

	if v.Quantity < qty {
		return 0, ErrOutOfStock
	}

	remaining := v.Quantity - qty
	if err := tx.Model(&v).Update("quantity", remaining).Error; err != nil {
		return 0, err
	}

	return remaining, nil
}

// SetQuantity overwrites a variant's on-hand quantity (admin restock /
// stock correction). Takes the same row lock as Decrement so a correction
// cannot interleave with a sale.
func SetQuantity(tx *gorm.DB, variantID uint, qty int) error {
	if qty < 0 {
		return ErrBadQuantity
	}

	var v models.Variant
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, variantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}

	return tx.Model(&v).Update("quantity", qty).Error
}

// IsLow reports whether a variant has fallen to its low-stock threshold.
func IsLow(v *models.Variant) bool {
	return v.LowQuantity > 0 && v.Quantity <= v.LowQuantity
}
