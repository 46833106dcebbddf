package database

import (
	"go-shop-backend/internal/models"
	"time"
)

// SalesReportResult aggregates both checkout surfaces for the dashboard
type SalesReportResult struct {
	OnlineRevenue float64
	OnlineCount   int64
	POSRevenue    float64
	POSCount      int64
}

// GetSalesReport calculates sales within a specific date range
func GetSalesReport(start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := DB.Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ? AND payment_status = ?", start, end, "paid").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.OnlineRevenue).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&result.OnlineCount).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.PosOrder{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&result.POSRevenue).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.PosOrder{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&result.POSCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// LowStockVariants lists variants at or under their low-stock threshold
func LowStockVariants() ([]models.Variant, error) {
	var variants []models.Variant
	err := DB.Where("low_quantity > 0 AND quantity <= low_quantity").
		Order("quantity ASC").
		Find(&variants).Error
	return variants, err
}
