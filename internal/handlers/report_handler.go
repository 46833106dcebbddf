package handlers

import (
	"net/http"
	"time"

	"go-shop-backend/internal/database"
	"go-shop-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type topSeller struct {
	ProductName string  `json:"product_name"`
	Sold        int     `json:"sold"`
	Revenue     float64 `json:"revenue"`
}

// --- GET: Dashboard sales report over a date range ---
// Defaults to the last 30 days. Both checkout surfaces are reported
// side by side.
func GetSalesReport(c *gin.Context) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if s := c.Query("start"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			start = t
		}
	}
	if e := c.Query("end"); e != "" {
		if t, err := time.Parse("2006-01-02", e); err == nil {
			// Inclusive end date
			end = t.AddDate(0, 0, 1)
		}
	}

	report, err := database.GetSalesReport(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to calculate revenue"})
		return
	}

	var topSelling []topSeller
	err = database.DB.Table("order_items").
		Select("products.name as product_name, SUM(order_items.quantity) as sold, SUM(order_items.quantity * order_items.price) as revenue").
		Joins("JOIN products ON order_items.product_id = products.id").
		Joins("JOIN orders ON order_items.order_id = orders.id").
		Where("orders.created_at BETWEEN ? AND ? AND orders.order_status <> ?", start, end, models.OrderStatusCancelled).
		Group("products.name").
		Order("sold desc").
		Limit(5).
		Scan(&topSelling).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch top selling items"})
		return
	}

	var recentPOS []models.PosOrder
	err = database.DB.Order("created_at desc").Limit(10).Find(&recentPOS).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch recent sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"data": gin.H{
			"online_revenue": report.OnlineRevenue,
			"online_orders":  report.OnlineCount,
			"pos_revenue":    report.POSRevenue,
			"pos_orders":     report.POSCount,
			"total_revenue":  report.OnlineRevenue + report.POSRevenue,
			"top_selling":    topSelling,
			"recent_sales":   recentPOS,
		},
	})
}

// --- GET: Variants at or under their low-stock threshold ---
func GetLowStockReport(c *gin.Context) {
	variants, err := database.LowStockVariants()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"data":   variants,
		"count":  len(variants),
	})
}
