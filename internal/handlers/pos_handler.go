package handlers

import (
	"net/http"
	"strconv"

	"go-shop-backend/internal/orders"

	"github.com/gin-gonic/gin"
)

// --- POST: Counter sale from the POS terminal ---
func CreatePOSOrder(c *gin.Context) {
	var req orders.CreatePOSOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid order payload"})
		return
	}
	req.CashierID = currentUserID(c)

	result, serr := orderSvc.CreatePOSOrder(c.Request.Context(), &req)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"status": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "Order created successfully",
		"data":    result,
	})
}

// --- GET: Counter sale listing with order-no/customer search ---
func ListPOSOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	rows, pagination, err := orderStore.ListPOSOrders(c.Request.Context(), page, perPage, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": rows, "pagination": pagination})
}

// --- GET: One counter sale with its lines (receipt reprint) ---
func GetPOSOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid Order ID"})
		return
	}

	order, err := orderStore.POSOrderDetail(c.Request.Context(), uint(id))
	if err != nil {
		if orders.NotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": order})
}
