package handlers

import (
	"net/http"
	"strconv"

	"go-shop-backend/internal/orders"
	"go-shop-backend/internal/payments"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func currentUserID(c *gin.Context) uint {
	v, ok := c.Get("userID")
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}

// --- POST: Web checkout ---
func SaveOrder(c *gin.Context) {
	var req orders.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order payload"})
		return
	}
	req.UserID = currentUserID(c)

	result, serr := orderSvc.CreateOrder(c.Request.Context(), &req)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"success": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"data":    result,
	})
}

// --- GET: Customer order history ---
func GetMyOrders(c *gin.Context) {
	rows, err := orderStore.MyOrders(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

// --- GET: One order, scoped to its owner ---
func GetMyOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid Order ID"})
		return
	}

	order, err := orderStore.MyOrder(c.Request.Context(), currentUserID(c), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// --- GET: Admin order listing ---
func ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	rows, pagination, err := orderStore.ListOrders(
		c.Request.Context(), page, perPage, c.Query("search"), c.DefaultQuery("status", "all"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "data": rows, "pagination": pagination})
}

// --- GET: Admin order detail ---
func GetOrderDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid Order ID"})
		return
	}

	order, err := orderStore.OrderDetail(c.Request.Context(), uint(id))
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

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- PUT: Admin order status change (forward-only) ---
func UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid Order ID"})
		return
	}

	var input StatusUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Status is required"})
		return
	}

	result, serr := orderSvc.UpdateOrderStatus(c.Request.Context(), uint(id), input.Status)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"status": false, "message": serr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Order status updated",
		"data":    result,
	})
}

// --- GET: Dashboard order counts per lifecycle state ---
func GetOrderStatusCounts(c *gin.Context) {
	counts, err := orderStore.StatusCounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": counts})
}

type PaymentOrderRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// --- POST: Open a gateway payment intent for the checkout amount ---
// The gateway order id doubles as the receipt reference.
func CreatePaymentOrder(c *gin.Context) {
	var input PaymentOrderRequest
	if err := c.ShouldBindJSON(&input); err != nil || !input.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A positive amount is required"})
		return
	}

	receipt := payments.NewReceiptID()
	logger.Info("payment order created",
		zap.String("receipt", receipt),
		zap.String("amount", input.Amount.Round(2).String()),
		zap.Uint("user_id", currentUserID(c)))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"order_id": receipt,
			"amount":   input.Amount.Round(2),
			"currency": "INR",
		},
	})
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// --- POST: Verify the gateway callback signature ---
func VerifyPayment(c *gin.Context) {
	var input VerifyPaymentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "order_id, payment_id and signature are required"})
		return
	}

	if !payments.VerifySignature(cfg.GatewaySecret, input.OrderID, input.PaymentID, input.Signature) {
		logger.Warn("payment signature mismatch",
			zap.String("order_id", input.OrderID),
			zap.String("payment_id", input.PaymentID))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified"})
}
