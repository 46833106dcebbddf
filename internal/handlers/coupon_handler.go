package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go-shop-backend/internal/coupon"
	"go-shop-backend/internal/database"
	"go-shop-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CouponRequest struct {
	Code        string           `json:"code" binding:"required"`
	Type        string           `json:"type" binding:"required"`
	Value       decimal.Decimal  `json:"value"`
	MinOrder    decimal.Decimal  `json:"min_order"`
	MaxDiscount *decimal.Decimal `json:"max_discount"`
	ExpiryDate  *time.Time       `json:"expiry_date"`
	IsActive    *bool            `json:"is_active"`
}

func CreateCoupon(c *gin.Context) {
	var input CouponRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	if input.Type != models.CouponTypeFlat && input.Type != models.CouponTypePercent {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Coupon type must be flat or percent"})
		return
	}

	cp := models.Coupon{
		Code:        strings.ToUpper(strings.TrimSpace(input.Code)),
		Type:        input.Type,
		Value:       input.Value,
		MinOrder:    input.MinOrder,
		MaxDiscount: input.MaxDiscount,
		ExpiryDate:  input.ExpiryDate,
		IsActive:    true,
	}
	if input.IsActive != nil {
		cp.IsActive = *input.IsActive
	}

	if err := database.DB.Create(&cp).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"status": false, "message": "Coupon code already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": true, "message": "Coupon created", "data": cp})
}

func ListCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := database.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch coupons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": coupons})
}

func GetCoupon(c *gin.Context) {
	var cp models.Coupon
	if err := database.DB.First(&cp, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Coupon not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": cp})
}

func UpdateCoupon(c *gin.Context) {
	var cp models.Coupon
	if err := database.DB.First(&cp, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Coupon not found"})
		return
	}

	var input CouponRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}
	if input.Type != models.CouponTypeFlat && input.Type != models.CouponTypePercent {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Coupon type must be flat or percent"})
		return
	}

	cp.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	cp.Type = input.Type
	cp.Value = input.Value
	cp.MinOrder = input.MinOrder
	cp.MaxDiscount = input.MaxDiscount
	cp.ExpiryDate = input.ExpiryDate
	if input.IsActive != nil {
		cp.IsActive = *input.IsActive
	}

	if err := database.DB.Save(&cp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to update coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Coupon updated successfully", "data": cp})
}

func DeleteCoupon(c *gin.Context) {
	res := database.DB.Delete(&models.Coupon{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to delete coupon"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Coupon not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Coupon deleted successfully"})
}

type ApplyCouponRequest struct {
	Code   string          `json:"code" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// --- POST: Validate a code against a cart amount before checkout ---
// The authoritative application happens again inside order creation; this
// endpoint only previews the discount for the cart page.
func ApplyCoupon(c *gin.Context) {
	var input ApplyCouponRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Coupon code is required"})
		return
	}

	var cp models.Coupon
	err := database.DB.Where("code = ?", strings.ToUpper(strings.TrimSpace(input.Code))).First(&cp).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invalid coupon code"})
		return
	}

	result, err := coupon.Apply(&cp, input.Amount)
	if err != nil {
		status := http.StatusBadRequest
		msg := "Invalid coupon code"
		switch {
		case errors.Is(err, coupon.ErrCouponExpired):
			msg = "Coupon has expired"
		case errors.Is(err, coupon.ErrMinimumOrderNotMet):
			msg = "Minimum order amount not met"
		}
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Coupon applied",
		"data": gin.H{
			"code":         cp.Code,
			"discount":     result.Discount.Round(2),
			"final_amount": result.FinalAmount.Round(2),
		},
	})
}
