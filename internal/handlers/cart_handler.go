package handlers

import (
	"net/http"
	"strconv"

	"go-shop-backend/internal/database"
	"go-shop-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint            `json:"product_id" binding:"required"`
	VariantID *uint           `json:"variant_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// --- POST: Replace the server cart with the client cart ---
// Rows the client no longer has are deleted; the rest are upserted on the
// user+product+variant key. The whole sync runs in one transaction.
func SyncCart(c *gin.Context) {
	userID := currentUserID(c)

	var body struct {
		Items []CartItemInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cart payload"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for _, in := range body.Items {
			if in.Quantity < 1 {
				continue
			}
			item := models.CartItem{
				UserID:    userID,
				ProductID: in.ProductID,
				VariantID: in.VariantID,
				Price:     in.Price,
				Quantity:  in.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to sync cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart synced"})
}

// --- GET: The server-side cart for the logged-in user ---
func GetCart(c *gin.Context) {
	var items []models.CartItem
	err := database.DB.Where("user_id = ?", currentUserID(c)).Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

type WishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// --- POST: Toggle a product in the wishlist ---
func ToggleWishlist(c *gin.Context) {
	userID := currentUserID(c)

	var input WishlistRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID is required"})
		return
	}

	var existing models.Wishlist
	err := database.DB.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&existing).Error
	if err == nil {
		if err := database.DB.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from wishlist", "data": gin.H{"wishlisted": false}})
		return
	}

	entry := models.Wishlist{UserID: userID, ProductID: input.ProductID}
	if err := database.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to wishlist", "data": gin.H{"wishlisted": true}})
}

// --- GET: Wishlist with product rows for display ---
func GetWishlist(c *gin.Context) {
	var entries []models.Wishlist
	err := database.DB.Where("user_id = ?", currentUserID(c)).Preload("Product").Find(&entries).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}

type AddressRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Pincode   string `json:"pincode" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// --- POST: New shipping address ---
func CreateAddress(c *gin.Context) {
	userID := currentUserID(c)

	var input AddressRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid address"})
		return
	}

	addr := models.Address{
		UserID:    userID,
		Name:      input.Name,
		Phone:     input.Phone,
		Line1:     input.Line1,
		Line2:     input.Line2,
		City:      input.City,
		State:     input.State,
		Pincode:   input.Pincode,
		IsDefault: input.IsDefault,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&addr).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Address saved", "data": addr})
}

// --- GET: All addresses for the logged-in user ---
func ListAddresses(c *gin.Context) {
	var addrs []models.Address
	err := database.DB.Where("user_id = ?", currentUserID(c)).Order("is_default DESC, created_at DESC").Find(&addrs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch addresses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": addrs})
}

// --- PUT: Edit an address, scoped to its owner ---
func UpdateAddress(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid Address ID"})
		return
	}

	var addr models.Address
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&addr).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
		return
	}

	var input AddressRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid address"})
		return
	}

	addr.Name = input.Name
	addr.Phone = input.Phone
	addr.Line1 = input.Line1
	addr.Line2 = input.Line2
	addr.City = input.City
	addr.State = input.State
	addr.Pincode = input.Pincode
	addr.IsDefault = input.IsDefault

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND id <> ?", userID, addr.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&addr).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address updated", "data": addr})
}

// --- DELETE: Remove an address, scoped to its owner ---
func DeleteAddress(c *gin.Context) {
	res := database.DB.Where("user_id = ?", currentUserID(c)).Delete(&models.Address{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address deleted"})
}
