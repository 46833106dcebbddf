package handlers

import (
	"net/http"
	"strconv"

	"go-shop-backend/internal/database"
	"go-shop-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type BrandRequest struct {
	Name   string `json:"name" binding:"required"`
	Image  string `json:"image"`
	Status string `json:"status"`
}

func CreateBrand(c *gin.Context) {
	var input BrandRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	brand := models.Brand{Name: input.Name, Image: input.Image}
	if input.Status != "" {
		brand.Status = input.Status
	}

	if err := database.DB.Create(&brand).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to create brand"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "Brand created",
		"data":    brand,
	})
}

func ListBrands(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	search := c.Query("search")
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	q := database.DB.Model(&models.Brand{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch brands"})
		return
	}

	var brands []models.Brand
	err := q.Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&brands).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch brands"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"data":   brands,
		"pagination": gin.H{
			"total":      total,
			"page":       page,
			"perPage":    perPage,
			"totalPages": (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

func GetBrand(c *gin.Context) {
	var brand models.Brand
	if err := database.DB.First(&brand, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Brand not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": brand})
}

func UpdateBrand(c *gin.Context) {
	var brand models.Brand
	if err := database.DB.First(&brand, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Brand not found"})
		return
	}

	var input BrandRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	updates := map[string]interface{}{"name": input.Name, "image": input.Image}
	if input.Status != "" {
		updates["status"] = input.Status
	}

	if err := database.DB.Model(&brand).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to update brand"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Brand updated successfully"})
}

func DeleteBrand(c *gin.Context) {
	var count int64
	if err := database.DB.Model(&models.Product{}).Where("brand_id = ?", c.Param("id")).Count(&count).Error; err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"status": false, "message": "Brand has products and cannot be deleted"})
		return
	}

	res := database.DB.Delete(&models.Brand{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to delete brand"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Brand not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Brand deleted successfully"})
}
