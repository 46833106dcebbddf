package handlers

import (
	"net/http"
	"strconv"

	"go-shop-backend/internal/database"
	"go-shop-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type CategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	Image  string `json:"image"`
	Status string `json:"status"`
}

func CreateCategory(c *gin.Context) {
	var input CategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	category := models.Category{Name: input.Name, Image: input.Image}
	if input.Status != "" {
		category.Status = input.Status
	}

	if err := database.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "Category created",
		"data":    category,
	})
}

func ListCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	search := c.Query("search")
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	q := database.DB.Model(&models.Category{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch categories"})
		return
	}

	var categories []models.Category
	err := q.Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"data":   categories,
		"pagination": gin.H{
			"total":      total,
			"page":       page,
			"perPage":    perPage,
			"totalPages": (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

func GetCategory(c *gin.Context) {
	var category models.Category
	if err := database.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": category})
}

func UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := database.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Category not found"})
		return
	}

	var input CategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	updates := map[string]interface{}{"name": input.Name, "image": input.Image}
	if input.Status != "" {
		updates["status"] = input.Status
	}

	if err := database.DB.Model(&category).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Category updated successfully"})
}

func DeleteCategory(c *gin.Context) {
	var count int64
	if err := database.DB.Model(&models.Product{}).Where("category_id = ?", c.Param("id")).Count(&count).Error; err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"status": false, "message": "Category has products and cannot be deleted"})
		return
	}

	res := database.DB.Delete(&models.Category{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to delete category"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Category deleted successfully"})
}
