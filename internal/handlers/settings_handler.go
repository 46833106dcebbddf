package handlers

import (
	"net/http"

	"go-shop-backend/internal/database"
	"go-shop-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Every settings table holds exactly one row, created on first read.

func GetApplicationSettings(c *gin.Context) {
	var s models.ApplicationSetting
	if err := database.DB.FirstOrCreate(&s, models.ApplicationSetting{ID: 1}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": s})
}

type ApplicationSettingsRequest struct {
	AppName string `json:"app_name" binding:"required"`
	Logo    string `json:"logo"`
	Favicon string `json:"favicon"`
}

func UpdateApplicationSettings(c *gin.Context) {
	var input ApplicationSettingsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "App name is required"})
		return
	}

	var s models.ApplicationSetting
	if err := database.DB.FirstOrCreate(&s, models.ApplicationSetting{ID: 1}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	s.AppName = input.AppName
	s.Logo = input.Logo
	s.Favicon = input.Favicon

	if err := database.DB.Save(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Settings updated", "data": s})
}

func GetPaymentSettings(c *gin.Context) {
	var s models.PaymentGatewaySetting
	if err := database.DB.FirstOrCreate(&s, models.PaymentGatewaySetting{ID: 1}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}
	// KeySecret is json:"-"; only the public key id goes out
	c.JSON(http.StatusOK, gin.H{"status": true, "data": s})
}

type PaymentSettingsRequest struct {
	Provider  string `json:"provider"`
	KeyID     string `json:"key_id" binding:"required"`
	KeySecret string `json:"key_secret"`
	IsLive    *bool  `json:"is_live"`
}

func UpdatePaymentSettings(c *gin.Context) {
	var input PaymentSettingsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Key ID is required"})
		return
	}

	var s models.PaymentGatewaySetting
	if err := database.DB.FirstOrCreate(&s, models.PaymentGatewaySetting{ID: 1}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	if input.Provider != "" {
		s.Provider = input.Provider
	}
	s.KeyID = input.KeyID
	// Blank secret means keep the stored one
	if input.KeySecret != "" {
		s.KeySecret = input.KeySecret
	}
	if input.IsLive != nil {
		s.IsLive = *input.IsLive
	}

	if err := database.DB.Save(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Payment settings updated"})
}

func GetSocialSettings(c *gin.Context) {
	var s models.SocialMediaSetting
	if err := database.DB.FirstOrCreate(&s, models.SocialMediaSetting{ID: 1}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": s})
}

type SocialSettingsRequest struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Youtube   string `json:"youtube"`
	Whatsapp  string `json:"whatsapp"`
}

func UpdateSocialSettings(c *gin.Context) {
	var input SocialSettingsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	var s models.SocialMediaSetting
	if err := database.DB.FirstOrCreate(&s, models.SocialMediaSetting{ID: 1}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	s.Facebook = input.Facebook
	s.Instagram = input.Instagram
	s.Twitter = input.Twitter
	s.Youtube = input.Youtube
	s.Whatsapp = input.Whatsapp

	if err := database.DB.Save(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Social settings updated"})
}
