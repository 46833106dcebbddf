package handlers

import (
	"errors"
	"net/http"

	"go-shop-backend/internal/auth"
	"go-shop-backend/internal/database"
	"go-shop-backend/internal/models"
	"go-shop-backend/internal/otp"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"` // email or phone
	Password string `json:"password" binding:"required"`
}

// Register creates a storefront account (role is always 'user')
func Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ? OR phone = ?", input.Email, input.Phone).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"status": false, "message": "Email or phone already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hashedPassword),
		Role:         "user",
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "User likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "User registered successfully",
		"data": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
	})
}

// login finds a user of the given role by email-or-phone and checks the
// password. Shared by Login and AdminLogin.
func login(c *gin.Context, role string) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": "Invalid input"})
		return
	}

	var user models.User
	err := database.DB.Where("role = ? AND (email = ? OR phone = ?)", role, input.Username, input.Username).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
	})
}

func Login(c *gin.Context)      { login(c, "user") }
func AdminLogin(c *gin.Context) { login(c, "admin") }

type OTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type OTPVerifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	Otp   string `json:"otp" binding:"required,len=6"`
}

// RequestOTP sends a login code to a registered phone
func RequestOTP(c *gin.Context) {
	var input OTPRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": "Phone is required"})
		return
	}

	var user models.User
	if err := database.DB.Where("phone = ?", input.Phone).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "No account with this phone"})
		return
	}

	if err := otpSvc.Send(input.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "OTP sent successfully"})
}

// VerifyOTP consumes a code and logs the customer in
func VerifyOTP(c *gin.Context) {
	var input OTPVerifyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": "Phone and OTP are required"})
		return
	}

	if err := otpSvc.Verify(input.Phone, input.Otp); err != nil {
		msg := "Invalid OTP"
		if errors.Is(err, otp.ErrExpiredCode) {
			msg = "OTP expired"
		}
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": msg})
		return
	}

	var user models.User
	if err := database.DB.Where("phone = ?", input.Phone).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "No account with this phone"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "OTP verified successfully",
		"token":   token,
	})
}
