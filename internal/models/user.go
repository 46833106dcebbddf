package models

import (
	"time"
)

// User - customers and dashboard admins share one table, split by Role
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:120" json:"email"`
	Phone        string    `gorm:"uniqueIndex;size:20" json:"phone"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	Role         string    `gorm:"size:20;default:user" json:"role"` // 'user' or 'admin'
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Address - shipping addresses for web checkout (POS orders have none)
type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:100" json:"name"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Line1     string    `gorm:"size:255" json:"line1"`
	Line2     string    `gorm:"size:255" json:"line2"`
	City      string    `gorm:"size:100" json:"city"`
	State     string    `gorm:"size:100" json:"state"`
	Pincode   string    `gorm:"size:10" json:"pincode"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Otp - one-time login codes sent over WhatsApp/SMS
type Otp struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Phone     string    `gorm:"index;size:20" json:"phone"`
	Code      string    `gorm:"size:6" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}
