package models

import (
	"time"
)

// ApplicationSetting - single row, find-or-create. Kept as a DB row (not a
// process config value) because admins edit it at runtime.
type ApplicationSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AppName   string    `gorm:"size:100;not null" json:"app_name"`
	Logo      string    `gorm:"size:255" json:"logo"`
	Favicon   string    `gorm:"size:255" json:"favicon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentGatewaySetting - single row with the gateway key pair. The secret
// never leaves the server.
type PaymentGatewaySetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Provider  string    `gorm:"size:50;default:razorpay" json:"provider"`
	KeyID     string    `gorm:"size:100" json:"key_id"`
	KeySecret string    `gorm:"size:100" json:"-"`
	IsLive    bool      `gorm:"default:false" json:"is_live"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SocialMediaSetting - single row of storefront footer links
type SocialMediaSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Facebook  string    `gorm:"size:255" json:"facebook"`
	Instagram string    `gorm:"size:255" json:"instagram"`
	Twitter   string    `gorm:"size:255" json:"twitter"`
	Youtube   string    `gorm:"size:255" json:"youtube"`
	Whatsapp  string    `gorm:"size:255" json:"whatsapp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
