package database

import (
	"log"
	"time"

	"go-shop-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(dsn string) {
	if dsn == "" {
		log.Fatal("❌ Error: DB_DSN not found in .env file. Please configure your database.")
	}

	var err error

	// Connect with GORM (Wait for DB to be ready)
	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatal("Failed to connect to database after 5 attempts:", err)
	}

	log.Println("✅ Successfully connected to MySQL!")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Otp{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.ProductTaxAffinity{},
		&models.ProductSeoMeta{},
		&models.Variant{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.PosOrder{},
		&models.PosOrderItem{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.ApplicationSetting{},
		&models.PaymentGatewaySetting{},
		&models.SocialMediaSetting{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database schema:", err)
	}

	log.Println("✅ Database Schema Synced!")
}
