// Package otp issues and verifies one-time login codes.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-shop-backend/internal/models"
)

const (
	codeLen  = 6
	validity = 5 * time.Minute
)

var (
	ErrInvalidCode = errors.New("invalid otp")
	ErrExpiredCode = errors.New("otp expired")
)

// Sender delivers the code to the customer's phone. The real gateway
// (WhatsApp/SMS) is an external collaborator; LogSender stands in for it
// in development.
type Sender interface {
	Send(phone, message string) error
}

// LogSender writes codes to the log instead of a messaging gateway.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(phone, message string) error {
	s.Logger.Info("otp message", zap.String("phone", phone), zap.String("body", message))
	return nil
}

// Service issues single-use codes backed by the otps table.
type Service struct {
	db     *gorm.DB
	sender Sender
}

func NewService(db *gorm.DB, sender Sender) *Service {
	return &Service{db: db, sender: sender}
}

// generateCode returns a 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Send invalidates any outstanding codes for the phone, stores a fresh one
// and hands it to the sender.
func (s *Service) Send(phone string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.db.Model(&models.Otp{}).Where("phone = ?", phone).Update("is_used", true).Error; err != nil {
		return err
	}

	record := models.Otp{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(validity),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}

	return s.sender.Send(phone, fmt.Sprintf("Your OTP is %s. Valid for 5 minutes.", code))
}

// Verify consumes the latest unused code for the phone. A code verifies
// exactly once.
func (s *Service) Verify(phone, code string) error {
	var record models.Otp
	err := s.db.Where("phone = ? AND code = ? AND is_used = ?", phone, code, false).
		Order("id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		return ErrExpiredCode
	}

	return s.db.Model(&record).Update("is_used", true).Error
}
