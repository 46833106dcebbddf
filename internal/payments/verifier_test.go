package payments_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-shop-backend/internal/payments"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	sig := sign("topsecret", "order_9", "pay_42")

	assert.True(t, payments.VerifySignature("topsecret", "order_9", "pay_42", sig))
	assert.False(t, payments.VerifySignature("topsecret", "order_9", "pay_42", sig+"00"))
	assert.False(t, payments.VerifySignature("wrongkey", "order_9", "pay_42", sig))
	assert.False(t, payments.VerifySignature("topsecret", "order_8", "pay_42", sig))
}

func TestNewReceiptID(t *testing.T) {
	a := payments.NewReceiptID()
	b := payments.NewReceiptID()

	assert.Contains(t, a, "receipt_")
	assert.NotEqual(t, a, b)
}
