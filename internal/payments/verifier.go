// Package payments models the gateway trust boundary. The order core never
// talks to the gateway itself; it only records payment fields and asks this
// package whether a callback signature checks out.
package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VerifySignature reports whether the gateway's callback signature matches
// HMAC-SHA256(orderID|paymentID, secret). Constant-time comparison; a
// false return means the payment must not be trusted.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// NewReceiptID builds the receipt reference sent when creating a gateway
// order.
func NewReceiptID() string {
	return fmt.Sprintf("receipt_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
}
