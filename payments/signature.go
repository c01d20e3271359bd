package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayload computes the gateway signature over orderID|paymentID.
func SignPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the expected HMAC for
// orderID|paymentID. Comparison is constant time.
func VerifySignature(orderID, paymentID, secret, signature string) bool {
	expected := SignPayload(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
