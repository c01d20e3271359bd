package payments

import "testing"

func TestVerifySignatureMatch(t *testing.T) {
	secret := "FG3QXIWFuopEjluyqWny66nD"
	orderID := "order_PrB9akYQZNGt31"
	paymentID := "payment_Abc123456"

	sig := SignPayload(orderID, paymentID, secret)
	if !VerifySignature(orderID, paymentID, secret, sig) {
		t.Fatal("expected a correctly signed payload to verify")
	}
}

func TestVerifySignatureMismatch(t *testing.T) {
	secret := "test-secret"
	sig := SignPayload("order_1", "payment_1", secret)

	if VerifySignature("order_1", "payment_2", secret, sig) {
		t.Fatal("signature for a different payment must not verify")
	}
	if VerifySignature("order_1", "payment_1", "wrong-secret", sig) {
		t.Fatal("signature under a different secret must not verify")
	}
	if VerifySignature("order_1", "payment_1", secret, "deadbeef") {
		t.Fatal("garbage signature must not verify")
	}
}
