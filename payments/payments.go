package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"bazaar/db"
	"bazaar/models"
	"bazaar/razorpay"
	"bazaar/shipments"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var gateway = razorpay.NewFromEnv()

// POST /api/v1/payment/verify-payment/:orderId
//
// Verifies the gateway signature over razorpayOrderId|razorpayPaymentId,
// records the Payment, marks the order captured and kicks off the shipment
// chain. Replays on an already captured order return the stored payment.
func VerifyPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	orderID := ps.ByName("orderId")

	var input struct {
		RazorpayOrderID   string `json:"razorpayOrderId"`
		RazorpayPaymentID string `json:"razorpayPaymentId"`
		Signature         string `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(input.RazorpayOrderID) == "" ||
		strings.TrimSpace(input.RazorpayPaymentID) == "" ||
		strings.TrimSpace(input.Signature) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx,
		bson.M{"orderid": orderID, "buyerid": userID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	// Re-verifying a captured order returns the stored payment instead of
	// creating a second one.
	if order.PaymentStatus == models.PaymentCaptured {
		var existing models.Payment
		if err := db.PaymentsCollection.FindOne(ctx,
			bson.M{"orderid": orderID}).Decode(&existing); err == nil {
			utils.SendEnvelope(w, http.StatusOK, utils.M{
				"order":   order,
				"payment": existing,
			}, "Payment already verified")
			return
		}
	}

	secret := os.Getenv("RAZORPAY_KEY_SECRET")
	if !VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, secret, input.Signature) {
		utils.RespondWithError(w, http.StatusBadRequest, "Payment verification failed")
		return
	}

	payment := models.Payment{
		PaymentID:         "pay" + utils.GenerateID(12),
		UserID:            userID,
		OrderID:           orderID,
		RazorpayOrderID:   input.RazorpayOrderID,
		RazorpayPaymentID: input.RazorpayPaymentID,
		PaymentMethod:     "unknown",
		PaymentStatus:     models.PaymentCaptured,
		TransactionID:     input.RazorpayPaymentID,
		CreatedAt:         time.Now(),
	}

	// Gateway payment details enrich the record when reachable.
	if details, err := gateway.FetchPayment(ctx, input.RazorpayPaymentID); err == nil {
		if details.Method != "" {
			payment.PaymentMethod = details.Method
		}
	}

	if _, err := db.PaymentsCollection.InsertOne(ctx, payment); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to record payment")
		return
	}

	order.PaymentStatus = models.PaymentCaptured
	order.UpdatedAt = time.Now()
	if _, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{
			"paymentStatus": models.PaymentCaptured,
			"updated_at":    order.UpdatedAt,
		}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to update order")
		return
	}

	// Shipment failures do not undo the capture; retries stay safe through
	// the idempotency key.
	response := utils.M{
		"order":   order,
		"payment": payment,
	}
	shipment, err := shipments.ProcessOrderShipment(ctx, order)
	if err != nil {
		response["shipment"] = utils.M{"status": "failed", "error": "carrier request failed"}
	} else {
		order.DeliveryStatus = models.DeliveryShipped
		response["order"] = order
		response["shipment"] = shipment
	}

	utils.SendEnvelope(w, http.StatusOK, response, "Payment successful")
}
