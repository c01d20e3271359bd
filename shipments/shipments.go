package shipments

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bazaar/db"
	"bazaar/fedex"
	"bazaar/models"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var carrier = fedex.NewFromEnv()

// ProcessOrderShipment runs the post-payment chain for an order: create the
// shipment with the carrier, schedule a pickup, fetch the initial tracking
// snapshot and persist the Shipment document. The order's delivery status
// moves to Shipped on success.
func ProcessOrderShipment(ctx context.Context, order models.Order) (*models.Shipment, error) {
	var address models.Address
	if err := db.AddressCollection.FindOne(ctx,
		bson.M{"addressid": order.AddressID}).Decode(&address); err != nil {
		return nil, fmt.Errorf("shipment address lookup: %w", err)
	}

	var buyer models.User
	recipientName := "Customer"
	if err := db.UserCollection.FindOne(ctx,
		bson.M{"userid": order.BuyerID}).Decode(&buyer); err == nil {
		recipientName = buyer.FullName
	}

	result, err := carrier.CreateShipment(ctx, address, recipientName)
	if err != nil {
		return nil, err
	}
	if result.TrackingNumber == "" {
		return nil, fmt.Errorf("carrier response missing tracking number")
	}

	if _, err := carrier.SchedulePickup(ctx, result.TrackingNumber); err != nil {
		return nil, err
	}
	// Tracking data right after creation is best effort.
	_, _ = carrier.Track(ctx, result.TrackingNumber)

	shipment := models.Shipment{
		ShipmentID:     "ship" + utils.GenerateID(12),
		OrderID:        order.OrderID,
		TrackingNumber: result.TrackingNumber,
		Carrier:        "FedEx",
		Status:         models.DeliveryShipped,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if _, err := db.ShipmentsCollection.InsertOne(ctx, shipment); err != nil {
		return nil, fmt.Errorf("persist shipment: %w", err)
	}

	_, err = db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID},
		bson.M{"$set": bson.M{
			"deliveryStatus": models.DeliveryShipped,
			"updated_at":     time.Now(),
		}})
	if err != nil {
		return nil, fmt.Errorf("update order delivery status: %w", err)
	}

	return &shipment, nil
}

// GET /api/v1/shipment/track/:orderId
func TrackShipment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	orderID := ps.ByName("orderId")

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	if err := db.OrdersCollection.FindOne(ctx,
		bson.M{"orderid": orderID, "buyerid": userID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	var shipment models.Shipment
	if err := db.ShipmentsCollection.FindOne(ctx,
		bson.M{"orderid": orderID}).Decode(&shipment); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shipment not found for this order")
		return
	}

	tracking, err := carrier.Track(ctx, shipment.TrackingNumber)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Unable to fetch tracking from carrier")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, utils.M{
		"shipment": shipment,
		"tracking": tracking,
	}, "Tracking fetched successfully")
}
