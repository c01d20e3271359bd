package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bazaar/cart"
	"bazaar/db"
	"bazaar/models"
	"bazaar/razorpay"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var gateway = razorpay.NewFromEnv()

// POST /api/v1/order/create-single-order/:productId/:addressId
func CreateSingleOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	productID := ps.ByName("productId")
	addressID := ps.ByName("addressId")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&input)
	}
	if input.Quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product with the given id not found")
		return
	}
	if err := db.AddressCollection.FindOne(ctx,
		bson.M{"addressid": addressID, "userid": userID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Address with the given id not found")
		return
	}

	items := []models.CartItem{{
		ProductID: product.ProductID,
		Quantity:  input.Quantity,
		Price:     product.Price,
	}}
	totalPrice := cart.RecomputeTotal(items)
	if totalPrice <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Total price must be positive")
		return
	}

	placeOrder(ctx, w, userID, addressID, items, totalPrice)
}

// POST /api/v1/order/create-cart-order/:cartId/:addressId
func CreateCartOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	addressID := ps.ByName("addressId")

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	// Carts are keyed by owner; the path segment is accepted for API shape
	// but the authenticated user's cart is authoritative.
	var c models.Cart
	if err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart doesn't exist")
		return
	}
	if err := db.AddressCollection.FindOne(ctx,
		bson.M{"addressid": addressID, "userid": userID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Address with the given id not found")
		return
	}

	totalPrice := cart.RecomputeTotal(c.Items)
	if totalPrice <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	placeOrder(ctx, w, userID, addressID, c.Items, totalPrice)
}

// placeOrder inserts the order, registers it with the gateway and replies
// with the pair the checkout flow needs.
func placeOrder(ctx context.Context, w http.ResponseWriter, userID, addressID string, items []models.CartItem, totalPrice float64) {
	order := models.Order{
		OrderID:        "ord" + utils.GenerateID(12),
		BuyerID:        userID,
		Items:          items,
		TotalPrice:     totalPrice,
		AddressID:      addressID,
		PaymentStatus:  models.PaymentPending,
		DeliveryStatus: models.DeliveryPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to create your order")
		return
	}

	gatewayOrder, err := gateway.CreateOrder(ctx, totalPrice)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Unable to create payment order")
		return
	}

	order.GatewayOrderID = gatewayOrder.ID
	_, _ = db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID},
		bson.M{"$set": bson.M{"gatewayOrderId": gatewayOrder.ID}})

	utils.SendEnvelope(w, http.StatusCreated, utils.M{
		"order":   order,
		"payment": gatewayOrder,
	}, "Order created successfully")
}

// GET /api/v1/order/my-orders
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 50)
	list, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection,
		bson.M{"buyerid": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, list, "Orders fetched successfully")
}

// GET /api/v1/order/get-order/:orderId
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	orderID := ps.ByName("orderId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx,
		bson.M{"orderid": orderID, "buyerid": userID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, order, "Order fetched successfully")
}
