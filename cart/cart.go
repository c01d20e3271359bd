package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bazaar/db"
	"bazaar/models"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// POST /api/v1/cart/create-cart — optionally seeds the cart with a first product.
func CreateCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	var input struct {
		ProductID string `json:"productid"`
		Quantity  int    `json:"quantity"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&input)
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Err(); err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Cart already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	newCart := models.Cart{
		UserID:    userID,
		Items:     []models.CartItem{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if input.ProductID != "" {
		var product models.Product
		if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": input.ProductID}).Decode(&product); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found with the given id")
			return
		}
		newCart.Items = addItem(newCart.Items, product.ProductID, product.Price, input.Quantity)
	}
	newCart.TotalPrice = RecomputeTotal(newCart.Items)

	if _, err := db.CartCollection.InsertOne(ctx, newCart); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Cart already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to create cart")
		return
	}

	utils.SendEnvelope(w, http.StatusCreated, newCart, "Cart created successfully")
}

// GET /api/v1/cart/get-cart
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var c models.Cart
	if err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}
	c.TotalPrice = RecomputeTotal(c.Items)

	utils.SendEnvelope(w, http.StatusOK, c, "Cart fetched successfully")
}

// POST /api/v1/cart/add-product/:productId
func AddProductToCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	productID := ps.ByName("productId")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&input)
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product is not found")
		return
	}

	var c models.Cart
	if err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found, create it first")
		return
	}

	c.Items = addItem(c.Items, product.ProductID, product.Price, input.Quantity)
	saveCart(ctx, w, &c, "Product added to the cart")
}

// DELETE /api/v1/cart/remove-product/:productId — removes a single quantity.
func RemoveProductFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	productID := ps.ByName("productId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var c models.Cart
	if err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}

	items, found := removeOne(c.Items, productID)
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found in the cart")
		return
	}
	c.Items = items
	saveCart(ctx, w, &c, "Product removed from the cart")
}

// DELETE /api/v1/cart/remove-same-products/:productId — drops the whole line.
func RemoveAllSameProductFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	productID := ps.ByName("productId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var c models.Cart
	if err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}

	items, found := removeAll(c.Items, productID)
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found in the cart")
		return
	}
	c.Items = items
	saveCart(ctx, w, &c, "Product removed successfully")
}

// DELETE /api/v1/cart/delete-cart
func DeleteCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.CartCollection.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete cart")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, nil, "Cart deleted successfully")
}

// saveCart persists items with a freshly derived total and replies with the
// updated cart.
func saveCart(ctx context.Context, w http.ResponseWriter, c *models.Cart, message string) {
	c.TotalPrice = RecomputeTotal(c.Items)
	c.UpdatedAt = time.Now()

	_, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userid": c.UserID},
		bson.M{"$set": bson.M{
			"items":      c.Items,
			"totalPrice": c.TotalPrice,
			"updated_at": c.UpdatedAt,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, c, message)
}
