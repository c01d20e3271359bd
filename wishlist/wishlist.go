package wishlist

import (
	"context"
	"net/http"
	"time"

	"bazaar/db"
	"bazaar/models"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// POST /api/v1/wishlist/create-wishlist
func CreateWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := db.WishlistCollection.FindOne(ctx, bson.M{"userid": userID}).Err(); err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Wishlist already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	wl := models.Wishlist{
		UserID:     userID,
		ProductIDs: []string{},
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if _, err := db.WishlistCollection.InsertOne(ctx, wl); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to create wishlist")
		return
	}

	utils.SendEnvelope(w, http.StatusCreated, wl, "Wishlist created successfully")
}

// GET /api/v1/wishlist/get-wishlist
func GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var wl models.Wishlist
	if err := db.WishlistCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&wl); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Wishlist not found")
		return
	}

	// Hydrate the product documents so the client gets names and prices.
	products := []models.Product{}
	if len(wl.ProductIDs) > 0 {
		var err error
		products, err = utils.FindAndDecode[models.Product](ctx, db.ProductCollection,
			bson.M{"productid": bson.M{"$in": wl.ProductIDs}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch wishlist products")
			return
		}
	}

	utils.SendEnvelope(w, http.StatusOK, utils.M{
		"wishlist": wl,
		"products": products,
	}, "Wishlist fetched successfully")
}

// POST /api/v1/wishlist/add-product-wishlist/:productId
func AddProductToWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	productID := ps.ByName("productId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product is not found")
		return
	}

	result, err := db.WishlistCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{
			"$addToSet": bson.M{"productids": productID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Wishlist not found, create it first")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, nil, "Product added to the wishlist")
}

// DELETE /api/v1/wishlist/remove-product-wishlist/:productId
func RemoveProductFromWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	productID := ps.ByName("productId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var wl models.Wishlist
	if err := db.WishlistCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&wl); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Wishlist not found")
		return
	}

	found := false
	for _, id := range wl.ProductIDs {
		if id == productID {
			found = true
			break
		}
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found in the wishlist")
		return
	}

	_, err := db.WishlistCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{
			"$pull": bson.M{"productids": productID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, nil, "Product removed from the wishlist")
}

// DELETE /api/v1/wishlist/delete-wishlist
func DeleteWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.WishlistCollection.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete wishlist")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Wishlist not found")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, nil, "Wishlist deleted successfully")
}
