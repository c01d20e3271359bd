package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"bazaar/db"
	"bazaar/models"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const productPicDir = "./static/productpic"

// POST /api/v1/product/product-listing/:categoryId — admin only, multipart.
// The authenticated admin is recorded as the seller.
func ListProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sellerID := utils.GetUserIDFromRequest(r)
	if sellerID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	categoryID := ps.ByName("categoryId")

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	brand := strings.TrimSpace(r.FormValue("brand"))
	price := utils.ParseFloat(r.FormValue("price"))
	stock := utils.ParseInt(r.FormValue("stock"))

	if name == "" || description == "" || brand == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if price <= 0 || stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Price and stock must be non-negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	// Category must exist before listing under it
	if err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryid": categoryID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No category found with the given id")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one image is required")
		return
	}
	if len(files) > models.MaxProductImages {
		utils.RespondWithError(w, http.StatusBadRequest, "A product can have at most 11 images")
		return
	}

	var images []string
	for _, header := range files {
		if !utils.ValidateImageFileType(w, header) {
			return
		}
		file, err := header.Open()
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Unable to read uploaded image")
			return
		}
		saved, err := utils.SaveImage(file, header, productPicDir)
		file.Close()
		if err != nil {
			log.Printf("Failed to save product image: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Unable to store product image")
			return
		}
		images = append(images, "/static/productpic/"+saved)
	}

	product := models.Product{
		ProductID:   "p" + utils.GenerateID(14),
		SellerID:    sellerID,
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Brand:       brand,
		Images:      images,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to list the product")
		return
	}

	utils.SendEnvelope(w, http.StatusCreated, product, "Product listed successfully")
}

// GET /api/v1/product/get-product/:productId
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("productId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pipeline := append(
		[]bson.M{{"$match": bson.M{"productid": productID}}},
		ratingLookupStages()...,
	)
	cursor, err := db.ProductCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve product")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Product
	if err := cursor.All(ctx, &results); err != nil || len(results) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, results[0], "Product fetched successfully")
}

// PATCH /api/v1/product/update-product/:productId — admin only.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	productID := ps.ByName("productId")

	var input struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Brand       string   `json:"brand"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	changes := bson.M{}
	if v := strings.TrimSpace(input.Name); v != "" {
		changes["name"] = v
	}
	if v := strings.TrimSpace(input.Description); v != "" {
		changes["description"] = v
	}
	if v := strings.TrimSpace(input.Brand); v != "" {
		changes["brand"] = v
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Price must be positive")
			return
		}
		changes["price"] = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Stock cannot be negative")
			return
		}
		changes["stock"] = *input.Stock
	}
	if len(changes) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one field is required for the update")
		return
	}
	changes["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.ProductCollection.UpdateOne(ctx, bson.M{"productid": productID}, bson.M{"$set": changes})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to update the product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err == nil {
		utils.SendEnvelope(w, http.StatusOK, product, "Product updated successfully")
		return
	}
	utils.SendEnvelope(w, http.StatusOK, nil, "Product updated successfully")
}

// DELETE /api/v1/product/delete-product/:productId — admin only. No cascade:
// cart and wishlist references are left dangling, as documented.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	productID := ps.ByName("productId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": productID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product may not exist")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, nil, "Product deleted successfully")
}
