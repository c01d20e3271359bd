package products

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"bazaar/db"
	"bazaar/models"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// PATCH /api/v1/product/update-product-images/:productId — admin only,
// multipart. Appends uploaded images, keeping the total at or under the cap.
func AddProductImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	productID := ps.ByName("productId")

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one image is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if len(product.Images)+len(files) > models.MaxProductImages {
		utils.RespondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("A product can have at most %d images", models.MaxProductImages))
		return
	}

	var added []string
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
		added = append(added, "/static/productpic/"+saved)
	}

	_, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{
			"$push": bson.M{"images": bson.M{"$each": added}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add images")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, map[string]any{"images": added}, "Images added successfully")
}
