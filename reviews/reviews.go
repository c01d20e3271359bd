package reviews

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

var reviewSortOptions = map[string]bson.D{
	"rating:asc":  {{Key: "rating", Value: 1}},
	"rating:desc": {{Key: "rating", Value: -1}},
	"createdAt":   {{Key: "created_at", Value: -1}},
}

// POST /api/v1/review/create-review/:productId
func CreateReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	productID := ps.ByName("productId")

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product is not found")
		return
	}

	review := models.Review{
		ReviewID:  "rev" + utils.GenerateID(12),
		UserID:    userID,
		ProductID: productID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this product")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to create review")
		return
	}

	utils.SendEnvelope(w, http.StatusCreated, review, "Review created successfully")
}

// GET /api/v1/review/get-review/:reviewId
func GetReviewByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviewID := ps.ByName("reviewId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var review models.Review
	if err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewid": reviewID}).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, review, "Review fetched successfully")
}

// GET /api/v1/review/product-reviews/:productId — paginated, newest first by default.
func GetReviewsByProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("productId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product is not found")
		return
	}

	skip, limit := utils.ParsePagination(r, 10, 50)
	sort := utils.ParseSort(r.URL.Query().Get("sort"),
		bson.D{{Key: "created_at", Value: -1}}, reviewSortOptions)

	filter := bson.M{"productid": productID}
	list, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, filter,
		options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	total, err := db.ReviewsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count reviews")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, utils.M{
		"reviews": list,
		"total":   total,
	}, "Reviews fetched successfully")
}

// GET /api/v1/review/my-reviews
func GetMyReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 50)
	list, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection,
		bson.M{"userid": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, list, "Reviews fetched successfully")
}

// PATCH /api/v1/review/update-review/:reviewId — only the author can edit.
func UpdateReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	reviewID := ps.ByName("reviewId")

	var input struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := bson.M{}
	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
			return
		}
		updates["rating"] = *input.Rating
	}
	if input.Comment != nil {
		updates["comment"] = *input.Comment
	}
	if len(updates) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	updates["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.ReviewsCollection.UpdateOne(ctx,
		bson.M{"reviewid": reviewID, "userid": userID},
		bson.M{"$set": updates})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	var review models.Review
	if err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewid": reviewID}).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch updated review")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, review, "Review updated successfully")
}

// DELETE /api/v1/review/delete-review/:reviewId — author or admin.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	reviewID := ps.ByName("reviewId")

	filter := bson.M{"reviewid": reviewID}
	role := utils.GetRoleFromRequest(r)
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		filter["userid"] = userID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.ReviewsCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, nil, "Review deleted successfully")
}
