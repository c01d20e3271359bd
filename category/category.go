package category

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"bazaar/db"
	"bazaar/models"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/v1/category/create-category — admin only
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" || input.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Both fields are required")
		return
	}

	cat := models.Category{
		CategoryID:  "cat" + utils.GenerateID(12),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := db.CategoryCollection.InsertOne(ctx, cat); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Category already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to create category")
		return
	}

	utils.SendEnvelope(w, http.StatusCreated, cat, "Category created successfully")
}

// GET /api/v1/category/all-categories
func GetAllCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "name", Value: 1}})

	categories, err := utils.FindAndDecode[models.Category](ctx, db.CategoryCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve categories")
		return
	}

	total, err := db.CategoryCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not count categories")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, map[string]any{
		"categories":     categories,
		"totalDocuments": total,
	}, "All categories fetched successfully")
}

// GET /api/v1/category/get-category/:categoryId
func GetCategoryByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	categoryID := ps.ByName("categoryId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var cat models.Category
	if err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryid": categoryID}).Decode(&cat); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No category found with the given id")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, cat, "Category fetched successfully")
}

// PATCH /api/v1/category/update-category/:categoryId — admin only
func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	categoryID := ps.ByName("categoryId")

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
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
	if len(changes) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one field is required to change")
		return
	}
	changes["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.CategoryCollection.UpdateOne(ctx, bson.M{"categoryid": categoryID}, bson.M{"$set": changes})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Category name already in use")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to update the category")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category may not exist")
		return
	}

	var cat models.Category
	if err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryid": categoryID}).Decode(&cat); err == nil {
		utils.SendEnvelope(w, http.StatusOK, cat, "Category updated successfully")
		return
	}
	utils.SendEnvelope(w, http.StatusOK, nil, "Category updated successfully")
}

// DELETE /api/v1/category/delete-category/:categoryId — admin only
func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	categoryID := ps.ByName("categoryId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.CategoryCollection.DeleteOne(ctx, bson.M{"categoryid": categoryID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category may not exist")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, nil, "Category deleted successfully")
}
