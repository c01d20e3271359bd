package products

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"bazaar/db"
	"bazaar/models"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildSearchFilter translates listing query params into a mongo filter.
func buildSearchFilter(q url.Values) bson.M {
	filter := bson.M{}

	if name := q.Get("name"); name != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: name, Options: "i"}}
	}
	if category := q.Get("category"); category != "" {
		filter["categoryid"] = category
	}
	if brand := q.Get("brand"); brand != "" {
		filter["brand"] = brand
	}

	price := bson.M{}
	if min := q.Get("minPrice"); min != "" {
		price["$gte"] = utils.ParseFloat(min)
	}
	if max := q.Get("maxPrice"); max != "" {
		price["$lte"] = utils.ParseFloat(max)
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}

var sortOptions = map[string]bson.D{
	"price:asc":  {{Key: "price", Value: 1}},
	"price:desc": {{Key: "price", Value: -1}},
	"createdAt":  {{Key: "created_at", Value: -1}},
}

// ratingLookupStages joins reviews and computes averageRating/reviewCount.
func ratingLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "reviews",
			"localField":   "productid",
			"foreignField": "productid",
			"as":           "productReviews",
		}},
		{"$addFields": bson.M{
			"averageRating": bson.M{"$ifNull": []any{bson.M{"$avg": "$productReviews.rating"}, 0}},
			"reviewCount":   bson.M{"$size": "$productReviews"},
		}},
		{"$project": bson.M{"productReviews": 0}},
	}
}

// GET /api/v1/product/get-all-products
func SearchProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := buildSearchFilter(r.URL.Query())
	skip, limit := utils.ParsePagination(r, 10, 100)
	sort := utils.ParseSort(r.URL.Query().Get("sortBy"), sortOptions["createdAt"], sortOptions)

	pipeline := append([]bson.M{{"$match": filter}}, ratingLookupStages()...)
	pipeline = append(pipeline,
		bson.M{"$sort": sort},
		bson.M{"$skip": skip},
		bson.M{"$limit": limit},
	)

	cursor, err := db.ProductCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Product
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading products")
		return
	}
	if results == nil {
		results = []models.Product{}
	}

	total, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not count products")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, map[string]any{
		"products":       results,
		"totalDocuments": total,
	}, "Products fetched successfully")
}
