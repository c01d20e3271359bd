package utils

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// ParsePagination reads page/limit query params into a mongo skip/limit pair.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return (page - 1) * limit, limit
}

// ParseSort maps a sort query value onto a bson sort document. Unknown values
// fall back to the default.
func ParseSort(value string, fallback bson.D, allowed map[string]bson.D) bson.D {
	if sort, ok := allowed[value]; ok {
		return sort
	}
	return fallback
}
