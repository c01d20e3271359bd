package products

import (
	"net/url"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildSearchFilterPriceBounds(t *testing.T) {
	q := url.Values{}
	q.Set("minPrice", "100")
	q.Set("maxPrice", "500.5")

	filter := buildSearchFilter(q)

	price, ok := filter["price"].(bson.M)
	if !ok {
		t.Fatalf("expected price filter, got %+v", filter)
	}
	if price["$gte"] != 100.0 {
		t.Fatalf("expected $gte 100, got %v", price["$gte"])
	}
	if price["$lte"] != 500.5 {
		t.Fatalf("expected $lte 500.5, got %v", price["$lte"])
	}
}

func TestBuildSearchFilterEmptyQuery(t *testing.T) {
	filter := buildSearchFilter(url.Values{})
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %+v", filter)
	}
}

func TestBuildSearchFilterCategoryAndBrand(t *testing.T) {
	q := url.Values{}
	q.Set("category", "cat123")
	q.Set("brand", "Acme")

	filter := buildSearchFilter(q)
	if filter["categoryid"] != "cat123" {
		t.Fatalf("expected categoryid filter, got %+v", filter)
	}
	if filter["brand"] != "Acme" {
		t.Fatalf("expected brand filter, got %+v", filter)
	}
}

func TestSortOptionsPriceDesc(t *testing.T) {
	sort, ok := sortOptions["price:desc"]
	if !ok {
		t.Fatal("price:desc sort option missing")
	}
	if sort[0].Key != "price" || sort[0].Value != -1 {
		t.Fatalf("expected descending price sort, got %+v", sort)
	}
}
