package cart

import (
	"testing"

	"bazaar/models"
)

func TestRecomputeTotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Quantity: 2, Price: 10.5},
		{ProductID: "p2", Quantity: 1, Price: 99},
	}
	if got := RecomputeTotal(items); got != 120 {
		t.Fatalf("expected total 120, got %v", got)
	}
	if got := RecomputeTotal(nil); got != 0 {
		t.Fatalf("expected empty total 0, got %v", got)
	}
}

func TestAddThenRemoveRestoresTotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Quantity: 3, Price: 25},
	}
	before := RecomputeTotal(items)

	items = addItem(items, "p2", 49.99, 1)
	if RecomputeTotal(items) == before {
		t.Fatal("total should change after adding a product")
	}

	items, found := removeOne(items, "p2")
	if !found {
		t.Fatal("expected p2 to be found in cart")
	}
	if got := RecomputeTotal(items); got != before {
		t.Fatalf("total after add+remove = %v, want %v", got, before)
	}
}

func TestAddItemMergesQuantity(t *testing.T) {
	items := addItem(nil, "p1", 10, 2)
	items = addItem(items, "p1", 10, 3)

	if len(items) != 1 {
		t.Fatalf("expected one line item, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", items[0].Quantity)
	}
}

func TestRemoveOneDropsLineAtZero(t *testing.T) {
	items := addItem(nil, "p1", 10, 1)
	items, found := removeOne(items, "p1")
	if !found {
		t.Fatal("expected p1 to be found")
	}
	if len(items) != 0 {
		t.Fatalf("expected empty items, got %d lines", len(items))
	}
}

func TestRemoveAllClearsLine(t *testing.T) {
	items := addItem(nil, "p1", 10, 7)
	items = addItem(items, "p2", 5, 1)

	items, found := removeAll(items, "p1")
	if !found {
		t.Fatal("expected p1 to be found")
	}
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("expected only p2 to remain, got %+v", items)
	}

	if _, found := removeAll(items, "missing"); found {
		t.Fatal("removing an absent product should report not found")
	}
}
