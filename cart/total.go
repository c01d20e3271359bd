package cart

import "bazaar/models"

// RecomputeTotal derives the cart total from its line items. The total is
// never carried incrementally, so retried or interleaved mutations cannot
// drift it.
func RecomputeTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// addItem merges a product into the line items, incrementing quantity when
// the product is already present.
func addItem(items []models.CartItem, productID string, price float64, quantity int) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, models.CartItem{ProductID: productID, Quantity: quantity, Price: price})
}

// removeOne decrements a product's quantity, dropping the line when it
// reaches zero. Reports whether the product was present.
func removeOne(items []models.CartItem, productID string) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity--
			if items[i].Quantity <= 0 {
				return append(items[:i], items[i+1:]...), true
			}
			return items, true
		}
	}
	return items, false
}

// removeAll drops the whole line for a product. Reports whether it was present.
func removeAll(items []models.CartItem, productID string) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID == productID {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
