package models

import "time"

type Category struct {
	CategoryID  string    `json:"categoryid" bson:"categoryid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// MaxProductImages caps the images array on a product.
const MaxProductImages = 11

type Product struct {
	ProductID   string    `json:"productid" bson:"productid"`
	SellerID    string    `json:"sellerid" bson:"sellerid"`
	CategoryID  string    `json:"categoryid" bson:"categoryid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	Brand       string    `json:"brand" bson:"brand"`
	Images      []string  `json:"images" bson:"images"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`

	// Populated by the search aggregation, never stored.
	AverageRating float64 `json:"averageRating,omitempty" bson:"averageRating,omitempty"`
	ReviewCount   int     `json:"reviewCount,omitempty" bson:"reviewCount,omitempty"`
}

type CartItem struct {
	ProductID string  `json:"productid" bson:"productid"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

type Cart struct {
	UserID     string     `json:"userid" bson:"userid"`
	Items      []CartItem `json:"items" bson:"items"`
	TotalPrice float64    `json:"totalPrice" bson:"totalPrice"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

type Wishlist struct {
	UserID     string    `json:"userid" bson:"userid"`
	ProductIDs []string  `json:"productids" bson:"productids"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

type Review struct {
	ReviewID  string    `json:"reviewid" bson:"reviewid"`
	UserID    string    `json:"userid" bson:"userid"`
	ProductID string    `json:"productid" bson:"productid"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
