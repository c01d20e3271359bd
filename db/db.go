package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection        *mongo.Collection
	AddressCollection     *mongo.Collection
	CategoryCollection    *mongo.Collection
	ProductCollection     *mongo.Collection
	CartCollection        *mongo.Collection
	WishlistCollection    *mongo.Collection
	ReviewsCollection     *mongo.Collection
	OrdersCollection      *mongo.Collection
	PaymentsCollection    *mongo.Collection
	ShipmentsCollection   *mongo.Collection
	IdempotencyCollection *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "bazaardb"
	}

	UserCollection = Client.Database(dbName).Collection("users")
	AddressCollection = Client.Database(dbName).Collection("addresses")
	CategoryCollection = Client.Database(dbName).Collection("categories")
	ProductCollection = Client.Database(dbName).Collection("products")
	CartCollection = Client.Database(dbName).Collection("carts")
	WishlistCollection = Client.Database(dbName).Collection("wishlists")
	ReviewsCollection = Client.Database(dbName).Collection("reviews")
	OrdersCollection = Client.Database(dbName).Collection("orders")
	PaymentsCollection = Client.Database(dbName).Collection("payments")
	ShipmentsCollection = Client.Database(dbName).Collection("shipments")
	IdempotencyCollection = Client.Database(dbName).Collection("idempotency_keys")
}

// EnsureIndexes creates the unique and TTL indexes the collections rely on.
// Called once from main after the connection is up.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_email"),
	})
	if err != nil {
		return err
	}

	_, err = CategoryCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_category_name"),
	})
	if err != nil {
		return err
	}

	// One review per (owner, product)
	_, err = ReviewsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userid", Value: 1}, {Key: "productid", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_owner_product"),
	})
	if err != nil {
		return err
	}

	// One cart per user
	_, err = CartCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userid", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_cart_owner"),
	})
	if err != nil {
		return err
	}

	_, err = IdempotencyCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_key"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
		},
	})
	return err
}
