package models

import "time"

const (
	PaymentPending  = "Pending"
	PaymentCaptured = "Captured"
	PaymentFailed   = "Failed"

	DeliveryPending   = "Pending"
	DeliveryShipped   = "Shipped"
	DeliveryDelivered = "Delivered"
)

type Order struct {
	OrderID        string     `json:"orderid" bson:"orderid"`
	BuyerID        string     `json:"buyerid" bson:"buyerid"`
	Items          []CartItem `json:"items" bson:"items"`
	TotalPrice     float64    `json:"totalPrice" bson:"totalPrice"`
	AddressID      string     `json:"addressid" bson:"addressid"`
	PaymentStatus  string     `json:"paymentStatus" bson:"paymentStatus"`
	DeliveryStatus string     `json:"deliveryStatus" bson:"deliveryStatus"`
	GatewayOrderID string     `json:"gatewayOrderId,omitempty" bson:"gatewayOrderId,omitempty"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
}

type Payment struct {
	PaymentID         string    `json:"paymentid" bson:"paymentid"`
	UserID            string    `json:"userid" bson:"userid"`
	OrderID           string    `json:"orderid" bson:"orderid"`
	RazorpayOrderID   string    `json:"razorpayOrderId" bson:"razorpayOrderId"`
	RazorpayPaymentID string    `json:"razorpayPaymentId" bson:"razorpayPaymentId"`
	PaymentMethod     string    `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus     string    `json:"paymentStatus" bson:"paymentStatus"`
	TransactionID     string    `json:"transactionId" bson:"transactionId"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}

type Shipment struct {
	ShipmentID     string    `json:"shipmentid" bson:"shipmentid"`
	OrderID        string    `json:"orderid" bson:"orderid"`
	TrackingNumber string    `json:"trackingNumber" bson:"trackingNumber"`
	Carrier        string    `json:"carrier" bson:"carrier"`
	Status         string    `json:"status" bson:"status"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}
