package models

import "time"

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	FullName      string    `json:"fullname" bson:"fullname"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"`
	PhoneNumber   string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Avatar        string    `json:"avatar" bson:"avatar"`
	Role          string    `json:"role" bson:"role"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

type Address struct {
	AddressID    string    `json:"addressid" bson:"addressid"`
	UserID       string    `json:"userid" bson:"userid"`
	HouseNumber  string    `json:"houseNumber" bson:"houseNumber"`
	Area         string    `json:"area" bson:"area"`
	Landmark     string    `json:"landmark,omitempty" bson:"landmark,omitempty"`
	City         string    `json:"city" bson:"city"`
	Pincode      int       `json:"pincode" bson:"pincode"`
	State        string    `json:"state" bson:"state"`
	MobileNumber string    `json:"mobileNumber" bson:"mobileNumber"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
