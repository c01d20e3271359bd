package address

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
)

type addressInput struct {
	HouseNumber  string `json:"houseNumber"`
	Area         string `json:"area"`
	Landmark     string `json:"landmark"`
	City         string `json:"city"`
	Pincode      int    `json:"pincode"`
	State        string `json:"state"`
	MobileNumber string `json:"mobileNumber"`
}

// POST /api/v1/address/create-address
func AddAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	var input addressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if strings.TrimSpace(input.HouseNumber) == "" || strings.TrimSpace(input.Area) == "" ||
		strings.TrimSpace(input.City) == "" || strings.TrimSpace(input.State) == "" ||
		strings.TrimSpace(input.MobileNumber) == "" || input.Pincode == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !utils.ValidPincode(input.Pincode) {
		utils.RespondWithError(w, http.StatusBadRequest, "Pincode must be of 6 digits")
		return
	}

	addr := models.Address{
		AddressID:    "addr" + utils.GenerateID(12),
		UserID:       userID,
		HouseNumber:  input.HouseNumber,
		Area:         input.Area,
		Landmark:     input.Landmark,
		City:         input.City,
		Pincode:      input.Pincode,
		State:        input.State,
		MobileNumber: input.MobileNumber,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := db.AddressCollection.InsertOne(ctx, addr); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to add address")
		return
	}

	utils.SendEnvelope(w, http.StatusCreated, addr, "Address added successfully")
}

// GET /api/v1/address/get-address/:addressId
func GetAddressByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	addressID := ps.ByName("addressId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var addr models.Address
	if err := db.AddressCollection.FindOne(ctx, bson.M{"addressid": addressID}).Decode(&addr); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, addr, "Address fetched successfully")
}

// GET /api/v1/address/my-addresses
func GetAllAddressesOfUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	addresses, err := utils.FindAndDecode[models.Address](ctx, db.AddressCollection, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve addresses")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, addresses, "Addresses fetched successfully")
}

// PATCH /api/v1/address/update-address/:addressId
func UpdateAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	addressID := ps.ByName("addressId")

	var input addressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	changes := bson.M{}
	if input.HouseNumber != "" {
		changes["houseNumber"] = input.HouseNumber
	}
	if input.Area != "" {
		changes["area"] = input.Area
	}
	if input.Landmark != "" {
		changes["landmark"] = input.Landmark
	}
	if input.City != "" {
		changes["city"] = input.City
	}
	if input.State != "" {
		changes["state"] = input.State
	}
	if input.MobileNumber != "" {
		changes["mobileNumber"] = input.MobileNumber
	}
	if input.Pincode != 0 {
		if !utils.ValidPincode(input.Pincode) {
			utils.RespondWithError(w, http.StatusBadRequest, "Pincode must be of 6 digits")
			return
		}
		changes["pincode"] = input.Pincode
	}
	if len(changes) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one field is required to be updated")
		return
	}
	changes["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.AddressCollection.UpdateOne(ctx,
		bson.M{"addressid": addressID, "userid": userID},
		bson.M{"$set": changes},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update address")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}

	var addr models.Address
	if err := db.AddressCollection.FindOne(ctx, bson.M{"addressid": addressID}).Decode(&addr); err == nil {
		utils.SendEnvelope(w, http.StatusOK, addr, "Address updated successfully")
		return
	}
	utils.SendEnvelope(w, http.StatusOK, nil, "Address updated successfully")
}

// DELETE /api/v1/address/delete-address/:addressId
func DeleteAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	addressID := ps.ByName("addressId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.AddressCollection.DeleteOne(ctx, bson.M{"addressid": addressID, "userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete address")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Address may not exist")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, nil, "Address deleted successfully")
}
