package profile

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

// GET /api/v1/users/current-user
func GetCurrentUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	user.Password = ""

	utils.SendEnvelope(w, http.StatusOK, user, "User details fetched successfully")
}

// PATCH /api/v1/users/update-password
func UpdatePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	var input struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.OldPassword == "" || input.NewPassword == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Old and new password are required")
		return
	}
	if len(input.NewPassword) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if !checkPassword(user.Password, input.OldPassword) {
		utils.RespondWithError(w, http.StatusBadRequest, "Old password is incorrect")
		return
	}

	hashed, err := hashPassword(input.NewPassword)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"password": hashed, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, nil, "Password updated successfully")
}

// PATCH /api/v1/users/update-account-details
func UpdateAccountDetails(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	var input struct {
		FullName    string `json:"fullname"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	changes := bson.M{}
	if v := strings.TrimSpace(input.FullName); v != "" {
		changes["fullname"] = v
	}
	if v := strings.TrimSpace(input.PhoneNumber); v != "" {
		changes["phone_number"] = v
	}
	if len(changes) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one field is required for the update")
		return
	}
	changes["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": changes})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to update the details")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err == nil {
		user.Password = ""
		utils.SendEnvelope(w, http.StatusOK, user, "Details updated successfully")
		return
	}
	utils.SendEnvelope(w, http.StatusOK, nil, "Details updated successfully")
}

// PATCH /api/v1/users/change-role/:userid — superadmin only
func ChangeRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	targetID := ps.ByName("userid")

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	role := strings.ToLower(input.Role)
	if role != models.RoleUser && role != models.RoleAdmin && role != models.RoleSuperAdmin {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": targetID},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to change role")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, map[string]string{"userid": targetID, "role": role}, "Role updated successfully")
}
