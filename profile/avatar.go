package profile

import (
	"context"
	"log"
	"net/http"
	"time"

	"bazaar/db"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const avatarDir = "./static/userpic"

// PATCH /api/v1/users/update-account-avatar
func UpdateAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Avatar file is required")
		return
	}
	defer file.Close()
	if !utils.ValidateImageFileType(w, header) {
		return
	}

	avatar, err := utils.SaveImage(file, header, avatarDir)
	if err != nil {
		log.Printf("Failed to save avatar for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to store avatar")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar": "/static/userpic/" + avatar, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to update the avatar")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.SendEnvelope(w, http.StatusOK, map[string]string{"avatar": "/static/userpic/" + avatar}, "Avatar updated successfully")
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
