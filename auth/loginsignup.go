package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"bazaar/db"
	"bazaar/models"
	"bazaar/rdx"
	"bazaar/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const avatarDir = "./static/userpic"

func registerHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("fullname"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")
	phone := strings.TrimSpace(r.FormValue("phone"))

	if fullName == "" || email == "" || password == "" || phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if len(password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Check if user already exists
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "User already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
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
		log.Printf("Failed to save avatar: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to store avatar")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for %s: %v", email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	role := strings.ToLower(r.FormValue("role"))
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		role = models.RoleUser
	}

	user := models.User{
		UserID:      "u" + utils.GenerateID(10),
		FullName:    fullName,
		Email:       email,
		Password:    string(hashedPassword),
		PhoneNumber: phone,
		Avatar:      "/static/userpic/" + avatar,
		Role:        role,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "User already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if err := rdx.RdxSet("users:"+user.UserID, user.Email); err != nil {
		log.Printf("Failed to cache user: %v", err)
	}

	utils.SendEnvelope(w, http.StatusCreated, user, "User registered successfully")
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var storedUser models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(input.Email)}).Decode(&storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	accessToken, err := generateAccessToken(storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}
	hashedRefresh := hashToken(refreshToken)

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{
			"refresh_token":  hashedRefresh,
			"refresh_expiry": time.Now().Add(refreshTokenTTL),
			"last_login":     time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store refresh token")
		return
	}

	if err := rdx.RdxHset("sessions", storedUser.UserID, accessToken); err != nil {
		log.Printf("Redis session storage failed: %v", err)
	}

	setAuthCookies(w, accessToken, refreshToken)
	storedUser.Password = ""
	utils.SendEnvelope(w, http.StatusOK, map[string]any{
		"user":         storedUser,
		"token":        accessToken,
		"refreshToken": refreshToken,
	}, "Login successful")
}

func logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$unset": bson.M{"refresh_token": 1, "refresh_expiry": 1}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	if _, err := rdx.RdxHdel("sessions", userID); err != nil {
		log.Printf("Error removing session from Redis: %v", err)
	}

	clearAuthCookies(w)
	utils.SendEnvelope(w, http.StatusOK, nil, "User logged out successfully")
}

func refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	incoming := ""
	if c, err := r.Cookie("refreshToken"); err == nil {
		incoming = c.Value
	}
	if incoming == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			incoming = body.RefreshToken
		}
	}
	if incoming == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var storedUser models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"refresh_token": hashToken(incoming)}).Decode(&storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Refresh token is invalid")
		return
	}
	if time.Now().After(storedUser.RefreshExpiry) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Refresh token is expired")
		return
	}

	accessToken, err := generateAccessToken(storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{
			"refresh_token":  hashToken(refreshToken),
			"refresh_expiry": time.Now().Add(refreshTokenTTL),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to rotate refresh token")
		return
	}

	setAuthCookies(w, accessToken, refreshToken)
	utils.SendEnvelope(w, http.StatusOK, map[string]string{
		"token":        accessToken,
		"refreshToken": refreshToken,
	}, "Access token refreshed")
}
