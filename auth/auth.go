package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"courtside/db"
	"courtside/middleware"
	"courtside/models"
	"courtside/rdx"
	"courtside/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

func signToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.UserID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.Secret())
}

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Name      string `json:"name"`
		StudentID string `json:"studentId"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Name == "" || body.StudentID == "" || body.Email == "" || len(body.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Name, studentId, email and a password of at least 8 characters are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := db.UserCollection.FindOne(ctx, bson.M{
		"$or": []bson.M{{"email": body.Email}, {"studentid": body.StudentID}},
	}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict,
			"User with this email or student ID already exists")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		UserID:    "u" + utils.GenerateID(12),
		Name:      body.Name,
		StudentID: body.StudentID,
		Email:     strings.ToLower(body.Email),
		Password:  string(hashed),
		Role:      models.RoleStudent,
		CreatedAt: time.Now().Unix(),
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict,
				"User with this email or student ID already exists")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := signToken(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"user": user, "token": token})
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(body.Email)}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := signToken(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user, "token": token})
}

// Logout parks the presented token in Redis until its natural expiry so the
// middleware rejects any replay.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	header := r.Header.Get("Authorization")
	claims, err := middleware.ValidateJWT(header)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	ttl := tokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl > 0 {
		raw := header[7:]
		if err := rdx.SetWithExpiry(r.Context(), "revoked:"+raw, "1", ttl); err != nil {
			log.Printf("token revocation failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logged out"})
}
