package auth

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"courtside/db"
	"courtside/models"
	"courtside/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxImageSize = 2 << 20 // 2 MB

var uploadDir = "static/userpic"

// SetUploadDir points profile image uploads at the configured directory.
func SetUploadDir(dir string) {
	uploadDir = dir
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadProfileImage accepts a multipart "image" field, resizes it to a
// square avatar and stores only the generated filename on the user.
func UploadProfileImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image is too large. Maximum size is 2 MB.")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.")
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not decode image")
		return
	}

	if err := utils.EnsureDir(uploadDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	filename := uuid.NewString() + ".jpg"
	avatar := imaging.Fill(img, 256, 256, imaging.Center, imaging.Lanczos)
	if err := imaging.Save(avatar, filepath.Join(uploadDir, filename)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	// Drop the previous avatar file, if any.
	var existing models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&existing); err == nil &&
		existing.ProfileImage != "" {
		_ = os.Remove(filepath.Join(uploadDir, existing.ProfileImage))
	}

	var user models.User
	err = db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"profileimage": filename}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user})
}
