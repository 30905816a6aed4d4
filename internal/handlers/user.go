package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/s-brown01/Doin-sub000/internal/middleware"
	"github.com/s-brown01/Doin-sub000/internal/services"
)

type UserHandler struct {
	userService  services.UserServiceInterface
	imageService services.ImageServiceInterface
}

func NewUserHandler(userService services.UserServiceInterface, imageService services.ImageServiceInterface) *UserHandler {
	return &UserHandler{userService: userService, imageService: imageService}
}

type ProfilePictureResponse struct {
	ImageID uuid.UUID `json:"image_id"`
}

// UpdateProfilePicture stores an uploaded image and points the
// authenticated user's profile at it.
func (h *UserHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())
	if userID == uuid.Nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	upload, ok := readImageUpload(w, r)
	if !ok {
		return
	}

	imageID, err := h.imageService.Save(r.Context(), upload)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	if err := h.userService.SetProfilePicture(r.Context(), userID, imageID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Error updating profile picture: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, ProfilePictureResponse{ImageID: imageID})
}
