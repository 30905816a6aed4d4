package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/s-brown01/Doin-sub000/internal/models"
	"github.com/s-brown01/Doin-sub000/internal/services"
)

type AuthHandler struct {
	userService  services.UserServiceInterface
	imageService services.ImageServiceInterface
	authService  *services.AuthService
}

func NewAuthHandler(userService services.UserServiceInterface, imageService services.ImageServiceInterface, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		imageService: imageService,
		authService:  authService,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < 3 || len(username) > 50 {
		writeError(w, http.StatusBadRequest, "Username must be between 3 and 50 characters")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.userService.Create(r.Context(), models.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
	})
	if errors.Is(err, services.ErrUsernameAlreadyExists) {
		writeError(w, http.StatusConflict, "Username already taken")
		return
	}
	if err != nil {
		log.Printf("Error creating user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.assignDefaultAvatar(r, user)

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

// assignDefaultAvatar renders and stores the generated profile picture.
// Registration succeeds without one, so failures only log.
func (h *AuthHandler) assignDefaultAvatar(r *http.Request, user *models.User) {
	avatar, err := services.RenderAvatarPNG(user.Username)
	if err != nil {
		log.Printf("Error rendering avatar for %s: %v", user.Username, err)
		return
	}
	imageID, err := h.imageService.Save(r.Context(), models.ImageUpload{
		Filename:    user.Username + ".png",
		ContentType: "image/png",
		Data:        avatar,
	})
	if err != nil {
		log.Printf("Error saving avatar for %s: %v", user.Username, err)
		return
	}
	if err := h.userService.SetProfilePicture(r.Context(), user.ID, imageID); err != nil {
		log.Printf("Error assigning avatar for %s: %v", user.Username, err)
		return
	}
	user.ProfilePictureID = &imageID
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.GetByUsername(r.Context(), req.Username)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		log.Printf("Error loading user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !h.authService.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}
