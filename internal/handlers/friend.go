package handlers

import (
	"log"
	"net/http"

	"github.com/s-brown01/Doin-sub000/internal/middleware"
	"github.com/s-brown01/Doin-sub000/internal/models"
	"github.com/s-brown01/Doin-sub000/internal/services"
)

type FriendHandler struct {
	friendService services.FriendServiceInterface
	userService   services.UserServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface, userService services.UserServiceInterface) *FriendHandler {
	return &FriendHandler{friendService: friendService, userService: userService}
}

type FriendListResponse struct {
	Friends []models.FriendshipView `json:"friends"`
}

type FriendshipStatusResponse struct {
	Status models.FriendshipStatus `json:"status"`
}

// currentUser resolves the authenticated user from the request context.
func currentUser(r *http.Request, users services.UserServiceInterface) (*models.User, error) {
	userID := middleware.UserIDFrom(r.Context())
	return users.GetByID(r.Context(), userID)
}

func (h *FriendHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.friendService.AddFriend(r.Context(), user.Username, r.PathValue("username"))
	if err != nil {
		log.Printf("Error adding friend: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *FriendHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.friendService.ConfirmFriend(r.Context(), user.Username, r.PathValue("username"))
	if err != nil {
		log.Printf("Error confirming friend: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.friendService.RemoveFriend(r.Context(), user.Username, r.PathValue("username"))
	if err != nil {
		log.Printf("Error removing friend: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friends, err := h.friendService.GetFriends(r.Context(), user.Username)
	if err != nil {
		log.Printf("Error listing friends: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, FriendListResponse{Friends: friends})
}

func (h *FriendHandler) Requests(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requests, err := h.friendService.GetFriendRequests(r.Context(), user.Username)
	if err != nil {
		log.Printf("Error listing friend requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, FriendListResponse{Friends: requests})
}

// Suggestions lists friends of friends the user has not added yet.
func (h *FriendHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	suggestions, err := h.friendService.GetFriendsOfFriends(r.Context(), user.Username)
	if err != nil {
		log.Printf("Error listing friend suggestions: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, FriendListResponse{Friends: suggestions})
}

func (h *FriendHandler) Status(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	status, err := h.friendService.GetFriendshipStatus(r.Context(), user.Username, r.PathValue("username"))
	if err != nil {
		log.Printf("Error reading friendship status: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, FriendshipStatusResponse{Status: status})
}

func (h *FriendHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	found, err := h.friendService.SearchUsers(r.Context(), user.Username, r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("Error searching users: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, FriendListResponse{Friends: found})
}
