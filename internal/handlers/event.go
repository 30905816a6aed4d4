package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/s-brown01/Doin-sub000/internal/middleware"
	"github.com/s-brown01/Doin-sub000/internal/models"
	"github.com/s-brown01/Doin-sub000/internal/services"
)

type EventHandler struct {
	eventService      services.EventServiceInterface
	eventImageService services.EventImageServiceInterface
}

func NewEventHandler(eventService services.EventServiceInterface, eventImageService services.EventImageServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService, eventImageService: eventImageService}
}

type CreateEventRequest struct {
	Visibility  string    `json:"visibility"`
	Location    string    `json:"location"`
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
}

type EventListResponse struct {
	Events []models.Event `json:"events"`
}

type JoinResponse struct {
	Joined bool `json:"joined"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Time.IsZero() {
		writeError(w, http.StatusBadRequest, "Event time is required")
		return
	}

	event, err := h.eventService.Create(r.Context(), models.CreateEventParams{
		CreatorID:   userID,
		Visibility:  models.Visibility(req.Visibility),
		Location:    req.Location,
		Time:        req.Time,
		Description: req.Description,
	})
	if err != nil {
		log.Printf("Error creating event: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// Feed returns the requester's event feed: public events plus private
// events from confirmed friends. Anonymous requests see public only.
func (h *EventHandler) Feed(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pagination")
		return
	}

	feed, err := h.eventService.GetAll(r.Context(), middleware.UserIDFrom(r.Context()), page)
	if err != nil {
		log.Printf("Error loading feed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *EventHandler) Public(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pagination")
		return
	}

	feed, err := h.eventService.GetPublicEvents(r.Context(), page)
	if err != nil {
		log.Printf("Error loading public events: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *EventHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())

	events, err := h.eventService.GetUpcomingEvents(r.Context(), userID)
	if err != nil {
		log.Printf("Error loading upcoming events: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, EventListResponse{Events: events})
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseUUIDPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := h.eventService.GetByID(r.Context(), eventID, middleware.UserIDFrom(r.Context()))
	if err != nil {
		log.Printf("Error loading event: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	// Hidden and missing events are indistinguishable on purpose.
	if event == nil {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) UserEvents(w http.ResponseWriter, r *http.Request) {
	creatorID, err := parseUUIDPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	page, err := parsePageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pagination")
		return
	}

	feed, err := h.eventService.GetUserEvents(r.Context(), creatorID, middleware.UserIDFrom(r.Context()), page)
	if err != nil {
		log.Printf("Error loading user events: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseUUIDPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	joined, err := h.eventService.JoinUser(r.Context(), eventID, middleware.UserIDFrom(r.Context()))
	if err != nil {
		log.Printf("Error joining event: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, JoinResponse{Joined: joined})
}

// AddImage accepts one multipart file upload for an event.
func (h *EventHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseUUIDPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	upload, ok := readImageUpload(w, r)
	if !ok {
		return
	}

	added, err := h.eventImageService.AddImage(r.Context(), eventID, middleware.UserIDFrom(r.Context()), upload)
	if err != nil {
		log.Printf("Error adding event image: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !added {
		writeError(w, http.StatusBadRequest, "Image was not accepted")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"added": true})
}
