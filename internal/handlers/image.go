package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/s-brown01/Doin-sub000/internal/models"
	"github.com/s-brown01/Doin-sub000/internal/services"
)

type ImageHandler struct {
	imageService services.ImageServiceInterface
}

func NewImageHandler(imageService services.ImageServiceInterface) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

type ImageUploadResponse struct {
	ID uuid.UUID `json:"id"`
}

// Upload stores a standalone multipart image and returns its id.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	upload, ok := readImageUpload(w, r)
	if !ok {
		return
	}

	imageID, err := h.imageService.Save(r.Context(), upload)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ImageUploadResponse{ID: imageID})
}

// readImageUpload pulls the "file" part out of a multipart request. On
// failure it writes the 400 response itself and returns ok=false.
func readImageUpload(w http.ResponseWriter, r *http.Request) (models.ImageUpload, bool) {
	// One image plus form overhead; anything bigger fails the read.
	r.Body = http.MaxBytesReader(w, r.Body, models.MaxImageBytes+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Image file is required")
		return models.ImageUpload{}, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read image file")
		return models.ImageUpload{}, false
	}

	return models.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, true
}

// writeUploadError maps image validation failures to 400s.
func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyImage):
		writeError(w, http.StatusBadRequest, "Image file is empty")
	case errors.Is(err, services.ErrNotImage):
		writeError(w, http.StatusBadRequest, "File is not an image")
	case errors.Is(err, services.ErrImageTooLarge):
		writeError(w, http.StatusBadRequest, "Image is too large")
	default:
		log.Printf("Error saving image: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Get serves the raw image bytes with their stored content type.
func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	imageID, err := parseUUIDPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid image ID")
		return
	}

	image, err := h.imageService.Get(r.Context(), imageID)
	if errors.Is(err, services.ErrImageNotFound) {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	if err != nil {
		log.Printf("Error loading image: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image.Data)
}
