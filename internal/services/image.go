package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/s-brown01/Doin-sub000/internal/models"
)

var (
	ErrImageNotFound = errors.New("image not found")
	ErrEmptyImage    = errors.New("image data is empty")
	ErrNotImage      = errors.New("file is not an image")
	ErrImageTooLarge = errors.New("image exceeds the size limit")
)

// ImageService stores standalone images, such as profile pictures. Event
// image uploads go through EventImageService instead so the per-event cap
// holds.
type ImageService struct {
	db DBConn
}

func NewImageService(db DBConn) *ImageService {
	return &ImageService{db: db}
}

// Save validates and stores an upload, returning the stored image id.
func (s *ImageService) Save(ctx context.Context, upload models.ImageUpload) (uuid.UUID, error) {
	if upload.Empty() {
		return uuid.Nil, ErrEmptyImage
	}
	if !upload.IsImage() {
		return uuid.Nil, ErrNotImage
	}
	if upload.TooLarge() {
		return uuid.Nil, ErrImageTooLarge
	}

	var id uuid.UUID
	err := s.db.QueryRow(ctx,
		`INSERT INTO images (name, content_type, data) VALUES ($1, $2, $3) RETURNING id`,
		upload.Filename, upload.ContentType, upload.Data,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert image: %w", err)
	}
	return id, nil
}

// Get loads a stored image by id.
func (s *ImageService) Get(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	image := &models.Image{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, content_type, data, created_at FROM images WHERE id = $1`,
		id,
	).Scan(&image.ID, &image.Name, &image.ContentType, &image.Data, &image.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	return image, nil
}
