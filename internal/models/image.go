package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxImageBytes is the inclusive upper bound on an uploaded image payload.
const MaxImageBytes = 10 << 20

type Image struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImageUpload is an inbound file as the transport layer declared it.
// The declared content type is trusted; bytes are never sniffed.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u ImageUpload) IsImage() bool {
	return strings.HasPrefix(u.ContentType, "image/")
}

func (u ImageUpload) Empty() bool {
	return len(u.Data) == 0
}

func (u ImageUpload) TooLarge() bool {
	return len(u.Data) > MaxImageBytes
}
