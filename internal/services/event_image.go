package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/s-brown01/Doin-sub000/internal/logging"
	"github.com/s-brown01/Doin-sub000/internal/models"
)

// EventImageService attaches uploaded images to events under the per-event
// cap. The whole check-and-attach runs in one transaction holding the
// event row, so concurrent uploads cannot overshoot the cap.
type EventImageService struct {
	db DB
}

func NewEventImageService(db DB) *EventImageService {
	return &EventImageService{db: db}
}

// AddImage validates and attaches an upload to an event. It reports false
// without error for every expected rejection: unknown event, uploader not
// a participant, empty or non-image payload, oversized payload, or an
// event already at the image cap.
func (s *EventImageService) AddImage(ctx context.Context, eventID, userID uuid.UUID, upload models.ImageUpload) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin add image transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	// Holding the event row serializes concurrent uploads to it.
	var creatorID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT creator_id FROM events WHERE id = $1 FOR UPDATE`, eventID,
	).Scan(&creatorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lock event: %w", err)
	}

	if creatorID != userID {
		var joined bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM event_joiners WHERE event_id = $1 AND user_id = $2)`,
			eventID, userID,
		).Scan(&joined)
		if err != nil {
			return false, fmt.Errorf("check event participant: %w", err)
		}
		if !joined {
			return false, nil
		}
	}

	if upload.Empty() || !upload.IsImage() || upload.TooLarge() {
		return false, nil
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_images WHERE event_id = $1`, eventID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count event images: %w", err)
	}
	if count >= models.MaxEventImages {
		return false, nil
	}

	var imageID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO images (name, content_type, data) VALUES ($1, $2, $3) RETURNING id`,
		upload.Filename, upload.ContentType, upload.Data,
	).Scan(&imageID)
	if err != nil {
		return false, fmt.Errorf("insert image: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO event_images (event_id, image_id, position) VALUES ($1, $2, $3)`,
		eventID, imageID, count,
	)
	if err != nil {
		return false, fmt.Errorf("attach image: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit add image: %w", err)
	}
	committed = true

	logging.Debug("Image attached to event", map[string]interface{}{
		"event_id": eventID.String(),
		"image_id": imageID.String(),
	})
	return true, nil
}
