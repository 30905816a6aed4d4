package models

import (
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// MaxEventImages is the hard cap on images attached to a single event.
const MaxEventImages = 5

func IsValidVisibility(v Visibility) bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// NormalizeVisibility maps an unset or unknown visibility to public,
// matching how events without an explicit visibility are persisted.
func NormalizeVisibility(v Visibility) Visibility {
	if v == VisibilityPrivate {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

type Event struct {
	ID              uuid.UUID   `json:"id"`
	CreatorID       uuid.UUID   `json:"creator_id"`
	CreatorUsername string      `json:"creator_username,omitempty"`
	Visibility      Visibility  `json:"visibility"`
	Location        string      `json:"location"`
	Time            time.Time   `json:"time"`
	Description     string      `json:"description"`
	ImageIDs        []uuid.UUID `json:"image_ids,omitempty"`
	JoinerIDs       []uuid.UUID `json:"joiner_ids,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

type CreateEventParams struct {
	CreatorID   uuid.UUID
	Visibility  Visibility
	Location    string
	Time        time.Time
	Description string
}

// CanView decides read access for a single event. It is total and
// side-effect-free: the creator always sees their own events, public
// events are visible to anyone (including an absent requester, id
// uuid.Nil), and private events only to confirmed friends of the creator.
func CanView(event *Event, requesterID uuid.UUID, confirmedFriendIDs map[uuid.UUID]struct{}) bool {
	if event == nil {
		return false
	}
	if requesterID != uuid.Nil && event.CreatorID == requesterID {
		return true
	}
	if event.Visibility == VisibilityPublic {
		return true
	}
	_, ok := confirmedFriendIDs[event.CreatorID]
	return ok
}
