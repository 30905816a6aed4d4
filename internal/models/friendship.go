package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendshipStatus string

const (
	// FriendshipStatusNotAdded means no edge exists in either direction.
	// It is never stored; absence of a row reads back as this status.
	FriendshipStatusNotAdded  FriendshipStatus = "notadded"
	FriendshipStatusPending   FriendshipStatus = "pending"
	FriendshipStatusConfirmed FriendshipStatus = "confirmed"
)

// FriendshipEdge is a directed relationship from requester to target.
// At most one edge exists per ordered (requester, target) pair and a
// requester never equals its target; both are enforced by the schema.
// A single confirmed edge in either direction is a mutual friendship.
type FriendshipEdge struct {
	ID          uuid.UUID        `json:"id"`
	RequesterID uuid.UUID        `json:"requester_id"`
	TargetID    uuid.UUID        `json:"target_id"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	ConfirmedAt *time.Time       `json:"confirmed_at,omitempty"`
}

// FriendshipView describes another user from a viewer's perspective.
type FriendshipView struct {
	ID               uuid.UUID        `json:"id"`
	Username         string           `json:"username"`
	Status           FriendshipStatus `json:"status"`
	ProfilePictureID *uuid.UUID       `json:"profile_picture_id,omitempty"`
}

// ValidateResult reports the outcome of a friendship mutation. Expected
// misuse (blank names, self-friending, duplicate requests) is a message
// here, never an error.
type ValidateResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
