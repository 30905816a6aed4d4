package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/s-brown01/Doin-sub000/internal/models"
)

// Handler-facing service interfaces. Handlers depend on these so tests can
// substitute fakes without a database.

type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SetProfilePicture(ctx context.Context, userID, imageID uuid.UUID) error
}

type FriendServiceInterface interface {
	AddFriend(ctx context.Context, requesterUsername, targetUsername string) (models.ValidateResult, error)
	ConfirmFriend(ctx context.Context, confirmerUsername, requesterUsername string) (models.ValidateResult, error)
	RemoveFriend(ctx context.Context, username, friendUsername string) (models.ValidateResult, error)
	GetFriends(ctx context.Context, username string) ([]models.FriendshipView, error)
	GetFriendRequests(ctx context.Context, username string) ([]models.FriendshipView, error)
	GetFriendsOfFriends(ctx context.Context, username string) ([]models.FriendshipView, error)
	GetFriendshipStatus(ctx context.Context, viewerUsername, targetUsername string) (models.FriendshipStatus, error)
	SearchUsers(ctx context.Context, viewerUsername, query string) ([]models.FriendshipView, error)
}

type EventServiceInterface interface {
	Create(ctx context.Context, params models.CreateEventParams) (*models.Event, error)
	GetByID(ctx context.Context, eventID, requesterID uuid.UUID) (*models.Event, error)
	GetPublicEvents(ctx context.Context, page *models.PageRequest) (models.EventPage, error)
	GetUserEvents(ctx context.Context, creatorID, requesterID uuid.UUID, page *models.PageRequest) (models.EventPage, error)
	GetAll(ctx context.Context, requesterID uuid.UUID, page *models.PageRequest) (models.EventPage, error)
	GetUpcomingEvents(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error)
	JoinUser(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
}

type EventImageServiceInterface interface {
	AddImage(ctx context.Context, eventID, userID uuid.UUID, upload models.ImageUpload) (bool, error)
}

type ImageServiceInterface interface {
	Save(ctx context.Context, upload models.ImageUpload) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Image, error)
}

var (
	_ UserServiceInterface       = (*UserService)(nil)
	_ FriendServiceInterface     = (*FriendService)(nil)
	_ EventServiceInterface      = (*EventService)(nil)
	_ EventImageServiceInterface = (*EventImageService)(nil)
	_ ImageServiceInterface      = (*ImageService)(nil)
)
