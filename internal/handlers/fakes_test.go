package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/s-brown01/Doin-sub000/internal/models"
	"github.com/s-brown01/Doin-sub000/internal/services"
)

type fakeUserService struct {
	CreateFunc            func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsernameFunc     func(ctx context.Context, username string) (*models.User, error)
	SetProfilePictureFunc func(ctx context.Context, userID, imageID uuid.UUID) error
}

func (f *fakeUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	return f.CreateFunc(ctx, params)
}

func (f *fakeUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, services.ErrUserNotFound
}

func (f *fakeUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.GetByUsernameFunc(ctx, username)
}

func (f *fakeUserService) SetProfilePicture(ctx context.Context, userID, imageID uuid.UUID) error {
	if f.SetProfilePictureFunc != nil {
		return f.SetProfilePictureFunc(ctx, userID, imageID)
	}
	return nil
}

type fakeFriendService struct {
	AddFriendFunc           func(ctx context.Context, requester, target string) (models.ValidateResult, error)
	ConfirmFriendFunc       func(ctx context.Context, confirmer, requester string) (models.ValidateResult, error)
	RemoveFriendFunc        func(ctx context.Context, username, friend string) (models.ValidateResult, error)
	GetFriendsFunc          func(ctx context.Context, username string) ([]models.FriendshipView, error)
	GetFriendRequestsFunc   func(ctx context.Context, username string) ([]models.FriendshipView, error)
	GetFriendsOfFriendsFunc func(ctx context.Context, username string) ([]models.FriendshipView, error)
	GetStatusFunc           func(ctx context.Context, viewer, target string) (models.FriendshipStatus, error)
	SearchUsersFunc         func(ctx context.Context, viewer, query string) ([]models.FriendshipView, error)
}

func (f *fakeFriendService) AddFriend(ctx context.Context, requester, target string) (models.ValidateResult, error) {
	return f.AddFriendFunc(ctx, requester, target)
}

func (f *fakeFriendService) ConfirmFriend(ctx context.Context, confirmer, requester string) (models.ValidateResult, error) {
	return f.ConfirmFriendFunc(ctx, confirmer, requester)
}

func (f *fakeFriendService) RemoveFriend(ctx context.Context, username, friend string) (models.ValidateResult, error) {
	return f.RemoveFriendFunc(ctx, username, friend)
}

func (f *fakeFriendService) GetFriends(ctx context.Context, username string) ([]models.FriendshipView, error) {
	return f.GetFriendsFunc(ctx, username)
}

func (f *fakeFriendService) GetFriendRequests(ctx context.Context, username string) ([]models.FriendshipView, error) {
	return f.GetFriendRequestsFunc(ctx, username)
}

func (f *fakeFriendService) GetFriendsOfFriends(ctx context.Context, username string) ([]models.FriendshipView, error) {
	return f.GetFriendsOfFriendsFunc(ctx, username)
}

func (f *fakeFriendService) GetFriendshipStatus(ctx context.Context, viewer, target string) (models.FriendshipStatus, error) {
	return f.GetStatusFunc(ctx, viewer, target)
}

func (f *fakeFriendService) SearchUsers(ctx context.Context, viewer, query string) ([]models.FriendshipView, error) {
	return f.SearchUsersFunc(ctx, viewer, query)
}

type fakeEventService struct {
	CreateFunc            func(ctx context.Context, params models.CreateEventParams) (*models.Event, error)
	GetByIDFunc           func(ctx context.Context, eventID, requesterID uuid.UUID) (*models.Event, error)
	GetPublicEventsFunc   func(ctx context.Context, page *models.PageRequest) (models.EventPage, error)
	GetUserEventsFunc     func(ctx context.Context, creatorID, requesterID uuid.UUID, page *models.PageRequest) (models.EventPage, error)
	GetAllFunc            func(ctx context.Context, requesterID uuid.UUID, page *models.PageRequest) (models.EventPage, error)
	GetUpcomingEventsFunc func(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error)
	JoinUserFunc          func(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
}

func (f *fakeEventService) Create(ctx context.Context, params models.CreateEventParams) (*models.Event, error) {
	return f.CreateFunc(ctx, params)
}

func (f *fakeEventService) GetByID(ctx context.Context, eventID, requesterID uuid.UUID) (*models.Event, error) {
	return f.GetByIDFunc(ctx, eventID, requesterID)
}

func (f *fakeEventService) GetPublicEvents(ctx context.Context, page *models.PageRequest) (models.EventPage, error) {
	return f.GetPublicEventsFunc(ctx, page)
}

func (f *fakeEventService) GetUserEvents(ctx context.Context, creatorID, requesterID uuid.UUID, page *models.PageRequest) (models.EventPage, error) {
	return f.GetUserEventsFunc(ctx, creatorID, requesterID, page)
}

func (f *fakeEventService) GetAll(ctx context.Context, requesterID uuid.UUID, page *models.PageRequest) (models.EventPage, error) {
	return f.GetAllFunc(ctx, requesterID, page)
}

func (f *fakeEventService) GetUpcomingEvents(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error) {
	return f.GetUpcomingEventsFunc(ctx, creatorID)
}

func (f *fakeEventService) JoinUser(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	return f.JoinUserFunc(ctx, eventID, userID)
}

type fakeEventImageService struct {
	AddImageFunc func(ctx context.Context, eventID, userID uuid.UUID, upload models.ImageUpload) (bool, error)
}

func (f *fakeEventImageService) AddImage(ctx context.Context, eventID, userID uuid.UUID, upload models.ImageUpload) (bool, error) {
	return f.AddImageFunc(ctx, eventID, userID, upload)
}

type fakeImageService struct {
	SaveFunc func(ctx context.Context, upload models.ImageUpload) (uuid.UUID, error)
	GetFunc  func(ctx context.Context, id uuid.UUID) (*models.Image, error)
}

func (f *fakeImageService) Save(ctx context.Context, upload models.ImageUpload) (uuid.UUID, error) {
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, upload)
	}
	return uuid.New(), nil
}

func (f *fakeImageService) Get(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	return f.GetFunc(ctx, id)
}
