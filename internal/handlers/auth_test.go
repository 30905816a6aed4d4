package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/s-brown01/Doin-sub000/internal/models"
	"github.com/s-brown01/Doin-sub000/internal/services"
	"github.com/s-brown01/Doin-sub000/internal/testutil"
)

func testAuthService() *services.AuthService {
	return services.NewAuthService("test-secret", time.Hour)
}

func TestRegister_ValidatesInput(t *testing.T) {
	handler := NewAuthHandler(&fakeUserService{}, &fakeImageService{}, testAuthService())

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{name: "short username", payload: map[string]string{"username": "ab", "password": "long-enough"}},
		{name: "blank username", payload: map[string]string{"username": "   ", "password": "long-enough"}},
		{name: "short password", payload: map[string]string{"username": "alice", "password": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewTestRequestWithJSON(t, http.MethodPost, "/api/auth/register", tt.payload)
			rec := httptest.NewRecorder()
			handler.Register(rec, req)
			testutil.AssertStatusCode(t, rec, http.StatusBadRequest)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	userService := &fakeUserService{
		CreateFunc: func(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
			return nil, services.ErrUsernameAlreadyExists
		},
	}
	handler := NewAuthHandler(userService, &fakeImageService{}, testAuthService())

	req := testutil.NewTestRequestWithJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "password": "long-enough",
	})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	testutil.AssertStatusCode(t, rec, http.StatusConflict)
}

func TestRegister_CreatesUserWithAvatar(t *testing.T) {
	userID := testutil.RandomUUID()
	var avatarAssigned bool
	userService := &fakeUserService{
		CreateFunc: func(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
			if params.PasswordHash == "long-enough" {
				t.Fatal("password stored in the clear")
			}
			return &models.User{ID: userID, Username: params.Username}, nil
		},
		SetProfilePictureFunc: func(ctx context.Context, gotUserID, imageID uuid.UUID) error {
			if gotUserID != userID {
				t.Fatalf("unexpected user id: %s", gotUserID)
			}
			avatarAssigned = true
			return nil
		},
	}
	imageService := &fakeImageService{
		SaveFunc: func(ctx context.Context, upload models.ImageUpload) (uuid.UUID, error) {
			if upload.ContentType != "image/png" || len(upload.Data) == 0 {
				t.Fatalf("unexpected avatar upload: %+v", upload)
			}
			return testutil.RandomUUID(), nil
		},
	}
	handler := NewAuthHandler(userService, imageService, testAuthService())

	req := testutil.NewTestRequestWithJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "password": "long-enough",
	})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	testutil.AssertStatusCode(t, rec, http.StatusCreated)
	if !avatarAssigned {
		t.Fatal("expected avatar to be assigned")
	}
	parsed := testutil.ParseJSONResponse(t, rec.Body.Bytes())
	if parsed["token"] == "" || parsed["token"] == nil {
		t.Fatal("expected token in response")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth := testAuthService()
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userService := &fakeUserService{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if username != "alice" {
				return nil, services.ErrUserNotFound
			}
			return &models.User{ID: testutil.RandomUUID(), Username: "alice", PasswordHash: hash}, nil
		},
	}
	handler := NewAuthHandler(userService, &fakeImageService{}, auth)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{name: "unknown user", payload: map[string]string{"username": "nobody", "password": "correct horse"}},
		{name: "wrong password", payload: map[string]string{"username": "alice", "password": "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewTestRequestWithJSON(t, http.MethodPost, "/api/auth/login", tt.payload)
			rec := httptest.NewRecorder()
			handler.Login(rec, req)
			testutil.AssertStatusCode(t, rec, http.StatusUnauthorized)
		})
	}
}

func TestLogin_IssuesUsableToken(t *testing.T) {
	auth := testAuthService()
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	userID := testutil.RandomUUID()

	userService := &fakeUserService{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: userID, Username: "alice", PasswordHash: hash}, nil
		},
	}
	handler := NewAuthHandler(userService, &fakeImageService{}, auth)

	req := testutil.NewTestRequestWithJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice", "password": "correct horse",
	})
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	testutil.AssertStatusCode(t, rec, http.StatusOK)
	parsed := testutil.ParseJSONResponse(t, rec.Body.Bytes())
	token, _ := parsed["token"].(string)
	parsedID, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("expected usable token: %v", err)
	}
	if parsedID != userID {
		t.Fatalf("token carries %s, want %s", parsedID, userID)
	}
}
