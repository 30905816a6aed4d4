package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/s-brown01/Doin-sub000/internal/models"
)

func TestImageSave_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		upload  models.ImageUpload
		wantErr error
	}{
		{
			name:    "empty",
			upload:  models.ImageUpload{Filename: "x.png", ContentType: "image/png"},
			wantErr: ErrEmptyImage,
		},
		{
			// Empty wins over content type when both are wrong.
			name:    "empty text file",
			upload:  models.ImageUpload{Filename: "x.txt", ContentType: "text/plain"},
			wantErr: ErrEmptyImage,
		},
		{
			name:    "not an image",
			upload:  models.ImageUpload{Filename: "x.txt", ContentType: "text/plain", Data: []byte("hi")},
			wantErr: ErrNotImage,
		},
		{
			name: "too large",
			upload: models.ImageUpload{
				Filename:    "x.png",
				ContentType: "image/png",
				Data:        bytes.Repeat([]byte{1}, models.MaxImageBytes+1),
			},
			wantErr: ErrImageTooLarge,
		},
	}

	svc := NewImageService(&fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			t.Fatal("no insert expected for invalid upload")
			return nil
		},
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), tt.upload)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestImageSave_StoresValidUpload(t *testing.T) {
	imageID := uuid.New()
	var gotArgs []any
	svc := NewImageService(&fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			gotArgs = args
			return rowFromValues(imageID)
		},
	})

	id, err := svc.Save(context.Background(), models.ImageUpload{
		Filename:    "me.png",
		ContentType: "image/png",
		Data:        []byte("png bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != imageID {
		t.Fatalf("unexpected id: %s", id)
	}
	if gotArgs[0] != any("me.png") || gotArgs[1] != any("image/png") {
		t.Fatalf("unexpected args: %+v", gotArgs)
	}
}

func TestImageGet_NotFound(t *testing.T) {
	svc := NewImageService(&fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return fakeRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	})

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}
