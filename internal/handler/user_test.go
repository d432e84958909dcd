package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/config"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/service"
	"github.com/playtube/playtube-go/internal/storage"
	"github.com/playtube/playtube-go/pkg/pagination"
)

// memoryUserStore is the minimal user persistence needed to drive the
// register handler end to end.
type memoryUserStore struct{}

func (memoryUserStore) Create(_ context.Context, u *model.User) error {
	u.ID = uuid.New()
	return nil
}

func (memoryUserStore) FindByID(_ context.Context, _ uuid.UUID) (*model.User, error) {
	return nil, nil
}

func (memoryUserStore) FindByLogin(_ context.Context, _, _ string) (*model.User, error) {
	return nil, nil
}

func (memoryUserStore) Exists(_ context.Context, _, _ string) (bool, error) { return false, nil }

func (memoryUserStore) UpdateRefreshToken(_ context.Context, _ uuid.UUID, _ *string) error {
	return nil
}

func (memoryUserStore) UpdatePassword(_ context.Context, _ uuid.UUID, _ string) error { return nil }

func (memoryUserStore) UpdateDetails(_ context.Context, _ uuid.UUID, _, _ string) (*model.User, error) {
	return nil, nil
}

func (memoryUserStore) UpdateAvatar(_ context.Context, _ uuid.UUID, _, _ string) (string, error) {
	return "", nil
}

func (memoryUserStore) UpdateCover(_ context.Context, _ uuid.UUID, _, _ string) (string, error) {
	return "", nil
}

func (memoryUserStore) ChannelProfile(_ context.Context, _ string, _ uuid.UUID) (*model.ChannelProfile, error) {
	return nil, nil
}

func (memoryUserStore) TouchWatchHistory(_ context.Context, _, _ uuid.UUID) error { return nil }

func (memoryUserStore) WatchHistory(_ context.Context, _ uuid.UUID, _ pagination.Params) ([]model.WatchHistoryEntry, int, error) {
	return nil, 0, nil
}

// countingMediaStore records what reaches the media host.
type countingMediaStore struct {
	stored []string
}

func (s *countingMediaStore) Store(_ context.Context, name, contentType string, _ io.Reader) (*storage.Asset, error) {
	kind, err := storage.KindOf(contentType)
	if err != nil {
		return nil, err
	}
	s.stored = append(s.stored, name)
	return &storage.Asset{URL: "https://media.test/" + name, Key: name, Kind: kind}, nil
}

func (s *countingMediaStore) Remove(_ context.Context, _ string) error { return nil }

func addImagePart(t *testing.T, w *multipart.Writer, field, filename string) {
	t.Helper()
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/png")
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart(%s): %v", field, err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
}

func TestRegisterReadsCoverImgField(t *testing.T) {
	media := &countingMediaStore{}
	tokens := service.NewTokenService(&config.Config{
		AccessTokenSecret:  "test-access-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenSecret: "test-refresh-secret",
		RefreshTokenTTL:    time.Hour,
	})
	svc := service.NewUserService(memoryUserStore{}, media, tokens, service.NewCacheService(""))
	h := NewUserHandler(svc, false, time.Hour)

	app := fiber.New()
	app.Post("/api/v1/users/register", h.Register)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, value := range map[string]string{
		"userName": "maya",
		"email":    "maya@example.com",
		"fullName": "Maya L",
		"password": "sufficiently-long",
	} {
		if err := w.WriteField(field, value); err != nil {
			t.Fatalf("WriteField(%s): %v", field, err)
		}
	}
	addImagePart(t, w, "avatar", "avatar.png")
	addImagePart(t, w, "coverImg", "cover.png")
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/v1/users/register", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusCreated)
	}
	if len(media.stored) != 2 {
		t.Fatalf("stored %d media objects (%v), want avatar and cover", len(media.stored), media.stored)
	}
	if media.stored[1] != "cover.png" {
		t.Errorf("second stored object = %s, want the coverImg upload", media.stored[1])
	}
}
