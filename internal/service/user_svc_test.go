package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/storage"
	"github.com/playtube/playtube-go/pkg/pagination"
)

// mockUserStore is a testify mock of the userStore interface.
type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserStore) FindByLogin(ctx context.Context, userName, email string) (*model.User, error) {
	args := m.Called(ctx, userName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserStore) Exists(ctx context.Context, userName, email string) (bool, error) {
	args := m.Called(ctx, userName, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockUserStore) UpdateDetails(ctx context.Context, id uuid.UUID, fullName, email string) (*model.User, error) {
	args := m.Called(ctx, id, fullName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserStore) UpdateAvatar(ctx context.Context, id uuid.UUID, url, key string) (string, error) {
	args := m.Called(ctx, id, url, key)
	return args.String(0), args.Error(1)
}

func (m *mockUserStore) UpdateCover(ctx context.Context, id uuid.UUID, url, key string) (string, error) {
	args := m.Called(ctx, id, url, key)
	return args.String(0), args.Error(1)
}

func (m *mockUserStore) ChannelProfile(ctx context.Context, userName string, actorID uuid.UUID) (*model.ChannelProfile, error) {
	args := m.Called(ctx, userName, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelProfile), args.Error(1)
}

func (m *mockUserStore) TouchWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

func (m *mockUserStore) WatchHistory(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]model.WatchHistoryEntry, int, error) {
	args := m.Called(ctx, userID, params)
	var entries []model.WatchHistoryEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]model.WatchHistoryEntry)
	}
	return entries, args.Int(1), args.Error(2)
}

// stubMediaStore records stored keys instead of hitting S3.
type stubMediaStore struct {
	stored  []string
	removed []string
}

func (s *stubMediaStore) Store(_ context.Context, name, contentType string, _ io.Reader) (*storage.Asset, error) {
	kind, err := storage.KindOf(contentType)
	if err != nil {
		return nil, err
	}
	key := kind + "s/" + name
	s.stored = append(s.stored, key)
	return &storage.Asset{URL: "https://media.test/" + key, Key: key, Kind: kind}, nil
}

func (s *stubMediaStore) Remove(_ context.Context, key string) error {
	if key != "" {
		s.removed = append(s.removed, key)
	}
	return nil
}

func newTestUserService(store *mockUserStore, media *stubMediaStore) *UserService {
	return NewUserService(store, media, testTokenService(), NewCacheService(""))
}

func pngUpload(name string) *Upload {
	return &Upload{Name: name, ContentType: "image/png", Body: strings.NewReader("img")}
}

func TestRegister(t *testing.T) {
	store := new(mockUserStore)
	media := &stubMediaStore{}
	svc := newTestUserService(store, media)

	req := RegisterRequest{
		UserName: "Maya",
		Email:    "Maya@Example.com",
		FullName: "Maya Iyer",
		Password: "password123",
	}

	store.On("Exists", mock.Anything, "maya", "maya@example.com").Return(false, nil).Once()
	store.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil).Once()

	u, err := svc.Register(context.Background(), req, pngUpload("a.png"), nil)
	assert.NoError(t, err)
	assert.Equal(t, "maya", u.UserName)
	assert.Equal(t, "maya@example.com", u.Email)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.NotEmpty(t, u.AvatarURL)
	assert.Len(t, media.stored, 1)
	store.AssertExpectations(t)
}

func TestRegister_Conflict(t *testing.T) {
	store := new(mockUserStore)
	svc := newTestUserService(store, &stubMediaStore{})

	store.On("Exists", mock.Anything, "maya", "maya@example.com").Return(true, nil).Once()

	_, err := svc.Register(context.Background(), RegisterRequest{
		UserName: "maya",
		Email:    "maya@example.com",
		FullName: "Maya Iyer",
		Password: "password123",
	}, pngUpload("a.png"), nil)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	store.AssertExpectations(t)
}

func TestRegister_AvatarRequired(t *testing.T) {
	svc := newTestUserService(new(mockUserStore), &stubMediaStore{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		UserName: "maya",
		Email:    "maya@example.com",
		FullName: "Maya Iyer",
		Password: "password123",
	}, nil, nil)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	store := new(mockUserStore)
	svc := newTestUserService(store, &stubMediaStore{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	u := &model.User{ID: uuid.New(), UserName: "maya", PasswordHash: string(hash)}

	store.On("FindByLogin", mock.Anything, "maya", "").Return(u, nil).Once()
	store.On("UpdateRefreshToken", mock.Anything, u.ID, mock.AnythingOfType("*string")).Return(nil).Once()

	resp, err := svc.Login(context.Background(), model.LoginRequest{UserName: "maya", Password: "password123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	store.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := new(mockUserStore)
	svc := newTestUserService(store, &stubMediaStore{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	u := &model.User{ID: uuid.New(), UserName: "maya", PasswordHash: string(hash)}

	store.On("FindByLogin", mock.Anything, "maya", "").Return(u, nil).Once()

	_, err := svc.Login(context.Background(), model.LoginRequest{UserName: "maya", Password: "wrong"})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestLogin_UnknownUserHidesExistence(t *testing.T) {
	store := new(mockUserStore)
	svc := newTestUserService(store, &stubMediaStore{})

	store.On("FindByLogin", mock.Anything, "ghost", "").Return(nil, apperr.NotFound("user not found")).Once()

	_, err := svc.Login(context.Background(), model.LoginRequest{UserName: "ghost", Password: "whatever"})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestRefreshTokens_Rotation(t *testing.T) {
	store := new(mockUserStore)
	svc := newTestUserService(store, &stubMediaStore{})

	userID := uuid.New()
	refresh, err := svc.tokens.IssueRefreshToken(userID)
	assert.NoError(t, err)

	u := &model.User{ID: userID, UserName: "maya", RefreshToken: &refresh}
	store.On("FindByID", mock.Anything, userID).Return(u, nil).Once()
	store.On("UpdateRefreshToken", mock.Anything, userID, mock.AnythingOfType("*string")).Return(nil).Once()

	pair, err := svc.RefreshTokens(context.Background(), refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	store.AssertExpectations(t)
}

func TestRefreshTokens_ReuseRejected(t *testing.T) {
	store := new(mockUserStore)
	svc := newTestUserService(store, &stubMediaStore{})

	userID := uuid.New()
	oldToken, err := svc.tokens.IssueRefreshToken(userID)
	assert.NoError(t, err)

	// The store holds a different (newer) token; presenting the old one
	// must fail.
	current := "rotated-away"
	u := &model.User{ID: userID, UserName: "maya", RefreshToken: &current}
	store.On("FindByID", mock.Anything, userID).Return(u, nil).Once()

	_, err = svc.RefreshTokens(context.Background(), oldToken)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	store := new(mockUserStore)
	svc := newTestUserService(store, &stubMediaStore{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	userID := uuid.New()
	u := &model.User{ID: userID, PasswordHash: string(hash)}
	store.On("FindByID", mock.Anything, userID).Return(u, nil).Once()

	err := svc.ChangePassword(context.Background(), userID, model.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpassword",
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateAvatar_RemovesReplacedObject(t *testing.T) {
	store := new(mockUserStore)
	media := &stubMediaStore{}
	svc := newTestUserService(store, media)

	userID := uuid.New()
	store.On("UpdateAvatar", mock.Anything, userID, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return("images/old.png", nil).Once()
	store.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, UserName: "maya"}, nil).Once()

	_, err := svc.UpdateAvatar(context.Background(), userID, pngUpload("new.png"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"images/old.png"}, media.removed)
	store.AssertExpectations(t)
}
