package service

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/storage"
	"github.com/playtube/playtube-go/pkg/pagination"
)

// userStore is the persistence surface UserService depends on.
type userStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByLogin(ctx context.Context, userName, email string) (*model.User, error)
	Exists(ctx context.Context, userName, email string) (bool, error)
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateDetails(ctx context.Context, id uuid.UUID, fullName, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, url, key string) (string, error)
	UpdateCover(ctx context.Context, id uuid.UUID, url, key string) (string, error)
	ChannelProfile(ctx context.Context, userName string, actorID uuid.UUID) (*model.ChannelProfile, error)
	TouchWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
	WatchHistory(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]model.WatchHistoryEntry, int, error)
}

// Upload is an incoming multipart file the services hand to the media store.
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// RegisterRequest carries the text fields of a registration. The avatar and
// cover uploads travel separately.
type RegisterRequest struct {
	UserName string `json:"userName" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserService struct {
	users  userStore
	media  storage.MediaStore
	tokens *TokenService
	cache  *CacheService
}

func NewUserService(users userStore, media storage.MediaStore, tokens *TokenService, cache *CacheService) *UserService {
	return &UserService{users: users, media: media, tokens: tokens, cache: cache}
}

// Register creates a user with a hashed password and an uploaded avatar.
// The cover image is optional.
func (s *UserService) Register(ctx context.Context, req RegisterRequest, avatar *Upload, cover *Upload) (*model.User, error) {
	req.UserName = strings.ToLower(strings.TrimSpace(req.UserName))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if avatar == nil {
		return nil, apperr.Validation("avatar image is required")
	}

	taken, err := s.users.Exists(ctx, req.UserName, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("userName or email already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Dependency("password hashing failed", err)
	}

	avatarAsset, err := s.storeImage(ctx, avatar)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		UserName:     req.UserName,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hashed),
		AvatarURL:    avatarAsset.URL,
		AvatarKey:    avatarAsset.Key,
	}

	if cover != nil {
		coverAsset, err := s.storeImage(ctx, cover)
		if err != nil {
			return nil, err
		}
		u.CoverURL = coverAsset.URL
		u.CoverKey = coverAsset.Key
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials, issues a token pair and persists the refresh
// token for later rotation. Either userName or email identifies the account.
func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if req.UserName == "" && req.Email == "" {
		return nil, apperr.Validation("userName or email is required")
	}

	u, err := s.users.FindByLogin(ctx, strings.ToLower(req.UserName), strings.ToLower(req.Email))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Authentication("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Authentication("invalid credentials")
	}

	access, refresh, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

// Logout clears the stored refresh token so the pair can no longer be rotated.
func (s *UserService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.users.UpdateRefreshToken(ctx, userID, nil)
}

// RefreshTokens rotates the token pair. The incoming refresh token must match
// the one stored for the user; a mismatch means it was already rotated or
// revoked.
func (s *UserService) RefreshTokens(ctx context.Context, incoming string) (*model.TokenPairResponse, error) {
	if incoming == "" {
		return nil, apperr.Authentication("refresh token is required")
	}

	userID, err := s.tokens.VerifyRefreshToken(incoming)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Authentication("invalid refresh token")
		}
		return nil, err
	}

	if u.RefreshToken == nil || *u.RefreshToken != incoming {
		return nil, apperr.Authentication("refresh token is expired or already used")
	}

	access, refresh, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, err
	}
	return &model.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

// ChangePassword verifies the old password before storing the new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req model.ChangePasswordRequest) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)); err != nil {
		return apperr.Validation("old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Dependency("password hashing failed", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hashed))
}

// Current returns the authenticated user's own row.
func (s *UserService) Current(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateDetails applies a partial update of fullName and email.
func (s *UserService) UpdateDetails(ctx context.Context, userID uuid.UUID, req model.UpdateDetailsRequest) (*model.User, error) {
	if req.FullName == "" && req.Email == "" {
		return nil, apperr.Validation("at least one of fullName or email is required")
	}
	u, err := s.users.UpdateDetails(ctx, userID, req.FullName, strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	s.invalidateChannel(ctx, u.UserName)
	return u, nil
}

// UpdateAvatar uploads the new image, swaps it in and removes the replaced
// object from the media host.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, upload *Upload) (*model.User, error) {
	return s.swapImage(ctx, userID, upload, s.users.UpdateAvatar)
}

// UpdateCover works like UpdateAvatar for the cover image.
func (s *UserService) UpdateCover(ctx context.Context, userID uuid.UUID, upload *Upload) (*model.User, error) {
	return s.swapImage(ctx, userID, upload, s.users.UpdateCover)
}

func (s *UserService) swapImage(ctx context.Context, userID uuid.UUID, upload *Upload,
	apply func(ctx context.Context, id uuid.UUID, url, key string) (string, error)) (*model.User, error) {

	if upload == nil {
		return nil, apperr.Validation("image file is required")
	}

	asset, err := s.storeImage(ctx, upload)
	if err != nil {
		return nil, err
	}

	oldKey, err := apply(ctx, userID, asset.URL, asset.Key)
	if err != nil {
		return nil, err
	}

	if err := s.media.Remove(ctx, oldKey); err != nil {
		log.Warn().Err(err).Str("key", oldKey).Msg("orphaned media object left behind")
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.invalidateChannel(ctx, u.UserName)
	return u, nil
}

// Channel returns the denormalized channel page for a userName. Anonymous
// lookups are served cache-aside; authenticated ones always hit the database
// because isSubscribed is viewer specific.
func (s *UserService) Channel(ctx context.Context, userName string, actorID uuid.UUID) (*model.ChannelProfile, error) {
	if userName == "" {
		return nil, apperr.Validation("userName is required")
	}
	userName = strings.ToLower(userName)

	if actorID == uuid.Nil {
		if cached, err := s.cache.GetChannel(ctx, userName); err == nil && cached != nil {
			var p model.ChannelProfile
			if err := json.Unmarshal(cached, &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.users.ChannelProfile(ctx, userName, actorID)
	if err != nil {
		return nil, err
	}

	if actorID == uuid.Nil {
		if err := s.cache.SetChannel(ctx, userName, p); err != nil {
			log.Warn().Err(err).Str("userName", userName).Msg("channel cache write failed")
		}
	}
	return p, nil
}

// WatchHistory returns the user's watch history, most recent first.
func (s *UserService) WatchHistory(ctx context.Context, userID uuid.UUID, page, limit int) (pagination.Page[model.WatchHistoryEntry], error) {
	params := pagination.Normalize(page, limit)
	items, total, err := s.users.WatchHistory(ctx, userID, params)
	if err != nil {
		return pagination.Page[model.WatchHistoryEntry]{}, err
	}
	return pagination.NewPage(items, params, total), nil
}

func (s *UserService) issuePair(ctx context.Context, u *model.User) (access, refresh string, err error) {
	access, err = s.tokens.IssueAccessToken(u.ID, u.UserName, u.Email)
	if err != nil {
		return "", "", apperr.Dependency("token signing failed", err)
	}
	refresh, err = s.tokens.IssueRefreshToken(u.ID)
	if err != nil {
		return "", "", apperr.Dependency("token signing failed", err)
	}
	if err = s.users.UpdateRefreshToken(ctx, u.ID, &refresh); err != nil {
		return "", "", err
	}
	u.RefreshToken = &refresh
	return access, refresh, nil
}

func (s *UserService) storeImage(ctx context.Context, upload *Upload) (*storage.Asset, error) {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, apperr.Validationf("expected an image upload, got %q", upload.ContentType)
	}
	return s.media.Store(ctx, upload.Name, upload.ContentType, upload.Body)
}

func (s *UserService) invalidateChannel(ctx context.Context, userName string) {
	if err := s.cache.InvalidateChannel(ctx, userName); err != nil {
		log.Warn().Err(err).Str("userName", userName).Msg("channel cache invalidation failed")
	}
}
