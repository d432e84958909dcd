package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/playtube/playtube-go/internal/middleware"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/service"
)

type UserHandler struct {
	svc           *service.UserService
	secureCookies bool
	refreshTTL    time.Duration
}

func NewUserHandler(svc *service.UserService, secureCookies bool, refreshTTL time.Duration) *UserHandler {
	return &UserHandler{svc: svc, secureCookies: secureCookies, refreshTTL: refreshTTL}
}

// Register handles POST /api/v1/users/register (multipart).
func (h *UserHandler) Register(c fiber.Ctx) error {
	req := service.RegisterRequest{
		UserName: c.FormValue("userName"),
		Email:    c.FormValue("email"),
		FullName: c.FormValue("fullName"),
		Password: c.FormValue("password"),
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	avatar, closeAvatar, err := formUpload(c, "avatar")
	if err != nil {
		return middleware.Error(c, err)
	}
	defer closeAvatar()

	cover, closeCover, err := formUpload(c, "coverImg")
	if err != nil {
		return middleware.Error(c, err)
	}
	defer closeCover()

	u, err := h.svc.Register(c.Context(), req, avatar, cover)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusCreated, "user registered", u)
}

// Login handles POST /api/v1/users/login.
func (h *UserHandler) Login(c fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.Error(c, errInvalidBody)
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	resp, err := h.svc.Login(c.Context(), req)
	if err != nil {
		return middleware.Error(c, err)
	}

	h.setAuthCookies(c, resp.AccessToken, resp.RefreshToken)
	return middleware.OK(c, fiber.StatusOK, "logged in", resp)
}

// Logout handles POST /api/v1/users/logout.
func (h *UserHandler) Logout(c fiber.Ctx) error {
	if err := h.svc.Logout(c.Context(), middleware.ActorID(c)); err != nil {
		return middleware.Error(c, err)
	}
	h.clearAuthCookies(c)
	return middleware.OK(c, fiber.StatusOK, "logged out", nil)
}

// Refresh handles POST /api/v1/users/refresh-token. The refresh token comes
// from the cookie or, for non-browser clients, the request body.
func (h *UserHandler) Refresh(c fiber.Ctx) error {
	incoming := c.Cookies("refreshToken")
	if incoming == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.Bind().JSON(&body); err == nil {
			incoming = body.RefreshToken
		}
	}

	pair, err := h.svc.RefreshTokens(c.Context(), incoming)
	if err != nil {
		return middleware.Error(c, err)
	}

	h.setAuthCookies(c, pair.AccessToken, pair.RefreshToken)
	return middleware.OK(c, fiber.StatusOK, "tokens refreshed", pair)
}

// ChangePassword handles POST /api/v1/users/change-password.
func (h *UserHandler) ChangePassword(c fiber.Ctx) error {
	var req model.ChangePasswordRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.Error(c, errInvalidBody)
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	if err := h.svc.ChangePassword(c.Context(), middleware.ActorID(c), req); err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "password changed", nil)
}

// Current handles GET /api/v1/users/current.
func (h *UserHandler) Current(c fiber.Ctx) error {
	u, err := h.svc.Current(c.Context(), middleware.ActorID(c))
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "current user", u)
}

// UpdateDetails handles PATCH /api/v1/users/update-details.
func (h *UserHandler) UpdateDetails(c fiber.Ctx) error {
	var req model.UpdateDetailsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.Error(c, errInvalidBody)
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	u, err := h.svc.UpdateDetails(c.Context(), middleware.ActorID(c), req)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "details updated", u)
}

// UpdateAvatar handles PATCH /api/v1/users/avatar (multipart).
func (h *UserHandler) UpdateAvatar(c fiber.Ctx) error {
	upload, closeFn, err := formUpload(c, "avatar")
	if err != nil {
		return middleware.Error(c, err)
	}
	defer closeFn()

	u, err := h.svc.UpdateAvatar(c.Context(), middleware.ActorID(c), upload)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "avatar updated", u)
}

// UpdateCover handles PATCH /api/v1/users/cover (multipart).
func (h *UserHandler) UpdateCover(c fiber.Ctx) error {
	upload, closeFn, err := formUpload(c, "coverImg")
	if err != nil {
		return middleware.Error(c, err)
	}
	defer closeFn()

	u, err := h.svc.UpdateCover(c.Context(), middleware.ActorID(c), upload)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "cover image updated", u)
}

// Channel handles GET /api/v1/users/channel/:userName.
func (h *UserHandler) Channel(c fiber.Ctx) error {
	p, err := h.svc.Channel(c.Context(), c.Params("userName"), middleware.ActorID(c))
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "channel profile", p)
}

// WatchHistory handles GET /api/v1/users/watch-history.
func (h *UserHandler) WatchHistory(c fiber.Ctx) error {
	page, limit := pageParams(c)
	res, err := h.svc.WatchHistory(c.Context(), middleware.ActorID(c), page, limit)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "watch history", res)
}

func (h *UserHandler) setAuthCookies(c fiber.Ctx, access, refresh string) {
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    access,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    refresh,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

func (h *UserHandler) clearAuthCookies(c fiber.Ctx) {
	c.ClearCookie("accessToken", "refreshToken")
}
