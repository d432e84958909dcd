package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/service"
)

const actorKey = "actorID"

// bearerToken extracts the access token from the accessToken cookie or the
// Authorization header, cookie first.
func bearerToken(c fiber.Ctx) string {
	if tok := c.Cookies("accessToken"); tok != "" {
		return tok
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a valid access token and stores the
// actor's id in the request locals.
func RequireAuth(tokens *service.TokenService) fiber.Handler {
	return func(c fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return Error(c, apperr.Authentication("authentication required"))
		}
		actorID, err := tokens.VerifyAccessToken(tok)
		if err != nil {
			return Error(c, err)
		}
		c.Locals(actorKey, actorID)
		return c.Next()
	}
}

// OptionalAuth resolves the actor when a valid token is present and treats
// everything else as anonymous. Read endpoints use it so derived viewer
// fields come back false rather than the request failing.
func OptionalAuth(tokens *service.TokenService) fiber.Handler {
	return func(c fiber.Ctx) error {
		if tok := bearerToken(c); tok != "" {
			if actorID, err := tokens.VerifyAccessToken(tok); err == nil {
				c.Locals(actorKey, actorID)
			}
		}
		return c.Next()
	}
}

// ActorID returns the authenticated actor's id, or uuid.Nil for anonymous
// requests.
func ActorID(c fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(actorKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
