package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/playtube/playtube-go/internal/apperr"
)

// Envelope is the uniform response body every endpoint returns.
type Envelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// OK writes a success envelope with the given status, message and payload.
func OK(c fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// Error maps an error onto the envelope. Internal causes are logged but
// never serialized.
func Error(c fiber.Ctx, err error) error {
	status := apperr.Status(err)
	if status >= 500 {
		Logger.Error().Err(err).Str("path", sanitizePath(c.Path())).Msg("request failed")
	}
	return c.Status(status).JSON(Envelope{
		Success:    false,
		StatusCode: status,
		Message:    apperr.Message(err),
	})
}
