package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// NewCORS returns a CORS middleware for the API. corsOrigins is a
// comma-separated list of allowed origins; "*" allows all (development
// default). Credentials are enabled so the token cookies work cross origin,
// which requires explicit origins in production.
func NewCORS(corsOrigins string) fiber.Handler {
	origins := []string{"*"}
	credentials := false
	if corsOrigins != "" && corsOrigins != "*" {
		origins = strings.Split(corsOrigins, ",")
		for i, o := range origins {
			origins[i] = strings.TrimSpace(o)
		}
		credentials = true
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: credentials,
		AllowMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPatch,
			fiber.MethodDelete,
			fiber.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
		},
		ExposeHeaders: []string{
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: 86400,
	})
}
