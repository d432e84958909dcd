package middleware

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/apperr"
)

var validate = validator.New()

// ValidateStruct runs the struct's validate tags and converts the first
// failure into a field-level validation error.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		field := fe.Field()
		if len(field) > 0 {
			field = strings.ToLower(field[:1]) + field[1:]
		}
		return apperr.Validationf("%s failed validation on %q", field, fe.Tag())
	}
	return apperr.Validation("invalid request body")
}

// ParseUUID reads a route parameter and parses it as a UUID.
func ParseUUID(c fiber.Ctx, param string) (uuid.UUID, error) {
	raw := c.Params(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation(fmt.Sprintf("%s must be a valid id", param))
	}
	return id, nil
}
