package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/service"
)

var (
	errInvalidBody   = apperr.Validation("invalid request body")
	errInvalidUserID = apperr.Validation("userId must be a valid id")
)

// formUpload reads a multipart file field into an Upload. A missing field
// yields a nil upload, not an error; callers decide whether it was required.
// The returned closer must be called after the upload is consumed.
func formUpload(c fiber.Ctx, field string) (*service.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, apperr.Validationf("could not read %s upload", field)
	}
	return &service.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}, func() { f.Close() }, nil
}

// pageParams reads the page and limit query parameters with defaults applied
// downstream by pagination.Normalize.
func pageParams(c fiber.Ctx) (page, limit int) {
	return fiber.Query(c, "page", 0), fiber.Query(c, "limit", 0)
}
