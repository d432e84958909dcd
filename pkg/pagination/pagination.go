// Package pagination normalizes page/limit query parameters and builds the
// page metadata that accompanies every paginated result.
package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params are normalized 1-based pagination parameters.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps raw caller input to valid values. Zero or negative values
// fall back to the defaults; limits above MaxLimit are capped.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is the page metadata returned alongside list items.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

func NewMeta(p Params, totalCount int) Meta {
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + p.Limit - 1) / p.Limit
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// Page bundles items with their metadata for the response envelope.
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

func NewPage[T any](items []T, p Params, totalCount int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Meta: NewMeta(p, totalCount)}
}
