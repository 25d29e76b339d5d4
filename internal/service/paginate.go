package service

import "estates/internal/model"

// DefaultPageSize is the page size used by the listings view.
const DefaultPageSize = 20

// Paginate returns the page-th fixed-size slice of listings. Pages are
// 1-indexed; values below 1 are clamped to 1. A page past the end yields an
// empty slice, not an error.
func Paginate(listings []model.NormalizedListing, page, pageSize int) []model.NormalizedListing {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(listings) {
		return []model.NormalizedListing{}
	}

	end := start + pageSize
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}
