// Copyright (c) 2026 Agrio India. All rights reserved.

// Package pagination standardizes page-based navigation for list endpoints:
// parsing the page/limit query parameters and building the meta block that
// rides along in paginated response envelopes.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPage is the first page (pages are 1-indexed).
	DefaultPage = 1
	// DefaultLimit is the page size used when the request names none.
	DefaultLimit = 20
	// MaxLimit caps the page size a caller can ask for.
	MaxLimit = 100
)

// Params is the sanitized page selection of one listing request.
type Params struct {
	Page  int
	Limit int
}

// Offset converts the selection into a SQL OFFSET.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block of a paginated response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta builds the meta block for one page of a listing, deriving
// TotalPages from the total row count.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest reads "page" and "limit" from the query string. Missing,
// malformed, non-positive, or oversized values fall back to the defaults, so
// the returned Params are always usable as-is.
func FromRequest(request *http.Request) Params {
	page := intParam(request, "page", DefaultPage)
	limit := intParam(request, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

func intParam(request *http.Request, key string, fallback int) int {
	raw := request.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
