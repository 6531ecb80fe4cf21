// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

// Package pagination provides shared types and helpers for paged catalog
// listings.
//
// # Overview
//
// The remote catalog API is page-based and never reports a total count, so
// navigation is driven by the "short page" heuristic: a page with fewer items
// than requested is the last one. This package standardizes how page and
// per-page values are parsed, clamped, and turned into that heuristic.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPerPage is the number of items per page if not specified.
	DefaultPerPage = 60
	// MaxPerPage is the upper bound for items per page, enforced server-side
	// regardless of client input.
	MaxPerPage = 120
	// MinPerPage is the lower bound for items per page.
	MinPerPage = 1
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds a clamped page and per-page pair.
type Params struct {
	Page    int
	PerPage int
}

// Clamp forces page and per-page into their valid ranges.
//
// Page floors at [DefaultPage]; per-page is clamped to
// [[MinPerPage], [MaxPerPage]].
func Clamp(page, perPage int) Params {
	if page < DefaultPage {
		page = DefaultPage
	}

	if perPage < MinPerPage {
		perPage = MinPerPage
	} else if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Params{Page: page, PerPage: perPage}
}

// HasMore applies the short-page heuristic: a listing has a further page
// exactly when the returned item count filled the requested page size.
func HasMore(returned, perPage int) bool {
	return returned >= perPage
}

// FromRequest parses "page" and "per_page" query parameters from an HTTP
// request, clamping invalid or excessive values.
func FromRequest(r *http.Request, defaultPerPage int) Params {
	if defaultPerPage <= 0 {
		defaultPerPage = DefaultPerPage
	}

	page := parseIntParam(r, "page", DefaultPage)
	perPage := parseIntParam(r, "per_page", defaultPerPage)

	return Clamp(page, perPage)
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
