// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Upstream: Paging defaults for the remote Pictufy catalog API.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Cache Taxonomy: Redis key prefixes and TTLs.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "pictufy-mirror"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Upstream Catalog API

const (
	// UpstreamTimeout is the per-call deadline for the remote Pictufy API.
	// Calls degrade to an error result on expiry rather than hanging.
	UpstreamTimeout = 15 * time.Second

	// ArtworksDefaultPerPage is the default page size for artwork listings.
	ArtworksDefaultPerPage = 80

	// ArtistArtworksPerPage is the default page size for a single artist's artworks.
	ArtistArtworksPerPage = 24

	// ArtistsDefaultPerPage is the page size used when walking the full artist listing.
	ArtistsDefaultPerPage = 60

	// SweepPerPage is the fixed page size for the expired-artworks sweep.
	SweepPerPage = 200
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Nonce Tokens

const (
	// NonceIssuer is the standard 'iss' claim in grid nonce tokens.
	NonceIssuer = "pictufy-mirror"

	// NonceTTL bounds how long an issued grid nonce stays valid.
	NonceTTL = 12 * time.Hour

	// NonceActionArtworks is the action bound to artwork grid load-more calls.
	NonceActionArtworks = "artworks"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldItems   = "items"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldHasMore = "has_more"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixCollections keys cached flattened collection listings.
	RedisPrefixCollections = "pictufy:collections:"

	// RedisPrefixArtwork keys cached single-artwork payloads.
	RedisPrefixArtwork = "pictufy:artwork:"

	// CollectionsCacheTTL is the advisory lifetime of a cached collection listing.
	CollectionsCacheTTL = 30 * time.Minute

	// ArtworkCacheTTL is the advisory lifetime of a cached artwork payload.
	ArtworkCacheTTL = 30 * time.Minute
)
