package catalog

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/totmarc/pictufy-mirror/internal/platform/constants"
)

// ListingArgs narrows a cached collections listing.
type ListingArgs struct {
	Category string
	Order    string
}

// CachedListing is the stored shape of one collections listing snapshot.
// An empty listing is a valid snapshot and is cached like any other.
type CachedListing struct {
	Items []Collection `json:"items"`
}

// Cache stores short-lived catalog snapshots.
//
// Successful listings are stored under their argument hash; failures are
// never stored, so a transient upstream outage cannot poison the cache for
// a full TTL window.
type Cache interface {
	GetListing(ctx context.Context, key string) (*CachedListing, bool)
	SetListing(ctx context.Context, key string, listing *CachedListing)
	DeleteArtwork(ctx context.Context, artworkID string)
}

// ListingKey derives the deterministic cache key for a collections listing.
//
// Defaults are merged in before hashing and the argument pairs are sorted
// by key, so semantically identical argument sets always hash alike no
// matter how the caller orders them.
func ListingKey(args ListingArgs) string {
	pairs := map[string]string{
		"category": args.Category,
		"order":    args.Order,
	}
	if pairs["order"] == "" {
		pairs["order"] = "curated"
	}

	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var canonical strings.Builder
	for _, key := range keys {
		canonical.WriteString(key)
		canonical.WriteByte('=')
		canonical.WriteString(pairs[key])
		canonical.WriteByte(';')
	}

	sum := md5.Sum([]byte(canonical.String()))
	return constants.RedisPrefixCollections + hex.EncodeToString(sum[:])
}

// ArtworkKey derives the cache key for a single-artwork payload.
func ArtworkKey(artworkID string) string {
	sum := md5.Sum([]byte(artworkID))
	return constants.RedisPrefixArtwork + hex.EncodeToString(sum[:])
}

// RedisCache is the Redis-backed Cache implementation.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisCache creates a Redis-backed catalog cache.
func NewRedisCache(client *redis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// GetListing loads a cached listing snapshot. A miss, an expired entry, and
// an undecodable entry all report absent.
func (c *RedisCache) GetListing(ctx context.Context, key string) (*CachedListing, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("catalog cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}

	var listing CachedListing
	if err := json.Unmarshal(payload, &listing); err != nil {
		c.logger.Warn("catalog cache entry undecodable", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}

	return &listing, true
}

// SetListing stores a listing snapshot under the listing TTL. Write failures
// are logged and swallowed: the caller already holds fresh data.
func (c *RedisCache) SetListing(ctx context.Context, key string, listing *CachedListing) {
	payload, err := json.Marshal(listing)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := c.client.Set(ctx, key, payload, constants.CollectionsCacheTTL).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// DeleteArtwork drops the cached payload of one artwork, if any.
func (c *RedisCache) DeleteArtwork(ctx context.Context, artworkID string) {
	key := ArtworkKey(artworkID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("artwork cache delete failed", slog.String("key", key), slog.Any("error", err))
	}
}
