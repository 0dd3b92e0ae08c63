package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"sabai/shared/cache"
	"sabai/shared/dto"

	"github.com/rs/zerolog/log"
)

// BuildCacheKey joins a key prefix with an identifier.
func BuildCacheKey(prefix, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

// BuildCacheKeyWithQuery derives a cache key from the query params and filter
// so that distinct list queries never collide.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	payload := struct {
		Params dto.QueryParams
		Where  string
		Args   map[string]any
	}{Params: params}

	payload.Where, payload.Args = filter.GetWhereClause()

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key payload")

		return prefix
	}

	sum := sha256.Sum256(raw)

	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:8]))
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
