package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
	"github.com/remotework/jobnexus/pkg/utils"
)

const resultKeyPrefix = "extract:"

// ResultCacheImpl provides a concrete implementation for the ResultCache interface using Redis.
type ResultCacheImpl struct {
	client redis.Cmdable
}

// NewResultCache creates a new instance of ResultCacheImpl.
func NewResultCache(client redis.Cmdable) *ResultCacheImpl {
	return &ResultCacheImpl{client: client}
}

// generateKey creates a consistent Redis key for a given URL by hashing it.
func (r *ResultCacheImpl) generateKey(url string) string {
	return fmt.Sprintf("%s%s", resultKeyPrefix, utils.HashURL(url))
}

// Get loads and decodes the cached result for url.
func (r *ResultCacheImpl) Get(ctx context.Context, url string) (*entity.ExtractionResult, error) {
	data, err := r.client.Get(ctx, r.generateKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var result entity.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding cached result for %s: %w", url, err)
	}
	return &result, nil
}

// Set stores result under the URL's key. SET with an expiry is atomic.
func (r *ResultCacheImpl) Set(ctx context.Context, url string, result *entity.ExtractionResult, expiry time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.generateKey(url), data, expiry).Err()
}

// Delete removes the cached result so a refresh request extracts again.
func (r *ResultCacheImpl) Delete(ctx context.Context, url string) error {
	return r.client.Del(ctx, r.generateKey(url)).Err()
}
