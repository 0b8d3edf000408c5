package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/remotework/jobnexus/internal/entity"
	"github.com/remotework/jobnexus/internal/repository"
)

// ResultCache is a process-local ResultCache backed by go-cache.
type ResultCache struct {
	cache *gocache.Cache
}

// NewResultCache creates a cache whose entries expire after defaultTTL unless
// Set is given its own expiry.
func NewResultCache(defaultTTL time.Duration) *ResultCache {
	return &ResultCache{cache: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (c *ResultCache) Get(ctx context.Context, url string) (*entity.ExtractionResult, error) {
	v, ok := c.cache.Get(url)
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	r := v.(entity.ExtractionResult)
	return &r, nil
}

func (c *ResultCache) Set(ctx context.Context, url string, result *entity.ExtractionResult, expiry time.Duration) error {
	c.cache.Set(url, *result, expiry)
	return nil
}

func (c *ResultCache) Delete(ctx context.Context, url string) error {
	c.cache.Delete(url)
	return nil
}
