package repository

import (
	"context"
	"errors"
	"time"

	"github.com/remotework/jobnexus/internal/entity"
)

// ErrCacheMiss is returned by ResultCache.Get when nothing is cached for a URL.
var ErrCacheMiss = errors.New("extraction result not cached")

// ResultCache defines the interface for caching extraction results per URL.
type ResultCache interface {
	// Get returns the cached result for url or ErrCacheMiss.
	Get(ctx context.Context, url string) (*entity.ExtractionResult, error)
	// Set caches result for url with a specific expiry time.
	Set(ctx context.Context, url string, result *entity.ExtractionResult, expiry time.Duration) error
	// Delete drops the cached result for url; a missing entry is not an error.
	Delete(ctx context.Context, url string) error
}
