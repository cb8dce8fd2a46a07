package storage

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Reader is the read side of a store. *FileStore satisfies it.
type Reader interface {
	Read(ctx context.Context, key string) ([]byte, error)
}

// CachedReader is a read-through cache in front of a Reader. Reference images
// (model face/body, apparel, locations) are re-read on every shot of a
// session, so keeping them warm avoids repeated disk hits.
type CachedReader struct {
	inner Reader
	cache *gocache.Cache
}

// NewCachedReader wraps inner with an in-memory TTL cache.
func NewCachedReader(inner Reader, ttl time.Duration) *CachedReader {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedReader{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Read returns the cached bytes for key, falling back to the inner reader.
func (c *CachedReader) Read(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.cache.Get(key); ok {
		return v.([]byte), nil
	}
	data, err := c.inner.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, data, gocache.DefaultExpiration)
	return data, nil
}

// Invalidate drops the cached entry for key, if any.
func (c *CachedReader) Invalidate(key string) {
	c.cache.Delete(key)
}
