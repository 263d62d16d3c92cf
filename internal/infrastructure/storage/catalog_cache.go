package storage

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/yourusername/store-assistant-bot/internal/domain/constants"
	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
	"github.com/yourusername/store-assistant-bot/internal/usecase"
)

// CatalogCache is a time-bounded snapshot of the product sheet. It absorbs
// store latency and failures: within the freshness window reads are served
// from memory, and when a refresh fails the stale snapshot is returned so
// the dialogue engine stays operational. Never returns an error.
type CatalogCache struct {
	mu       sync.Mutex
	source   repository.ProductRepository
	snapshot []entity.Product
	fetched  time.Time
	ttl      time.Duration
}

// NewCatalogCache wraps the given product store with the standard
// freshness window.
func NewCatalogCache(source repository.ProductRepository) *CatalogCache {
	return NewCatalogCacheWithTTL(source, constants.CatalogTTL)
}

// NewCatalogCacheWithTTL allows tests to control the freshness window.
func NewCatalogCacheWithTTL(source repository.ProductRepository, ttl time.Duration) *CatalogCache {
	return &CatalogCache{source: source, ttl: ttl}
}

// ListAll returns the cached snapshot, refreshing it when stale. Storage
// values are rewritten to canonical form on fetch (1024 collapses to 1 ТБ),
// so the rest of the code compares like with like.
func (c *CatalogCache) ListAll(ctx context.Context) ([]entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && time.Since(c.fetched) < c.ttl {
		return copyProducts(c.snapshot), nil
	}

	products, err := c.source.ListAll(ctx)
	if err != nil {
		log.Printf("Ошибка загрузки каталога: %v (используется кэш)", err)
		return copyProducts(c.snapshot), nil
	}

	for i := range products {
		products[i].Storage = usecase.NormalizeStorage(products[i].Storage)
	}

	c.snapshot = products
	c.fetched = time.Now()
	return copyProducts(c.snapshot), nil
}

// copyProducts returns a defensive copy so callers can safely iterate
// without holding the lock.
func copyProducts(products []entity.Product) []entity.Product {
	out := make([]entity.Product, len(products))
	copy(out, products)
	return out
}
