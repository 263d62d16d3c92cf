package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
)

type fakeProductSource struct {
	products []entity.Product
	err      error
	calls    int
}

func (f *fakeProductSource) ListAll(ctx context.Context) ([]entity.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entity.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func TestCatalogCacheServesFreshSnapshot(t *testing.T) {
	source := &fakeProductSource{products: []entity.Product{
		{Model: "iPhone 15", Storage: "128", Color: "Чёрный", Availability: "Да"},
	}}
	cache := NewCatalogCacheWithTTL(source, time.Hour)
	ctx := context.Background()

	if _, err := cache.ListAll(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.ListAll(ctx); err != nil {
		t.Fatal(err)
	}

	if source.calls != 1 {
		t.Errorf("source calls = %d, want 1 (second read must hit the cache)", source.calls)
	}
}

func TestCatalogCacheRefreshesAfterTTL(t *testing.T) {
	source := &fakeProductSource{products: []entity.Product{
		{Model: "iPhone 15", Storage: "128", Availability: "Да"},
	}}
	cache := NewCatalogCacheWithTTL(source, time.Nanosecond)
	ctx := context.Background()

	cache.ListAll(ctx)
	time.Sleep(time.Millisecond)
	cache.ListAll(ctx)

	if source.calls != 2 {
		t.Errorf("source calls = %d, want 2 (snapshot must expire)", source.calls)
	}
}

func TestCatalogCacheServesStaleOnError(t *testing.T) {
	source := &fakeProductSource{products: []entity.Product{
		{Model: "iPhone 15", Storage: "128", Availability: "Да"},
	}}
	cache := NewCatalogCacheWithTTL(source, time.Nanosecond)
	ctx := context.Background()

	first, err := cache.ListAll(ctx)
	if err != nil || len(first) != 1 {
		t.Fatalf("first read = %v, %v", first, err)
	}

	source.err = errors.New("sheet unavailable")
	time.Sleep(time.Millisecond)

	second, err := cache.ListAll(ctx)
	if err != nil {
		t.Fatalf("stale read returned error: %v", err)
	}
	if len(second) != 1 || second[0].Model != "iPhone 15" {
		t.Errorf("stale read = %v, want the previous snapshot", second)
	}
}

func TestCatalogCacheCanonicalizesStorage(t *testing.T) {
	source := &fakeProductSource{products: []entity.Product{
		{Model: "iPhone 15 Pro", Storage: "1024", Availability: "Да"},
		{Model: "iPhone 15", Storage: "256gb", Availability: "Да"},
	}}
	cache := NewCatalogCacheWithTTL(source, time.Hour)

	products, err := cache.ListAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if products[0].Storage != "1 ТБ" {
		t.Errorf("Storage = %q, want 1 ТБ", products[0].Storage)
	}
	if products[1].Storage != "256 ГБ" {
		t.Errorf("Storage = %q, want 256 ГБ", products[1].Storage)
	}
}
