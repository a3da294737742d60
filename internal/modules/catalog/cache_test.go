package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client), mr
}

func TestCachePreservesCatalogOrder(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	// Newest-first, the way the repository returns them.
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	var products []*Product
	for i := 0; i < 8; i++ {
		offset := time.Duration(i) * time.Hour
		products = append(products, product(func(p *Product) {
			p.CreatedAt = base.Add(-offset)
		}))
	}

	require.NoError(t, cache.Populate(ctx, products))

	got, err := cache.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(products))
	for i, p := range products {
		assert.Equal(t, p.ID, got[i].ID, "position %d", i)
		assert.Equal(t, p.CreatedAt, got[i].CreatedAt, "position %d", i)
	}
}

func TestCacheRoundTripsProductFields(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	sale := product(func(p *Product) {
		p.IsOnSale = true
		p.SalePrice = floatPtr(500)
		p.StockQuantity = map[string]int{"M": 2}
	})
	require.NoError(t, cache.Populate(ctx, []*Product{sale}))

	got, err := cache.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sale.Name, got[0].Name)
	assert.Equal(t, 500.0, got[0].EffectivePrice())
	assert.Equal(t, 2, got[0].StockFor("M"))
}

func TestCacheGetAllErrorsWhenEmpty(t *testing.T) {
	cache, _ := testCache(t)

	_, err := cache.GetAll(context.Background())
	assert.Error(t, err)
}

func TestCacheGetAllErrorsOnEvictedEntry(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	products := []*Product{product(nil), product(nil)}
	require.NoError(t, cache.Populate(ctx, products))

	// One product value expired while the id list survived.
	mr.Del(productKey(products[1].ID.String()))

	_, err := cache.GetAll(ctx)
	assert.Error(t, err, "partial catalog must force a db fetch")
}

func TestCacheInvalidateForcesDBFetch(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Populate(ctx, []*Product{product(nil)}))
	cache.Invalidate(ctx)

	_, err := cache.GetAll(ctx)
	assert.Error(t, err)
}

func TestNilCacheIsDisabled(t *testing.T) {
	var cache *Cache

	_, err := cache.GetAll(context.Background())
	assert.Error(t, err)
	assert.NoError(t, cache.Populate(context.Background(), []*Product{product(nil)}))
}
