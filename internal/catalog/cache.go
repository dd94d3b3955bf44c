package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stylesphere/storefront/internal/domain"
)

// CachedStore wraps a Store with a cache-aside layer over Redis for the
// read-heavy product detail endpoint. Cache failures degrade to the
// database; the catalog never goes down because Redis did.
type CachedStore struct {
	store  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(store Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{store: store, client: client, ttl: ttl, logger: logger}
}

func (c *CachedStore) CategoryTree(ctx context.Context) ([]*domain.CategoryNode, error) {
	return c.store.CategoryTree(ctx)
}

func (c *CachedStore) Sizes(ctx context.Context) ([]domain.Size, error) {
	return c.store.Sizes(ctx)
}

func (c *CachedStore) Products(ctx context.Context, filter ProductFilter) ([]domain.ProductSummary, error) {
	return c.store.Products(ctx, filter)
}

func (c *CachedStore) ProductByID(ctx context.Context, productID string) (*domain.ProductDetail, error) {
	key := "product:" + productID

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var detail domain.ProductDetail
		if err := json.Unmarshal([]byte(cached), &detail); err == nil {
			return &detail, nil
		}
		// Unreadable entry; fall through and overwrite it.
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("product cache read failed", "error", err, "product_id", productID)
	}

	detail, err := c.store.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(detail)
	if err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("product cache write failed", "error", err, "product_id", productID)
		}
	}

	return detail, nil
}
