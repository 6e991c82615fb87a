package product

import (
	"context"
	"sync"
	"time"

	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/logger"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultCatalogSize = 1024
	lookupConcurrency  = 8
)

// Fetcher loads a single product from the backend.
type Fetcher interface {
	GetProduct(ctx context.Context, sess auth.Session, id string) (*Product, error)
}

// Catalog is a read-through product cache shared by every mounted view.
type Catalog struct {
	fetcher Fetcher
	cache   *expirable.LRU[string, *Product]
}

func NewCatalog(fetcher Fetcher, ttl time.Duration) *Catalog {
	return &Catalog{
		fetcher: fetcher,
		cache:   expirable.NewLRU[string, *Product](defaultCatalogSize, nil, ttl),
	}
}

func (c *Catalog) Get(ctx context.Context, sess auth.Session, id string) (*Product, error) {
	if id == "" {
		return nil, ErrProductIDRequired
	}
	if p, ok := c.cache.Get(id); ok {
		return p, nil
	}

	p, err := c.fetcher.GetProduct(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	c.cache.Add(id, p)
	return p, nil
}

// GetMany looks up every distinct id once, concurrently. Failed lookups are
// logged and left out of the result so one bad product does not blank the cart.
func (c *Catalog) GetMany(ctx context.Context, sess auth.Session, ids []string) map[string]*Product {
	log := logger.FromCtx(ctx).With(
		zap.String("component", "Catalog"),
		zap.String("method", "GetMany"),
	)

	var (
		mu  sync.Mutex
		out = make(map[string]*Product, len(ids))
	)

	seen := make(map[string]struct{}, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)

	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		id := id
		g.Go(func() error {
			p, err := c.Get(gctx, sess, id)
			if err != nil {
				log.Warn("product lookup failed", zap.String("product_id", id), zap.Error(err))
				return nil
			}
			mu.Lock()
			out[id] = p
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Purge drops every cached product.
func (c *Catalog) Purge() {
	c.cache.Purge()
}
