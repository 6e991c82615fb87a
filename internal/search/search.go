package search

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/product"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// ErrSuperseded is returned to a search replaced by a newer one for the same
// key before it produced results.
var ErrSuperseded = errors.New("search superseded by a newer query")

const (
	defaultDebounce = 500 * time.Millisecond
	defaultLimit    = 20
	cacheSize       = 512
)

type Backend interface {
	SearchProducts(ctx context.Context, keyword string, skip, limit int) ([]product.Product, error)
}

type Options struct {
	Debounce time.Duration
	Limit    int
	CacheTTL time.Duration
}

// Searcher debounces keystroke searches per key (one key per browser
// session). Only the latest call for a key reaches the backend.
type Searcher struct {
	api  Backend
	opts Options

	mu      sync.Mutex
	pending map[string]chan struct{}

	cache *expirable.LRU[string, []product.Product]
}

func NewSearcher(api Backend, opts Options) *Searcher {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	return &Searcher{
		api:     api,
		opts:    opts,
		pending: make(map[string]chan struct{}),
		cache:   expirable.NewLRU[string, []product.Product](cacheSize, nil, opts.CacheTTL),
	}
}

// Search waits out the debounce window unless immediate is set, then queries
// the backend. A newer call for key supersedes this one. An empty query
// clears the results without a request.
func (s *Searcher) Search(ctx context.Context, key, query string, immediate bool) ([]product.Product, error) {
	superseded := s.claim(key)
	defer s.release(key, superseded)

	q := strings.TrimSpace(query)
	if q == "" {
		return []product.Product{}, nil
	}

	if !immediate {
		t := time.NewTimer(s.opts.Debounce)
		defer t.Stop()

		select {
		case <-t.C:
		case <-superseded:
			return nil, ErrSuperseded
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	res, err := s.Page(ctx, q, 0)
	if err != nil {
		return nil, err
	}

	select {
	case <-superseded:
		return nil, ErrSuperseded
	default:
		return res, nil
	}
}

// Page runs one search page without debouncing.
func (s *Searcher) Page(ctx context.Context, query string, skip int) ([]product.Product, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []product.Product{}, nil
	}
	if skip < 0 {
		skip = 0
	}

	cacheKey := strings.ToLower(q) + "|" + strconv.Itoa(skip)
	if res, ok := s.cache.Get(cacheKey); ok {
		return res, nil
	}

	res, err := s.api.SearchProducts(ctx, q, skip, s.opts.Limit)
	if err != nil {
		logger.FromCtx(ctx).Warn("product search failed",
			zap.String("component", "Searcher"),
			zap.String("keyword", q),
			zap.Error(err),
		)
		return nil, err
	}
	if res == nil {
		res = []product.Product{}
	}

	s.cache.Add(cacheKey, res)
	return res, nil
}

func (s *Searcher) claim(key string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.pending[key]; ok {
		close(prev)
	}
	ch := make(chan struct{})
	s.pending[key] = ch
	return ch
}

func (s *Searcher) release(key string, ch chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending[key] == ch {
		delete(s.pending, key)
	}
}
