package marketdata

import (
    "context"
    "errors"
    "time"

    "github.com/sirupsen/logrus"

    "marketdata/internal/cache"
    "marketdata/internal/provider"
)

const (
    DefaultPriceTTL    = 5 * time.Minute
    DefaultTrendingTTL = 30 * time.Minute

    // TrendingKey holds the last non-empty trending view.
    TrendingKey = "trending"
)

// ErrNoCatalog is returned by CatalogSize when no catalog source is wired.
var ErrNoCatalog = errors.New("no catalog source configured")

// PriceKey is the cache key for a symbol's quote.
func PriceKey(symbol string) string { return "price:" + provider.CanonicalSymbol(symbol) }

// Service is the cache-aside front of an Aggregator. Prices and non-empty
// trending views are cached; search always goes upstream. Absent results are
// never cached.
type Service struct {
    agg         *Aggregator
    store       cache.Store
    catalog     CatalogSizer
    priceTTL    time.Duration
    trendingTTL time.Duration
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPriceTTL sets how long quotes stay cached.
func WithPriceTTL(d time.Duration) ServiceOption {
    return func(s *Service) {
        if d > 0 {
            s.priceTTL = d
        }
    }
}

// WithTrendingTTL sets how long a trending view stays cached.
func WithTrendingTTL(d time.Duration) ServiceOption {
    return func(s *Service) {
        if d > 0 {
            s.trendingTTL = d
        }
    }
}

// WithCatalog wires the source behind CatalogSize.
func WithCatalog(c CatalogSizer) ServiceOption {
    return func(s *Service) { s.catalog = c }
}

func NewService(agg *Aggregator, store cache.Store, opts ...ServiceOption) *Service {
    s := &Service{
        agg:         agg,
        store:       store,
        priceTTL:    DefaultPriceTTL,
        trendingTTL: DefaultTrendingTTL,
    }
    for _, opt := range opts {
        opt(s)
    }
    return s
}

// GetCurrentPrice returns the cached quote for symbol or looks it up.
func (s *Service) GetCurrentPrice(ctx context.Context, symbol string) (provider.Quote, bool) {
    key := PriceKey(symbol)
    if q, ok := cache.GetJSON[provider.Quote](ctx, s.store, key); ok {
        return q, true
    }
    q, ok := s.agg.GetCurrentPrice(ctx, symbol)
    if !ok {
        return provider.Quote{}, false
    }
    if ctx.Err() == nil {
        cache.SetJSON(ctx, s.store, key, q, s.priceTTL)
    }
    return q, true
}

// SearchSymbols is never cached.
func (s *Service) SearchSymbols(ctx context.Context, query string) []provider.SearchResult {
    return s.agg.SearchSymbols(ctx, query)
}

// GetTrendingAssets returns the cached trending view or builds one.
func (s *Service) GetTrendingAssets(ctx context.Context) []provider.TrendingEntry {
    if entries, ok := cache.GetJSON[[]provider.TrendingEntry](ctx, s.store, TrendingKey); ok {
        return entries
    }
    entries := s.agg.GetTrendingAssets(ctx)
    if len(entries) > 0 && ctx.Err() == nil {
        cache.SetJSON(ctx, s.store, TrendingKey, entries, s.trendingTTL)
    }
    return entries
}

// Invalidate drops the cached quote for symbol.
func (s *Service) Invalidate(ctx context.Context, symbol string) {
    key := PriceKey(symbol)
    s.store.Remove(ctx, key)
    logrus.WithField("key", key).Info("cache entry invalidated")
}

// CatalogSize reports how many coins the crypto catalog holds.
func (s *Service) CatalogSize(ctx context.Context) (int, error) {
    if s.catalog == nil {
        return 0, ErrNoCatalog
    }
    return s.catalog.CatalogSize(ctx)
}
