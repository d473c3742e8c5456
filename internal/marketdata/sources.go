// Package marketdata composes the upstream providers into price, search and
// trending views, and fronts them with a cache.
package marketdata

import (
    "context"

    "marketdata/internal/provider"
)

//go:generate mockgen -package=marketdata_test -destination=mock_sources_test.go -source=sources.go

// PriceSource is one link in the price fallback chain. TryGetPrice reports
// absence with false; upstream failures never reach the caller.
type PriceSource interface {
    Name() string
    TryGetPrice(ctx context.Context, symbol string) (provider.Quote, bool)
}

// Searcher resolves free text into symbols for one upstream.
type Searcher interface {
    Name() string
    Search(ctx context.Context, query string) ([]provider.SearchResult, error)
}

// TrendingFeed lists currently trending assets and prices them by upstream id.
type TrendingFeed interface {
    Trending(ctx context.Context) ([]provider.TrendingItem, error)
    TryGetPriceByID(ctx context.Context, id, symbol string) (provider.Quote, bool)
}

// CatalogSizer reports the size of the crypto symbol catalog.
type CatalogSizer interface {
    CatalogSize(ctx context.Context) (int, error)
}
