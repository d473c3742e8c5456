package marketdata

import (
    "context"

    "github.com/sirupsen/logrus"
    "golang.org/x/sync/errgroup"

    "marketdata/internal/provider"
)

const (
    DefaultTrendingLimit = 10
    DefaultConcurrency   = 4
)

// Watch is one fixed entry appended to the trending view.
type Watch struct {
    Symbol string `mapstructure:"symbol" json:"symbol"`
    Name   string `mapstructure:"name" json:"name"`
}

// DefaultWatchlist is the equity fallback shown after trending crypto.
var DefaultWatchlist = []Watch{
    {Symbol: "AAPL", Name: "Apple Inc."},
    {Symbol: "MSFT", Name: "Microsoft Corporation"},
    {Symbol: "GOOGL", Name: "Alphabet Inc."},
    {Symbol: "AMZN", Name: "Amazon.com Inc."},
    {Symbol: "TSLA", Name: "Tesla Inc."},
}

// Aggregator routes lookups across the providers. It never returns upstream
// errors: absence, empty slices and partial lists are the only outcomes.
type Aggregator struct {
    chain     []PriceSource
    searchers []Searcher

    feed          TrendingFeed
    watchSource   PriceSource
    watchlist     []Watch
    trendingLimit int
    concurrency   int
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithSearchers sets the searchers queried by SearchSymbols. Results keep
// searcher order.
func WithSearchers(s ...Searcher) AggregatorOption {
    return func(a *Aggregator) { a.searchers = s }
}

// WithTrending sets the trending feed and the source used to price the
// watchlist. Either may be nil.
func WithTrending(feed TrendingFeed, watchSource PriceSource) AggregatorOption {
    return func(a *Aggregator) {
        a.feed = feed
        a.watchSource = watchSource
    }
}

// WithWatchlist replaces DefaultWatchlist.
func WithWatchlist(w []Watch) AggregatorOption {
    return func(a *Aggregator) { a.watchlist = w }
}

// WithTrendingLimit caps how many feed entries are priced.
func WithTrendingLimit(n int) AggregatorOption {
    return func(a *Aggregator) {
        if n > 0 {
            a.trendingLimit = n
        }
    }
}

// WithConcurrency bounds parallel upstream lookups during trending.
func WithConcurrency(n int) AggregatorOption {
    return func(a *Aggregator) {
        if n > 0 {
            a.concurrency = n
        }
    }
}

// NewAggregator tries chain in order for every price lookup.
func NewAggregator(chain []PriceSource, opts ...AggregatorOption) *Aggregator {
    a := &Aggregator{
        chain:         chain,
        watchlist:     DefaultWatchlist,
        trendingLimit: DefaultTrendingLimit,
        concurrency:   DefaultConcurrency,
    }
    for _, opt := range opts {
        opt(a)
    }
    return a
}

// GetCurrentPrice returns the first quote any source in the chain produces.
func (a *Aggregator) GetCurrentPrice(ctx context.Context, symbol string) (provider.Quote, bool) {
    sym := provider.CanonicalSymbol(symbol)
    if sym == "" {
        return provider.Quote{}, false
    }
    for _, src := range a.chain {
        if ctx.Err() != nil {
            return provider.Quote{}, false
        }
        if q, ok := src.TryGetPrice(ctx, sym); ok {
            return q, true
        }
        logrus.WithFields(logrus.Fields{"source": src.Name(), "symbol": sym}).Debug("no price, trying next source")
    }
    return provider.Quote{}, false
}

// SearchSymbols queries every searcher concurrently. A failing searcher
// contributes nothing; the rest are still returned.
func (a *Aggregator) SearchSymbols(ctx context.Context, query string) []provider.SearchResult {
    slots := make([][]provider.SearchResult, len(a.searchers))
    var g errgroup.Group
    for i, s := range a.searchers {
        g.Go(func() error {
            res, err := s.Search(ctx, query)
            if err != nil {
                logrus.WithFields(logrus.Fields{"source": s.Name(), "query": query, "err": err}).Warn("search failed")
                return nil
            }
            slots[i] = res
            return nil
        })
    }
    _ = g.Wait()

    out := make([]provider.SearchResult, 0)
    for _, res := range slots {
        out = append(out, res...)
    }
    return out
}

// GetTrendingAssets prices up to trendingLimit feed entries and then the
// watchlist. Order is feed order followed by watchlist order. A feed entry
// whose price lookup fails is kept unpriced with zero figures; a watchlist
// entry whose lookup fails is dropped.
func (a *Aggregator) GetTrendingAssets(ctx context.Context) []provider.TrendingEntry {
    var items []provider.TrendingItem
    if a.feed != nil {
        got, err := a.feed.Trending(ctx)
        if err != nil {
            logrus.WithField("err", err).Warn("trending feed unavailable, using watchlist only")
        } else {
            items = got[:min(len(got), a.trendingLimit)]
        }
    }

    watch := a.watchlist
    if a.watchSource == nil {
        watch = nil
    }

    crypto := make([]provider.TrendingEntry, len(items))
    equities := make([]provider.TrendingEntry, len(watch))

    g := new(errgroup.Group)
    g.SetLimit(a.concurrency)
    for i, it := range items {
        g.Go(func() error {
            q, ok := a.feed.TryGetPriceByID(ctx, it.ID, it.Symbol)
            if !ok {
                q = provider.Quote{Symbol: provider.CanonicalSymbol(it.Symbol)}
            }
            crypto[i] = provider.TrendingEntry{Quote: q, DisplayName: it.Name, Priced: ok}
            return nil
        })
    }
    for i, w := range watch {
        g.Go(func() error {
            q, ok := a.watchSource.TryGetPrice(ctx, w.Symbol)
            if !ok {
                logrus.WithFields(logrus.Fields{"source": a.watchSource.Name(), "symbol": w.Symbol}).Debug("watchlist price unavailable, skipping")
                return nil
            }
            equities[i] = provider.TrendingEntry{Quote: q, DisplayName: w.Name, Priced: true}
            return nil
        })
    }
    _ = g.Wait()

    out := make([]provider.TrendingEntry, 0, len(crypto)+len(equities))
    out = append(out, crypto...)
    for _, e := range equities {
        if e.Priced {
            out = append(out, e)
        }
    }
    return out
}
