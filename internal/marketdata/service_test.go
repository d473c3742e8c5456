package marketdata_test

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
    "go.uber.org/mock/gomock"

    "marketdata/internal/cache"
    "marketdata/internal/marketdata"
    "marketdata/internal/provider"
)

type fakeClock struct {
    mu sync.Mutex
    t  time.Time
}

func (c *fakeClock) Now() time.Time { c.mu.Lock(); defer c.mu.Unlock(); return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.mu.Lock(); c.t = c.t.Add(d); c.mu.Unlock() }

func newStore() (*cache.Memory, *fakeClock) {
    clock := &fakeClock{t: asOf}
    store := cache.NewMemory(0)
    store.Now = clock.Now
    return store, clock
}

func TestService_PriceCacheAside(t *testing.T) {
    t.Parallel()

    // Arrange: the source is hit once per TTL window
    ctrl := gomock.NewController(t)
    src := namedSource(ctrl, "crypto")
    src.EXPECT().TryGetPrice(gomock.Any(), "BTC").Return(quote("BTC", 50000, "crypto"), true).Times(2)

    store, clock := newStore()
    svc := marketdata.NewService(marketdata.NewAggregator([]marketdata.PriceSource{src}), store)

    // Act: first lookup fills, second is served from cache
    first, ok := svc.GetCurrentPrice(t.Context(), "btc")
    require.True(t, ok)
    clock.Advance(4 * time.Minute)
    second, ok := svc.GetCurrentPrice(t.Context(), "BTC")
    require.True(t, ok)

    // Assert
    require.Equal(t, first.CurrentPrice.String(), second.CurrentPrice.String())
    require.Equal(t, first.PercentChange24h.String(), second.PercentChange24h.String())
    require.True(t, first.AsOf.Equal(second.AsOf))

    // Act: past the TTL the source is asked again
    clock.Advance(time.Minute + time.Second)
    _, ok = svc.GetCurrentPrice(t.Context(), "BTC")
    require.True(t, ok)
}

func TestService_NotFoundIsNeverCached(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    src := namedSource(ctrl, "crypto")
    src.EXPECT().TryGetPrice(gomock.Any(), "NOPE").Return(provider.Quote{}, false).Times(2)

    store, _ := newStore()
    svc := marketdata.NewService(marketdata.NewAggregator([]marketdata.PriceSource{src}), store)

    for range 2 {
        _, ok := svc.GetCurrentPrice(t.Context(), "nope")
        require.False(t, ok)
    }
    require.Zero(t, store.Len())
}

func TestService_CanceledLookupIsNotCached(t *testing.T) {
    t.Parallel()

    ctx, cancel := context.WithCancel(t.Context())

    ctrl := gomock.NewController(t)
    src := namedSource(ctrl, "crypto")
    src.EXPECT().TryGetPrice(gomock.Any(), "ETH").
        DoAndReturn(func(context.Context, string) (provider.Quote, bool) {
            cancel()
            return quote("ETH", 3000, "crypto"), true
        })

    store, _ := newStore()
    svc := marketdata.NewService(marketdata.NewAggregator([]marketdata.PriceSource{src}), store)

    _, ok := svc.GetCurrentPrice(ctx, "ETH")
    require.True(t, ok)
    _, ok = store.Get(t.Context(), marketdata.PriceKey("eth"))
    require.False(t, ok)
}

func TestService_Invalidate(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    src := namedSource(ctrl, "crypto")
    src.EXPECT().TryGetPrice(gomock.Any(), "SOL").Return(quote("SOL", 140, "crypto"), true).Times(2)

    store, _ := newStore()
    svc := marketdata.NewService(marketdata.NewAggregator([]marketdata.PriceSource{src}), store)

    _, _ = svc.GetCurrentPrice(t.Context(), "SOL")
    _, ok := store.Get(t.Context(), "price:SOL")
    require.True(t, ok)

    svc.Invalidate(t.Context(), "sol")
    _, ok = store.Get(t.Context(), "price:SOL")
    require.False(t, ok)

    _, _ = svc.GetCurrentPrice(t.Context(), "SOL")
}

func TestService_TrendingCachedOnlyWhenNonEmpty(t *testing.T) {
    t.Parallel()

    // Arrange: first build is empty, second has one entry
    ctrl := gomock.NewController(t)
    feed := NewMockTrendingFeed(ctrl)
    gomock.InOrder(
        feed.EXPECT().Trending(gomock.Any()).Return(nil, errors.New("down")),
        feed.EXPECT().Trending(gomock.Any()).Return([]provider.TrendingItem{{ID: "pepe", Symbol: "PEPE", Name: "Pepe"}}, nil),
    )
    feed.EXPECT().TryGetPriceByID(gomock.Any(), "pepe", "PEPE").Return(quote("PEPE", 1, "crypto"), true)

    store, clock := newStore()
    agg := marketdata.NewAggregator(nil, marketdata.WithTrending(feed, nil))
    svc := marketdata.NewService(agg, store)

    // Act + Assert: empty view is not cached
    require.Empty(t, svc.GetTrendingAssets(t.Context()))
    _, ok := store.Get(t.Context(), marketdata.TrendingKey)
    require.False(t, ok)

    // Act + Assert: non-empty view is cached for the trending TTL
    got := svc.GetTrendingAssets(t.Context())
    require.Len(t, got, 1)
    clock.Advance(29 * time.Minute)
    cached := svc.GetTrendingAssets(t.Context())
    require.Len(t, cached, 1)
    require.Equal(t, "Pepe", cached[0].DisplayName)
    require.Equal(t, "PEPE", cached[0].Symbol)
}

func TestService_SearchIsNeverCached(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    s := NewMockSearcher(ctrl)
    s.EXPECT().Search(gomock.Any(), "doge").Return([]provider.SearchResult{{Symbol: "DOGE"}}, nil).Times(2)

    store, _ := newStore()
    svc := marketdata.NewService(marketdata.NewAggregator(nil, marketdata.WithSearchers(s)), store)

    require.Len(t, svc.SearchSymbols(t.Context(), "doge"), 1)
    require.Len(t, svc.SearchSymbols(t.Context(), "doge"), 1)
    require.Zero(t, store.Len())
}

func TestService_CatalogSize(t *testing.T) {
    t.Parallel()

    store, _ := newStore()
    _, err := marketdata.NewService(marketdata.NewAggregator(nil), store).CatalogSize(t.Context())
    require.ErrorIs(t, err, marketdata.ErrNoCatalog)

    ctrl := gomock.NewController(t)
    catalog := NewMockCatalogSizer(ctrl)
    catalog.EXPECT().CatalogSize(gomock.Any()).Return(13000, nil)

    n, err := marketdata.NewService(marketdata.NewAggregator(nil), store, marketdata.WithCatalog(catalog)).CatalogSize(t.Context())
    require.NoError(t, err)
    require.Equal(t, 13000, n)
}

func TestService_CustomTTL(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    src := namedSource(ctrl, "crypto")
    src.EXPECT().TryGetPrice(gomock.Any(), "ADA").Return(quote("ADA", 1, "crypto"), true).Times(2)

    store, clock := newStore()
    svc := marketdata.NewService(marketdata.NewAggregator([]marketdata.PriceSource{src}), store, marketdata.WithPriceTTL(time.Minute))

    _, _ = svc.GetCurrentPrice(t.Context(), "ADA")
    clock.Advance(61 * time.Second)
    _, _ = svc.GetCurrentPrice(t.Context(), "ADA")
}
