// Package app builds the market data object graph from configuration.
package app

import (
    "context"
    "errors"
    "os"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
    "github.com/sirupsen/logrus"

    "marketdata/internal/cache"
    "marketdata/internal/config"
    "marketdata/internal/httpx"
    "marketdata/internal/marketdata"
    "marketdata/internal/provider/alphavantage"
    "marketdata/internal/provider/coingecko"
    "marketdata/internal/ratelimit"
)

// App owns everything a binary needs to serve market data.
type App struct {
    Config       config.Config
    Store        cache.Store
    CoinGecko    *coingecko.Provider
    AlphaVantage *alphavantage.Provider
    Service      *marketdata.Service

    closers []func() error
}

// SetupLogging configures the standard logrus logger.
func SetupLogging(cfg config.Log) {
    logrus.SetOutput(os.Stderr)
    level, err := logrus.ParseLevel(cfg.Level)
    if err != nil {
        level = logrus.InfoLevel
    }
    logrus.SetLevel(level)
    if strings.EqualFold(cfg.Format, "json") {
        logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
    } else {
        logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
    }
}

// New wires the cache, upstream clients, providers, aggregator and service.
// An unreachable Redis degrades to the in-process cache.
func New(ctx context.Context, cfg config.Config) (*App, error) {
    a := &App{Config: cfg}
    a.Store = a.newStore(ctx, cfg.Cache)

    m := cfg.Market

    cgHTTP := ratelimit.Wrap(
        httpx.New(config.Seconds(cfg.CoinGecko.TimeoutSec)).WithHeaders(cfg.CoinGecko.Headers),
        cfg.CoinGecko.MaxRequestsPerMinute,
        cfg.CoinGecko.Burst,
        config.Seconds(cfg.CoinGecko.MinRequestIntervalSec),
    )
    cgClient := coingecko.NewClient(
        coingecko.WithHTTPClient(cgHTTP),
        coingecko.WithBaseURL(cfg.CoinGecko.BaseURL),
        coingecko.WithAPIKey(cfg.CoinGecko.APIKey),
    )
    resolver := coingecko.NewResolver(cgClient, a.Store, config.Seconds(m.CatalogTTLSec))
    a.CoinGecko = coingecko.NewProvider(cgClient, resolver, coingecko.WithSearchLimit(m.CryptoSearchLimit))

    avHTTP := ratelimit.Wrap(
        httpx.New(config.Seconds(cfg.AlphaVantage.TimeoutSec)).WithHeaders(cfg.AlphaVantage.Headers),
        cfg.AlphaVantage.MaxRequestsPerMinute,
        cfg.AlphaVantage.Burst,
        config.Seconds(cfg.AlphaVantage.MinRequestIntervalSec),
    )
    avClient := alphavantage.NewClient(cfg.AlphaVantage.APIKey,
        alphavantage.WithHTTPClient(avHTTP),
        alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
    )
    a.AlphaVantage = alphavantage.NewProvider(avClient, alphavantage.WithSearchLimit(m.EquitySearchLimit))

    watchlist := make([]marketdata.Watch, 0, len(m.FallbackEquities))
    for _, e := range m.FallbackEquities {
        if strings.TrimSpace(e.Symbol) == "" {
            continue
        }
        watchlist = append(watchlist, marketdata.Watch{Symbol: e.Symbol, Name: e.Name})
    }

    agg := marketdata.NewAggregator(
        []marketdata.PriceSource{a.CoinGecko, a.AlphaVantage},
        marketdata.WithSearchers(a.CoinGecko, a.AlphaVantage),
        marketdata.WithTrending(a.CoinGecko, a.AlphaVantage),
        marketdata.WithWatchlist(watchlist),
        marketdata.WithTrendingLimit(m.TrendingLimit),
        marketdata.WithConcurrency(m.FanoutConcurrency),
    )
    a.Service = marketdata.NewService(agg, a.Store,
        marketdata.WithPriceTTL(config.Seconds(m.PriceTTLSec)),
        marketdata.WithTrendingTTL(config.Seconds(m.TrendingTTLSec)),
        marketdata.WithCatalog(resolver),
    )

    logrus.WithFields(logrus.Fields{
        "cache":       a.CacheBackend(),
        "equities_on": a.AlphaVantage.Enabled(),
        "watchlist":   len(watchlist),
    }).Info("market data service ready")
    return a, nil
}

func (a *App) newStore(ctx context.Context, cfg config.Cache) cache.Store {
    if cfg.Backend != "redis" {
        return cache.NewMemory(cfg.MaxItems)
    }

    client := redis.NewClient(&redis.Options{
        Addr:         cfg.Redis.Addr,
        Password:     cfg.Redis.Password,
        DB:           cfg.Redis.DB,
        PoolSize:     cfg.Redis.PoolSize,
        MinIdleConns: cfg.Redis.MinIdleConns,
        DialTimeout:  config.Seconds(cfg.Redis.DialTimeoutSec),
        ReadTimeout:  config.Seconds(cfg.Redis.ReadTimeoutSec),
        WriteTimeout: config.Seconds(cfg.Redis.WriteTimeoutSec),
    })
    store := cache.NewRedis(client, cfg.KeyPrefix)

    pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()
    if err := store.Ping(pingCtx); err != nil {
        logrus.WithFields(logrus.Fields{"addr": cfg.Redis.Addr, "err": err}).Warn("redis unreachable, using in-process cache")
        _ = client.Close()
        return cache.NewMemory(cfg.MaxItems)
    }
    logrus.WithField("addr", cfg.Redis.Addr).Info("redis connected")
    a.closers = append(a.closers, client.Close)
    return store
}

// CacheBackend names the store actually in use.
func (a *App) CacheBackend() string {
    if _, ok := a.Store.(*cache.Redis); ok {
        return "redis"
    }
    return "memory"
}

// Close releases connections held by the app.
func (a *App) Close() error {
    var errs []error
    for _, c := range a.closers {
        errs = append(errs, c())
    }
    return errors.Join(errs...)
}
