package config

import (
    "errors"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/spf13/viper"
)

type Server struct {
    Port              string `mapstructure:"port"`
    RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
}

type Log struct {
    Level  string `mapstructure:"level"`
    Format string `mapstructure:"format"` // "text" or "json"
}

type Redis struct {
    Addr            string `mapstructure:"addr"`
    Password        string `mapstructure:"password"`
    DB              int    `mapstructure:"db"`
    PoolSize        int    `mapstructure:"pool_size"`
    MinIdleConns    int    `mapstructure:"min_idle_conns"`
    DialTimeoutSec  int    `mapstructure:"dial_timeout_sec"`
    ReadTimeoutSec  int    `mapstructure:"read_timeout_sec"`
    WriteTimeoutSec int    `mapstructure:"write_timeout_sec"`
}

type Cache struct {
    Backend   string `mapstructure:"backend"` // "memory" or "redis"
    MaxItems  int    `mapstructure:"max_items"`
    KeyPrefix string `mapstructure:"key_prefix"`
    Redis     Redis  `mapstructure:"redis"`
}

// Upstream holds connection and pacing settings for one provider.
type Upstream struct {
    BaseURL               string `mapstructure:"base_url"`
    APIKey                string `mapstructure:"api_key"`
    MaxRequestsPerMinute  int    `mapstructure:"max_requests_per_minute"`
    Burst                 int    `mapstructure:"burst"`
    MinRequestIntervalSec int    `mapstructure:"min_request_interval_sec"`
    TimeoutSec            int    `mapstructure:"timeout_sec"`

    // Headers are sent on every request to this upstream unless the request sets them.
    Headers map[string]string `mapstructure:"headers"`
}

type Equity struct {
    Symbol string `mapstructure:"symbol"`
    Name   string `mapstructure:"name"`
}

type Market struct {
    PriceTTLSec       int      `mapstructure:"price_ttl_sec"`
    TrendingTTLSec    int      `mapstructure:"trending_ttl_sec"`
    CatalogTTLSec     int      `mapstructure:"catalog_ttl_sec"`
    TrendingLimit     int      `mapstructure:"trending_limit"`
    CryptoSearchLimit int      `mapstructure:"crypto_search_limit"`
    EquitySearchLimit int      `mapstructure:"equity_search_limit"`
    FanoutConcurrency int      `mapstructure:"fanout_concurrency"`
    FallbackEquities  []Equity `mapstructure:"fallback_equities"`
}

type Config struct {
    Server       Server   `mapstructure:"server"`
    Log          Log      `mapstructure:"log"`
    Cache        Cache    `mapstructure:"cache"`
    CoinGecko    Upstream `mapstructure:"coingecko"`
    AlphaVantage Upstream `mapstructure:"alphavantage"`
    Market       Market   `mapstructure:"market"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "8080", RequestTimeoutSec: 15},
        Log:    Log{Level: "info", Format: "text"},
        Cache: Cache{
            Backend:   "memory",
            MaxItems:  10000,
            KeyPrefix: "marketdata:",
            Redis: Redis{
                Addr:            "localhost:6379",
                PoolSize:        10,
                MinIdleConns:    2,
                DialTimeoutSec:  5,
                ReadTimeoutSec:  3,
                WriteTimeoutSec: 3,
            },
        },
        CoinGecko: Upstream{
            BaseURL:              "https://api.coingecko.com/api/v3",
            MaxRequestsPerMinute: 30,
            Burst:                5,
            TimeoutSec:           10,
        },
        AlphaVantage: Upstream{
            BaseURL:              "https://www.alphavantage.co",
            MaxRequestsPerMinute: 5,
            Burst:                5,
            TimeoutSec:           10,
        },
        Market: Market{
            PriceTTLSec:       300,
            TrendingTTLSec:    1800,
            CatalogTTLSec:     21600,
            TrendingLimit:     10,
            CryptoSearchLimit: 10,
            EquitySearchLimit: 20,
            FanoutConcurrency: 4,
            FallbackEquities: []Equity{
                {Symbol: "AAPL", Name: "Apple Inc."},
                {Symbol: "MSFT", Name: "Microsoft Corporation"},
                {Symbol: "GOOGL", Name: "Alphabet Inc."},
                {Symbol: "AMZN", Name: "Amazon.com Inc."},
                {Symbol: "TSLA", Name: "Tesla Inc."},
            },
        },
    }
}

// Load reads configuration from path, or from CONFIG_FILE, or from
// ./config.yaml / ./config/config.yaml when either exists. A missing file in
// the search paths is not an error; an explicit path that cannot be read is.
// MARKETDATA_<SECTION>_<KEY> env vars override file values, and a few
// well-known env vars override those.
func Load(path string) (Config, error) {
    v := viper.New()
    setDefaults(v)

    if path == "" {
        path = os.Getenv("CONFIG_FILE")
    }
    if path != "" {
        v.SetConfigFile(path)
    } else {
        v.SetConfigName("config")
        v.SetConfigType("yaml")
        v.AddConfigPath(".")
        v.AddConfigPath("./config")
    }

    v.SetEnvPrefix("MARKETDATA")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    if err := v.ReadInConfig(); err != nil {
        var notFound viper.ConfigFileNotFoundError
        if path != "" || !errors.As(err, &notFound) {
            return Default(), fmt.Errorf("read config: %w", err)
        }
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return Default(), fmt.Errorf("parse config: %w", err)
    }
    applyEnv(&cfg)
    normalize(&cfg)
    return cfg, nil
}

func setDefaults(v *viper.Viper) {
    d := Default()

    v.SetDefault("server.port", d.Server.Port)
    v.SetDefault("server.request_timeout_sec", d.Server.RequestTimeoutSec)

    v.SetDefault("log.level", d.Log.Level)
    v.SetDefault("log.format", d.Log.Format)

    v.SetDefault("cache.backend", d.Cache.Backend)
    v.SetDefault("cache.max_items", d.Cache.MaxItems)
    v.SetDefault("cache.key_prefix", d.Cache.KeyPrefix)
    v.SetDefault("cache.redis.addr", d.Cache.Redis.Addr)
    v.SetDefault("cache.redis.password", d.Cache.Redis.Password)
    v.SetDefault("cache.redis.db", d.Cache.Redis.DB)
    v.SetDefault("cache.redis.pool_size", d.Cache.Redis.PoolSize)
    v.SetDefault("cache.redis.min_idle_conns", d.Cache.Redis.MinIdleConns)
    v.SetDefault("cache.redis.dial_timeout_sec", d.Cache.Redis.DialTimeoutSec)
    v.SetDefault("cache.redis.read_timeout_sec", d.Cache.Redis.ReadTimeoutSec)
    v.SetDefault("cache.redis.write_timeout_sec", d.Cache.Redis.WriteTimeoutSec)

    for name, u := range map[string]Upstream{"coingecko": d.CoinGecko, "alphavantage": d.AlphaVantage} {
        v.SetDefault(name+".base_url", u.BaseURL)
        v.SetDefault(name+".api_key", u.APIKey)
        v.SetDefault(name+".max_requests_per_minute", u.MaxRequestsPerMinute)
        v.SetDefault(name+".burst", u.Burst)
        v.SetDefault(name+".min_request_interval_sec", u.MinRequestIntervalSec)
        v.SetDefault(name+".timeout_sec", u.TimeoutSec)
    }

    v.SetDefault("market.price_ttl_sec", d.Market.PriceTTLSec)
    v.SetDefault("market.trending_ttl_sec", d.Market.TrendingTTLSec)
    v.SetDefault("market.catalog_ttl_sec", d.Market.CatalogTTLSec)
    v.SetDefault("market.trending_limit", d.Market.TrendingLimit)
    v.SetDefault("market.crypto_search_limit", d.Market.CryptoSearchLimit)
    v.SetDefault("market.equity_search_limit", d.Market.EquitySearchLimit)
    v.SetDefault("market.fanout_concurrency", d.Market.FanoutConcurrency)
    equities := make([]map[string]any, 0, len(d.Market.FallbackEquities))
    for _, e := range d.Market.FallbackEquities {
        equities = append(equities, map[string]any{"symbol": e.Symbol, "name": e.Name})
    }
    v.SetDefault("market.fallback_equities", equities)
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("COINGECKO_API_KEY"); v != "" { cfg.CoinGecko.APIKey = v }
    if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" { cfg.AlphaVantage.APIKey = v }
    if v := os.Getenv("REDIS_ADDR"); v != "" { cfg.Cache.Redis.Addr = v }
    if v := os.Getenv("REDIS_PASSWORD"); v != "" { cfg.Cache.Redis.Password = v }
    if v := os.Getenv("CACHE_BACKEND"); v != "" { cfg.Cache.Backend = v }
}

// normalize replaces out-of-range values with defaults.
func normalize(cfg *Config) {
    d := Default()
    cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
    if cfg.Cache.Backend != "redis" { cfg.Cache.Backend = "memory" }
    if cfg.Server.Port == "" { cfg.Server.Port = d.Server.Port }
    if cfg.Server.RequestTimeoutSec <= 0 { cfg.Server.RequestTimeoutSec = d.Server.RequestTimeoutSec }

    m := &cfg.Market
    if m.PriceTTLSec <= 0 { m.PriceTTLSec = d.Market.PriceTTLSec }
    if m.TrendingTTLSec <= 0 { m.TrendingTTLSec = d.Market.TrendingTTLSec }
    if m.CatalogTTLSec <= 0 { m.CatalogTTLSec = d.Market.CatalogTTLSec }
    if m.TrendingLimit <= 0 { m.TrendingLimit = d.Market.TrendingLimit }
    if m.CryptoSearchLimit <= 0 { m.CryptoSearchLimit = d.Market.CryptoSearchLimit }
    if m.EquitySearchLimit <= 0 { m.EquitySearchLimit = d.Market.EquitySearchLimit }
    if m.FanoutConcurrency <= 0 { m.FanoutConcurrency = d.Market.FanoutConcurrency }
}

// Seconds converts a config second count to a duration.
func Seconds(n int) time.Duration { return time.Duration(n) * time.Second }
