package coingecko

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"marketdata/internal/cache"
)

// CatalogKey is the cache key holding the full coin catalog.
const CatalogKey = "coingecko:catalog"

// DefaultCatalogTTL is how long the catalog is reused before a refresh.
const DefaultCatalogTTL = 6 * time.Hour

// catalogFetchTimeout bounds one shared catalog load.
const catalogFetchTimeout = 30 * time.Second

// wellKnown pins high-volume tickers whose symbol is shared by several
// catalog entries.
var wellKnown = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"USDT": "tether",
	"BNB":  "binancecoin",
	"SOL":  "solana",
	"XRP":  "ripple",
	"ADA":  "cardano",
}

// Resolver maps tickers to CoinGecko coin ids.
type Resolver struct {
	client *Client
	store  cache.Store
	ttl    time.Duration
	group  singleflight.Group
}

// NewResolver returns a resolver that keeps the catalog in store for ttl.
func NewResolver(client *Client, store cache.Store, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &Resolver{client: client, store: store, ttl: ttl}
}

// WellKnownID looks symbol up in the static table only.
func WellKnownID(symbol string) (string, bool) {
	id, ok := wellKnown[strings.ToUpper(strings.TrimSpace(symbol))]
	return id, ok
}

// ResolveID returns the coin id for symbol, or false when nothing matches.
// When several catalog entries share a symbol, the first in catalog order wins.
func (r *Resolver) ResolveID(ctx context.Context, symbol string) (string, bool) {
	if id, ok := WellKnownID(symbol); ok {
		return id, true
	}
	coins, err := r.Catalog(ctx)
	if err != nil {
		logrus.WithFields(logrus.Fields{"symbol": symbol, "err": err}).Warn("coingecko: catalog unavailable, symbol unresolved")
		return "", false
	}

	sym := strings.TrimSpace(symbol)
	var found string
	matches := 0
	for _, c := range coins {
		if strings.EqualFold(c.Symbol, sym) {
			if matches == 0 {
				found = c.ID
			}
			matches++
		}
	}
	if matches > 1 {
		logrus.WithFields(logrus.Fields{"symbol": symbol, "id": found, "matches": matches}).Debug("coingecko: ambiguous symbol, using first catalog match")
	}
	return found, matches > 0
}

// Catalog returns the coin catalog, loading it from upstream when the cached
// copy is missing or expired. Concurrent loads within the process share one
// upstream call, which runs detached from any single caller so one caller
// giving up does not fail the others.
func (r *Resolver) Catalog(ctx context.Context) ([]Coin, error) {
	if coins, ok := cache.GetJSON[[]Coin](ctx, r.store, CatalogKey); ok {
		return coins, nil
	}
	ch := r.group.DoChan(CatalogKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), catalogFetchTimeout)
		defer cancel()
		coins, err := r.client.CoinsList(fetchCtx)
		if err != nil {
			return nil, err
		}
		cache.SetJSON(fetchCtx, r.store, CatalogKey, coins, r.ttl)
		return coins, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Coin), nil
	}
}

// CatalogSize reports how many coins the current catalog holds.
func (r *Resolver) CatalogSize(ctx context.Context) (int, error) {
	coins, err := r.Catalog(ctx)
	if err != nil {
		return 0, err
	}
	return len(coins), nil
}
