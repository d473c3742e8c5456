package coingecko

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"marketdata/internal/provider"
)

// SourceName is reported on every quote and search result from this package.
const SourceName = "CoinGecko"

// DefaultSearchLimit caps crypto search results.
const DefaultSearchLimit = 10

// Provider is the crypto price source.
type Provider struct {
	client      *Client
	resolver    *Resolver
	searchLimit int
	now         func() time.Time
}

// Option tweaks a Provider.
type Option func(*Provider)

// WithSearchLimit caps the number of search results.
func WithSearchLimit(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.searchLimit = n
		}
	}
}

// WithClock overrides the clock used for quote timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func NewProvider(client *Client, resolver *Resolver, opts ...Option) *Provider {
	p := &Provider{client: client, resolver: resolver, searchLimit: DefaultSearchLimit, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return SourceName }

// Resolver exposes the symbol resolver backing this provider.
func (p *Provider) Resolver() *Resolver { return p.resolver }

// TryGetPrice resolves symbol to a coin id and fetches its USD quote.
func (p *Provider) TryGetPrice(ctx context.Context, symbol string) (provider.Quote, bool) {
	id, ok := p.resolver.ResolveID(ctx, symbol)
	if !ok {
		return provider.Quote{}, false
	}
	return p.TryGetPriceByID(ctx, id, symbol)
}

// TryGetPriceByID fetches the USD quote for a known coin id and labels it symbol.
func (p *Provider) TryGetPriceByID(ctx context.Context, id, symbol string) (provider.Quote, bool) {
	prices, err := p.client.SimplePrices(ctx, []string{id})
	if err != nil {
		logrus.WithFields(logrus.Fields{"source": SourceName, "symbol": symbol, "id": id, "err": err}).Warn("price lookup failed")
		return provider.Quote{}, false
	}
	sp, ok := prices[id]
	if !ok || sp.USD == nil || sp.USDVolume == nil || sp.USDChange == nil {
		logrus.WithFields(logrus.Fields{"source": SourceName, "symbol": symbol, "id": id}).Debug("incomplete usd quote in response")
		return provider.Quote{}, false
	}
	return provider.NewQuote(symbol, *sp.USD, *sp.USDChange, *sp.USDVolume, p.now(), SourceName), true
}

// Search matches query against the catalog: substring of the name or exact
// symbol, case-insensitive, in catalog order.
func (p *Provider) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	coins, err := p.resolver.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]provider.SearchResult, 0, p.searchLimit)
	for _, c := range coins {
		if len(out) >= p.searchLimit {
			break
		}
		if strings.Contains(strings.ToLower(c.Name), q) || strings.EqualFold(c.Symbol, q) {
			out = append(out, provider.SearchResult{
				Symbol:      provider.CanonicalSymbol(c.Symbol),
				DisplayName: c.Name,
				AssetClass:  provider.AssetClassCrypto,
				Exchange:    SourceName,
			})
		}
	}
	return out, nil
}

// Trending returns the upstream trending feed in feed order.
func (p *Provider) Trending(ctx context.Context) ([]provider.TrendingItem, error) {
	coins, err := p.client.Trending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]provider.TrendingItem, 0, len(coins))
	for _, c := range coins {
		out = append(out, provider.TrendingItem{ID: c.ID, Symbol: provider.CanonicalSymbol(c.Symbol), Name: c.Name})
	}
	return out, nil
}
