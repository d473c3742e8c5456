package alphavantage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"marketdata/internal/provider"
)

// SourceName is reported on every quote from this package.
const SourceName = "AlphaVantage"

// DefaultSearchLimit caps equity search results.
const DefaultSearchLimit = 20

// Provider is the equity price source. Without an API key it is permanently
// absent: TryGetPrice reports false and Search returns nothing.
type Provider struct {
	client      *Client
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

func NewProvider(client *Client, opts ...Option) *Provider {
	p := &Provider{client: client, searchLimit: DefaultSearchLimit, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if !client.HasKey() {
		logrus.WithField("source", SourceName).Warn("no API key configured, equity prices and search disabled")
	}
	return p
}

func (p *Provider) Name() string { return SourceName }

// Enabled reports whether the provider can reach upstream at all.
func (p *Provider) Enabled() bool { return p.client.HasKey() }

// TryGetPrice fetches the latest quote for an exact symbol.
func (p *Provider) TryGetPrice(ctx context.Context, symbol string) (provider.Quote, bool) {
	if !p.Enabled() {
		return provider.Quote{}, false
	}
	gq, err := p.client.GlobalQuote(ctx, provider.CanonicalSymbol(symbol))
	if err != nil {
		entry := logrus.WithFields(logrus.Fields{"source": SourceName, "symbol": symbol, "err": err})
		if errors.Is(err, ErrNoQuote) {
			entry.Debug("no quote for symbol")
		} else {
			entry.Warn("price lookup failed")
		}
		return provider.Quote{}, false
	}

	sym := gq.Symbol
	if strings.TrimSpace(sym) == "" {
		sym = symbol
	}
	return provider.NewQuoteWithPercent(
		sym,
		ParseDecimalOrDefault(gq.Price, decimal.Zero),
		ParseDecimalOrDefault(gq.Change, decimal.Zero),
		ParseDecimalOrDefault(gq.ChangePercent, decimal.Zero),
		ParseDecimalOrDefault(gq.Volume, decimal.Zero),
		p.now(),
		SourceName,
	), true
}

// Search delegates to upstream symbol search, keeping upstream order.
func (p *Provider) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	if !p.Enabled() {
		return nil, nil
	}
	matches, err := p.client.SymbolSearch(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	n := min(len(matches), p.searchLimit)
	out := make([]provider.SearchResult, 0, n)
	for _, m := range matches[:n] {
		out = append(out, provider.SearchResult{
			Symbol:      provider.CanonicalSymbol(m.Symbol),
			DisplayName: m.Name,
			AssetClass:  provider.AssetClassStock,
			Exchange:    m.Region,
		})
	}
	return out, nil
}
