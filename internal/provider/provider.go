package provider

import (
    "strings"
    "time"

    "github.com/shopspring/decimal"
)

// AssetClass tells which kind of upstream a symbol belongs to.
type AssetClass string

const (
    AssetClassCrypto AssetClass = "Crypto"
    AssetClassStock  AssetClass = "Stock"
)

var hundred = decimal.NewFromInt(100)

// Quote is the normalized price record returned by all price sources.
// Values are never mutated after construction; every lookup builds a new one.
type Quote struct {
    Symbol            string          `json:"symbol"`
    CurrentPrice      decimal.Decimal `json:"current_price"`
    AbsoluteChange24h decimal.Decimal `json:"absolute_change_24h"`
    PercentChange24h  decimal.Decimal `json:"percent_change_24h"`
    Volume24h         decimal.Decimal `json:"volume_24h"`
    AsOf              time.Time       `json:"as_of"`
    Source            string          `json:"source"`
}

// NewQuote builds a Quote whose percent change is derived from the absolute
// change: change / price * 100, or zero when price is zero.
func NewQuote(symbol string, price, change, volume decimal.Decimal, asOf time.Time, source string) Quote {
    return NewQuoteWithPercent(symbol, price, change, PercentOf(change, price), volume, asOf, source)
}

// NewQuoteWithPercent builds a Quote using the percent change as reported upstream.
func NewQuoteWithPercent(symbol string, price, change, percent, volume decimal.Decimal, asOf time.Time, source string) Quote {
    return Quote{
        Symbol:            CanonicalSymbol(symbol),
        CurrentPrice:      price,
        AbsoluteChange24h: change,
        PercentChange24h:  percent,
        Volume24h:         volume,
        AsOf:              asOf.UTC(),
        Source:            source,
    }
}

// PercentOf returns change/price*100, guarding division by zero.
func PercentOf(change, price decimal.Decimal) decimal.Decimal {
    if price.IsZero() {
        return decimal.Zero
    }
    return change.Div(price).Mul(hundred)
}

// CanonicalSymbol trims and upper-cases a ticker.
func CanonicalSymbol(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// SearchResult is one match from a symbol search.
type SearchResult struct {
    Symbol      string     `json:"symbol"`
    DisplayName string     `json:"display_name"`
    AssetClass  AssetClass `json:"asset_class"`
    Exchange    string     `json:"exchange"`
}

// TrendingEntry is a quote enriched with a display name. Priced is false when
// the entry is listed without a quote and its figures are all zero.
type TrendingEntry struct {
    Quote
    DisplayName string `json:"display_name"`
    Priced      bool   `json:"priced"`
}

// TrendingItem is one entry of an upstream "currently trending" feed.
type TrendingItem struct {
    ID     string `json:"id"`
    Symbol string `json:"symbol"`
    Name   string `json:"name"`
}
