package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Coin is one entry of the full coin catalog.
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// SimplePrice is the USD price block of one coin.
type SimplePrice struct {
	USD       *decimal.Decimal `json:"usd"`
	USDVolume *decimal.Decimal `json:"usd_24h_vol"`
	USDChange *decimal.Decimal `json:"usd_24h_change"`
}

// TrendingCoin is one item of the trending search feed.
type TrendingCoin struct {
	ID            string `json:"id"`
	CoinID        int    `json:"coin_id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"market_cap_rank"`
	Score         int    `json:"score"`
}

// CoinsList retrieves the full catalog of coin id/symbol/name triples.
func (c *Client) CoinsList(ctx context.Context) ([]Coin, error) {
	var coins []Coin
	if err := c.getJSON(ctx, "/coins/list", nil, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// SimplePrices retrieves USD price, 24h volume and 24h change for ids.
func (c *Client) SimplePrices(ctx context.Context, ids []string) (map[string]SimplePrice, error) {
	if len(ids) == 0 {
		return map[string]SimplePrice{}, nil
	}
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", "usd")
	params.Set("include_24hr_vol", "true")
	params.Set("include_24hr_change", "true")

	var body map[string]SimplePrice
	if err := c.getJSON(ctx, "/simple/price", params, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// Trending retrieves the coins currently trending on CoinGecko search.
func (c *Client) Trending(ctx context.Context) ([]TrendingCoin, error) {
	var body struct {
		Coins []struct {
			Item *TrendingCoin `json:"item"`
		} `json:"coins"`
	}
	if err := c.getJSON(ctx, "/search/trending", nil, &body); err != nil {
		return nil, err
	}
	out := make([]TrendingCoin, 0, len(body.Coins))
	for i, entry := range body.Coins {
		if entry.Item == nil {
			return nil, fmt.Errorf("%w: coins[%d].item", ErrMissingField, i)
		}
		out = append(out, *entry.Item)
	}
	return out, nil
}
