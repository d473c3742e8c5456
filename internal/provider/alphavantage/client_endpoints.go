package alphavantage

import (
	"context"
	"net/url"
)

// GlobalQuote is the raw quote object. Every field is a string upstream.
type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

// Match is one best match from symbol search.
type Match struct {
	Symbol      string `json:"1. symbol"`
	Name        string `json:"2. name"`
	Type        string `json:"3. type"`
	Region      string `json:"4. region"`
	MarketOpen  string `json:"5. marketOpen"`
	MarketClose string `json:"6. marketClose"`
	Timezone    string `json:"7. timezone"`
	Currency    string `json:"8. currency"`
	MatchScore  string `json:"9. matchScore"`
}

// GlobalQuote retrieves the latest quote for an exact symbol. An absent or
// empty quote object yields ErrNoQuote.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (*GlobalQuote, error) {
	var body struct {
		Quote *GlobalQuote `json:"Global Quote"`
	}
	if err := c.get(ctx, "GLOBAL_QUOTE", url.Values{"symbol": []string{symbol}}, &body); err != nil {
		return nil, err
	}
	if body.Quote == nil || *body.Quote == (GlobalQuote{}) {
		return nil, ErrNoQuote
	}
	return body.Quote, nil
}

// SymbolSearch retrieves best matches for keywords in upstream order.
func (c *Client) SymbolSearch(ctx context.Context, keywords string) ([]Match, error) {
	var body struct {
		BestMatches []Match `json:"bestMatches"`
	}
	if err := c.get(ctx, "SYMBOL_SEARCH", url.Values{"keywords": []string{keywords}}, &body); err != nil {
		return nil, err
	}
	return body.BestMatches, nil
}
