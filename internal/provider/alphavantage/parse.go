package alphavantage

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimalOrDefault parses upstream's string-encoded numbers, tolerating
// surrounding spaces and a trailing percent sign. Anything unparseable
// yields def so one bad field never drops the whole quote.
func ParseDecimalOrDefault(text string, def decimal.Decimal) decimal.Decimal {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return def
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return def
	}
	return d
}
