package domain

import "strings"

type Currency string

const (
	CurrencySAR Currency = "SAR"
	CurrencyUSD Currency = "USD"
)

// ParseCurrency accepts the ISO code or the local riyal symbol. Empty means SAR.
func ParseCurrency(raw string) (Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "SAR", "ر.س":
		return CurrencySAR, nil
	case "USD", "$":
		return CurrencyUSD, nil
	default:
		return "", ErrInvalidCurrency
	}
}

func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	default:
		return "ر.س"
	}
}
