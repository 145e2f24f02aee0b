package formula

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// RateLookup resolves the exchange rate from one currency to another.
type RateLookup interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

// Catalog returns every endpoint the service exposes. rates backs currency
// conversion; when nil that endpoint always fails with a collaborator error.
func Catalog(rates RateLookup) []Endpoint {
	var eps []Endpoint
	eps = append(eps, mechanics()...)
	eps = append(eps, waves()...)
	eps = append(eps, thermodynamics()...)
	eps = append(eps, conversions()...)
	eps = append(eps, currency(rates))
	return eps
}

var (
	errNoRateService = errors.New("rate service not configured")
	errBadRate       = errors.New("exchange rate is not positive")
)

func currency(rates RateLookup) Endpoint {
	const code = `^[A-Za-z]{3}$`

	return Endpoint{
		Name:        "currency_conversion",
		Title:       "Currency Conversion",
		Category:    Finance,
		Description: "Converts `amount` at the current exchange rate: `converted = amount × rate(from → to)`.",
		Message:     "Conversion failed",
		Variants: Single(Definition{
			Params: []Param{
				Number("amount", "Amount", ""),
				Text("from_currency", "From currency", code),
				Text("to_currency", "To currency", code),
			},
			Preconditions: []Precondition{
				Require("amount >= 0", "amount must not be negative"),
			},
			Lookup: &Lookup{
				Collaborator: "exchange_rates",
				Provides:     []string{"rate"},
				Fetch: func(ctx context.Context, in Inputs) (map[string]float64, error) {
					if rates == nil {
						return nil, errNoRateService
					}
					from := strings.ToUpper(in.Texts["from_currency"])
					to := strings.ToUpper(in.Texts["to_currency"])
					rate, err := rates.Rate(ctx, from, to)
					if err != nil {
						return nil, err
					}
					if !(rate > 0) {
						return nil, fmt.Errorf("%s->%s: %w", from, to, errBadRate)
					}
					return map[string]float64{"rate": rate}, nil
				},
			},
			Outputs: []Output{
				{Name: "exchange_rate", Label: "Exchange rate", Expr: "rate"},
				{Name: "converted", Label: "Converted amount", Expr: "amount * rate", Decimals: 2},
			},
		}),
	}
}
