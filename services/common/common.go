package common

import (
	"github.com/shopspring/decimal"
)

// ParlayPrice multiplies decimal leg prices into the combined price for the
// slip. Legs without a usable price are skipped rather than zeroing the
// product.
func ParlayPrice(legPrices []float64) float64 {
	product := decimal.NewFromInt(1)
	priced := false

	for _, p := range legPrices {
		if p <= 0 {
			continue
		}
		product = product.Mul(decimal.NewFromFloat(p))
		priced = true
	}

	if !priced {
		return 0
	}
	f, _ := product.Round(4).Float64()
	return f
}

// PotentialPayout returns wager x price rounded to cents.
func PotentialPayout(wager, price float64) float64 {
	v, _ := decimal.NewFromFloat(wager).
		Mul(decimal.NewFromFloat(price)).
		Round(2).
		Float64()
	return v
}

// FormatPrice renders a decimal price the way slips display it.
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).Round(2).StringFixed(2)
}

func Contains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}
