package utils

import "github.com/shopspring/decimal"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return DecimalToCents(decimal.NewFromFloat(f))
}

// DecimalToCents arredonda um valor monetário para centavos
func DecimalToCents(d decimal.Decimal) float64 {
	value, _ := d.Round(2).Float64()
	return value
}
