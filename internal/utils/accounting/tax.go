package accounting

import "github.com/shopspring/decimal"

// taxScale is the minor-unit precision for THB-style reporting.
const taxScale = 2

var hundred = decimal.NewFromInt(100)

// CalculateWHT computes the withholding tax amount for a base amount and a
// percentage rate, rounded half-up to the currency's minor unit. These amounts
// feed legal tax filings, so the arithmetic stays in exact decimals end to end.
func CalculateWHT(baseAmount, rate decimal.Decimal) decimal.Decimal {
	return baseAmount.Mul(rate).Div(hundred).Round(taxScale)
}

// CalculateVAT computes the VAT amount for a base amount and a percentage
// rate, rounded half-up to the currency's minor unit.
func CalculateVAT(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred).Round(taxScale)
}
