package domain

import "github.com/shopspring/decimal"

// WHTTaxCode is a statutory withholding tax category (Thai Revenue Department
// income classification).
type WHTTaxCode struct {
	TaxCodeID      string          `json:"taxCodeID"`
	Code           string          `json:"code"` // W1, W3, W5, W10
	Rate           decimal.Decimal `json:"rate"` // percentage, e.g. 3.00
	IncomeTypeCode string          `json:"incomeTypeCode"` // e.g. "40(2)"
	DescriptionTH  string          `json:"descriptionTH"`
	DescriptionEN  string          `json:"descriptionEN,omitempty"`
	IsActive       bool            `json:"isActive"`
}

// VATDirection distinguishes VAT collected on sales from VAT paid on purchases.
type VATDirection string

const (
	VATOutput VATDirection = "OUTPUT"
	VATInput  VATDirection = "INPUT"
)

// TaxGroup is a statutory VAT category (standard rated, zero rated, exempt).
type TaxGroup struct {
	TaxGroupID string          `json:"taxGroupID"`
	Code       string          `json:"code"` // V7, V7I, Z0, E0
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate"` // percentage, e.g. 7.00
	Direction  VATDirection    `json:"direction"`
	IsActive   bool            `json:"isActive"`
}
