package dto

import (
	"time"

	"github.com/siamerp/finpost/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueCertificateRequest carries everything needed to issue a withholding
// certificate. Payer and payee fields are snapshotted into the certificate
// verbatim; the engine never re-derives them from master data.
type IssueCertificateRequest struct {
	TaxCodeID   string          `json:"taxCodeID" binding:"required"`
	BaseAmount  decimal.Decimal `json:"baseAmount" binding:"required"`
	PaymentID   string          `json:"paymentID"`
	PayerTaxID  string          `json:"payerTaxID" binding:"required,len=13,numeric"`
	PayerName   string          `json:"payerName" binding:"required"`
	PayerBranch string          `json:"payerBranch"`
	PayeeTaxID  string          `json:"payeeTaxID" binding:"required,len=13,numeric"`
	PayeeName   string          `json:"payeeName" binding:"required"`
	PayeeBranch string          `json:"payeeBranch"`
}

// CertificateResponse is the API shape of a withholding certificate.
type CertificateResponse struct {
	CertificateID   string          `json:"certificateID"`
	BookNumber      string          `json:"bookNumber"`
	CertificateDate time.Time       `json:"certificateDate"`
	PaymentID       string          `json:"paymentID,omitempty"`
	PayerTaxID      string          `json:"payerTaxID"`
	PayerName       string          `json:"payerName"`
	PayerBranch     string          `json:"payerBranch"`
	PayeeTaxID      string          `json:"payeeTaxID"`
	PayeeName       string          `json:"payeeName"`
	PayeeBranch     string          `json:"payeeBranch"`
	TaxCodeID       string          `json:"taxCodeID"`
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	Status          string          `json:"status"`
}

// ListCertificatesParams holds pagination parameters for certificate listings.
type ListCertificatesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListCertificatesResponse is a page of certificates plus the next token.
type ListCertificatesResponse struct {
	Certificates []CertificateResponse `json:"certificates"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// TaxCodeResponse is the API shape of a WHT tax code.
type TaxCodeResponse struct {
	TaxCodeID      string          `json:"taxCodeID"`
	Code           string          `json:"code"`
	Rate           decimal.Decimal `json:"rate"`
	IncomeTypeCode string          `json:"incomeTypeCode"`
	DescriptionTH  string          `json:"descriptionTH"`
	DescriptionEN  string          `json:"descriptionEN,omitempty"`
}

// TaxGroupResponse is the API shape of a VAT tax group.
type TaxGroupResponse struct {
	TaxGroupID string          `json:"taxGroupID"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate"`
	Direction  string          `json:"direction"`
}

// ToCertificateResponse converts a domain.WHTCertificate to its API shape.
func ToCertificateResponse(cert *domain.WHTCertificate) CertificateResponse {
	return CertificateResponse{
		CertificateID:   cert.CertificateID,
		BookNumber:      cert.BookNumber,
		CertificateDate: cert.CertificateDate,
		PaymentID:       cert.PaymentID,
		PayerTaxID:      cert.PayerTaxID,
		PayerName:       cert.PayerName,
		PayerBranch:     cert.PayerBranch,
		PayeeTaxID:      cert.PayeeTaxID,
		PayeeName:       cert.PayeeName,
		PayeeBranch:     cert.PayeeBranch,
		TaxCodeID:       cert.TaxCodeID,
		BaseAmount:      cert.BaseAmount,
		TaxAmount:       cert.TaxAmount,
		Status:          string(cert.Status),
	}
}

// ToTaxCodeResponses converts WHT tax codes to their API shapes.
func ToTaxCodeResponses(codes []domain.WHTTaxCode) []TaxCodeResponse {
	responses := make([]TaxCodeResponse, len(codes))
	for i, code := range codes {
		responses[i] = TaxCodeResponse{
			TaxCodeID:      code.TaxCodeID,
			Code:           code.Code,
			Rate:           code.Rate,
			IncomeTypeCode: code.IncomeTypeCode,
			DescriptionTH:  code.DescriptionTH,
			DescriptionEN:  code.DescriptionEN,
		}
	}
	return responses
}

// ToTaxGroupResponses converts VAT tax groups to their API shapes.
func ToTaxGroupResponses(groups []domain.TaxGroup) []TaxGroupResponse {
	responses := make([]TaxGroupResponse, len(groups))
	for i, group := range groups {
		responses[i] = TaxGroupResponse{
			TaxGroupID: group.TaxGroupID,
			Code:       group.Code,
			Name:       group.Name,
			Rate:       group.Rate,
			Direction:  string(group.Direction),
		}
	}
	return responses
}
