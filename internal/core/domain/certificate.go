package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CertificateStatus is the lifecycle state of a withholding certificate.
// Cancellation is a status flip, never a deletion; the certificate is a legal
// record and must remain on file.
type CertificateStatus string

const (
	CertificateIssued    CertificateStatus = "ISSUED"
	CertificateCancelled CertificateStatus = "CANCELLED"
)

// WHTCertificate is one issued tax-withholding document (50 Bis style).
// Payer and payee identity fields are snapshotted verbatim at issuance time
// and never re-derived from master data.
type WHTCertificate struct {
	CertificateID   string            `json:"certificateID"`
	BookNumber      string            `json:"bookNumber"` // "YYYY/NNNN", sequence resets yearly
	CertificateDate time.Time         `json:"certificateDate"`
	PaymentID       string            `json:"paymentID,omitempty"` // originating payment, optional
	PayerTaxID      string            `json:"payerTaxID"`          // 13-digit tax id
	PayerName       string            `json:"payerName"`
	PayerBranch     string            `json:"payerBranch"` // "00000" = head office
	PayeeTaxID      string            `json:"payeeTaxID"`
	PayeeName       string            `json:"payeeName"`
	PayeeBranch     string            `json:"payeeBranch"`
	TaxCodeID       string            `json:"taxCodeID"`
	BaseAmount      decimal.Decimal   `json:"baseAmount"`
	TaxAmount       decimal.Decimal   `json:"taxAmount"`
	Status          CertificateStatus `json:"status"`
	AuditFields
}
