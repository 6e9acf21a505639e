package repositories

import (
	"context"
	"time"

	"github.com/siamerp/finpost/internal/core/domain"
)

// TaxCodeReader defines read operations for withholding tax master data
type TaxCodeReader interface {
	// FindTaxCodeByID retrieves a WHT tax code by its identifier.
	FindTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.WHTTaxCode, error)

	// ListTaxCodes retrieves all active WHT tax codes ordered by code.
	ListTaxCodes(ctx context.Context) ([]domain.WHTTaxCode, error)
}

// TaxGroupReader defines read operations for VAT master data
type TaxGroupReader interface {
	// FindTaxGroupByCode retrieves an active VAT tax group by code (e.g. "V7").
	FindTaxGroupByCode(ctx context.Context, code string) (*domain.TaxGroup, error)

	// ListTaxGroups retrieves active VAT tax groups, optionally filtered by direction.
	ListTaxGroups(ctx context.Context, direction *domain.VATDirection) ([]domain.TaxGroup, error)
}

// CertificateReader defines read operations for withholding certificates
type CertificateReader interface {
	// FindCertificateByID retrieves a certificate by its identifier.
	FindCertificateByID(ctx context.Context, certificateID string) (*domain.WHTCertificate, error)

	// ListCertificates retrieves a paginated list of certificates, newest first.
	ListCertificates(ctx context.Context, limit int, nextToken *string) ([]domain.WHTCertificate, *string, error)
}

// CertificateWriter defines write operations for withholding certificates
type CertificateWriter interface {
	// SaveCertificate allocates the next yearly book number and persists the
	// certificate in one atomic transaction, returning the assigned number.
	SaveCertificate(ctx context.Context, cert domain.WHTCertificate) (string, error)

	// UpdateCertificateStatus flips the status field when the certificate is
	// currently in fromStatus; all issuance data is immutable once written.
	// Returns ErrConflict when the certificate is no longer in fromStatus and
	// ErrNotFound when it does not exist.
	UpdateCertificateStatus(ctx context.Context, certificateID string, fromStatus, toStatus domain.CertificateStatus, updatedByUserID string, updatedAt time.Time) error
}

// TaxRepositoryFacade combines all tax-related repository interfaces
type TaxRepositoryFacade interface {
	TaxCodeReader
	TaxGroupReader
	CertificateReader
	CertificateWriter
}
