package services

import (
	"context"

	"github.com/siamerp/finpost/internal/core/domain"
	"github.com/siamerp/finpost/internal/dto"
)

// TaxSvc covers withholding certificates and tax master data reads.
type TaxSvc interface {
	// IssueCertificate computes the withholding amount, allocates the next
	// yearly book number and persists the certificate with status ISSUED.
	// Identity fields are snapshotted verbatim from the request.
	IssueCertificate(ctx context.Context, req dto.IssueCertificateRequest, actingUserID string) (*domain.WHTCertificate, error)

	// CancelCertificate flips an issued certificate to CANCELLED. Base data
	// stays immutable; certificates are never deleted.
	CancelCertificate(ctx context.Context, certificateID string, actingUserID string) (*domain.WHTCertificate, error)

	// GetCertificate retrieves one certificate by id.
	GetCertificate(ctx context.Context, certificateID string) (*domain.WHTCertificate, error)

	// ListCertificates retrieves a paginated list of certificates, newest first.
	ListCertificates(ctx context.Context, params dto.ListCertificatesParams) (*dto.ListCertificatesResponse, error)

	// ListTaxCodes returns the active withholding tax codes.
	ListTaxCodes(ctx context.Context) ([]domain.WHTTaxCode, error)

	// ListTaxGroups returns active VAT tax groups, optionally filtered by direction.
	ListTaxGroups(ctx context.Context, direction *domain.VATDirection) ([]domain.TaxGroup, error)
}

// TaxSvcFacade is the full tax service surface.
type TaxSvcFacade interface {
	TaxSvc
}
