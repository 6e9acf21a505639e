package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	portssvc "github.com/siamerp/finpost/internal/core/ports/services"
	"github.com/siamerp/finpost/internal/dto"
	"github.com/siamerp/finpost/internal/middleware"
	"github.com/siamerp/finpost/internal/utils/accounting"
)

// headOfficeBranch is the Revenue Department branch code for a head office.
const headOfficeBranch = "00000"

// taxService issues withholding certificates and serves tax master data.
type taxService struct {
	taxRepo portsrepo.TaxRepositoryFacade
}

// NewTaxService creates a new tax service.
func NewTaxService(taxRepo portsrepo.TaxRepositoryFacade) portssvc.TaxSvcFacade {
	return &taxService{taxRepo: taxRepo}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

// IssueCertificate creates one withholding certificate: rate lookup, amount
// calculation, yearly book number and persistence happen as one unit of work.
func (s *taxService) IssueCertificate(ctx context.Context, req dto.IssueCertificateRequest, actingUserID string) (*domain.WHTCertificate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.BaseAmount.IsPositive() {
		return nil, fmt.Errorf("%w: base amount must be positive", apperrors.ErrValidation)
	}

	taxCode, err := s.taxRepo.FindTaxCodeByID(ctx, req.TaxCodeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: WHT tax code %s", apperrors.ErrNotFound, req.TaxCodeID)
		}
		return nil, fmt.Errorf("failed to look up WHT tax code %s: %w", req.TaxCodeID, err)
	}
	if !taxCode.IsActive {
		return nil, fmt.Errorf("%w: WHT tax code %s is inactive", apperrors.ErrValidation, taxCode.Code)
	}

	taxAmount := accounting.CalculateWHT(req.BaseAmount, taxCode.Rate)

	payerBranch := req.PayerBranch
	if payerBranch == "" {
		payerBranch = headOfficeBranch
	}
	payeeBranch := req.PayeeBranch
	if payeeBranch == "" {
		payeeBranch = headOfficeBranch
	}

	now := time.Now().UTC()
	cert := domain.WHTCertificate{
		CertificateID:   uuid.NewString(),
		CertificateDate: now,
		PaymentID:       req.PaymentID,
		PayerTaxID:      req.PayerTaxID,
		PayerName:       req.PayerName,
		PayerBranch:     payerBranch,
		PayeeTaxID:      req.PayeeTaxID,
		PayeeName:       req.PayeeName,
		PayeeBranch:     payeeBranch,
		TaxCodeID:       taxCode.TaxCodeID,
		BaseAmount:      req.BaseAmount,
		TaxAmount:       taxAmount,
		Status:          domain.CertificateIssued,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	bookNumber, err := s.taxRepo.SaveCertificate(ctx, cert)
	if err != nil {
		logger.Error("Failed to save WHT certificate", slog.String("tax_code", taxCode.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save WHT certificate: %w", err)
	}
	cert.BookNumber = bookNumber

	logger.Info("WHT certificate issued",
		slog.String("book_number", bookNumber),
		slog.String("tax_code", taxCode.Code),
		slog.String("base_amount", cert.BaseAmount.String()),
		slog.String("tax_amount", cert.TaxAmount.String()),
	)
	return &cert, nil
}

// CancelCertificate flips an issued certificate to CANCELLED. Only the status
// changes; the certificate remains on file as a legal record.
func (s *taxService) CancelCertificate(ctx context.Context, certificateID string, actingUserID string) (*domain.WHTCertificate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cert, err := s.taxRepo.FindCertificateByID(ctx, certificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find WHT certificate %s: %w", certificateID, err)
	}
	if cert.Status == domain.CertificateCancelled {
		return nil, fmt.Errorf("%w: certificate %s is already cancelled", apperrors.ErrConflict, cert.BookNumber)
	}

	now := time.Now().UTC()
	if err := s.taxRepo.UpdateCertificateStatus(ctx, certificateID, domain.CertificateIssued, domain.CertificateCancelled, actingUserID, now); err != nil {
		// A concurrent cancel can win between the read above and this update.
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: certificate %s is already cancelled", apperrors.ErrConflict, cert.BookNumber)
		}
		logger.Error("Failed to cancel WHT certificate", slog.String("certificate_id", certificateID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to cancel WHT certificate %s: %w", certificateID, err)
	}

	cert.Status = domain.CertificateCancelled
	cert.LastUpdatedAt = now
	cert.LastUpdatedBy = actingUserID

	logger.Info("WHT certificate cancelled", slog.String("book_number", cert.BookNumber))
	return cert, nil
}

// GetCertificate retrieves one certificate by id.
func (s *taxService) GetCertificate(ctx context.Context, certificateID string) (*domain.WHTCertificate, error) {
	cert, err := s.taxRepo.FindCertificateByID(ctx, certificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find WHT certificate %s: %w", certificateID, err)
	}
	return cert, nil
}

// ListCertificates retrieves a paginated list of certificates, newest first.
func (s *taxService) ListCertificates(ctx context.Context, params dto.ListCertificatesParams) (*dto.ListCertificatesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	certs, nextToken, err := s.taxRepo.ListCertificates(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list WHT certificates: %w", err)
	}

	responses := make([]dto.CertificateResponse, len(certs))
	for i := range certs {
		responses[i] = dto.ToCertificateResponse(&certs[i])
	}
	return &dto.ListCertificatesResponse{Certificates: responses, NextToken: nextToken}, nil
}

// ListTaxCodes returns the active withholding tax codes.
func (s *taxService) ListTaxCodes(ctx context.Context) ([]domain.WHTTaxCode, error) {
	return s.taxRepo.ListTaxCodes(ctx)
}

// ListTaxGroups returns active VAT tax groups, optionally filtered by direction.
func (s *taxService) ListTaxGroups(ctx context.Context, direction *domain.VATDirection) ([]domain.TaxGroup, error) {
	return s.taxRepo.ListTaxGroups(ctx, direction)
}
