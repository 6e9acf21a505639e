package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	"github.com/siamerp/finpost/internal/utils/pagination"
	"github.com/siamerp/finpost/internal/utils/sequencing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTaxRepository persists withholding tax master data and certificates.
type PgxTaxRepository struct {
	BaseRepository
	sequences portsrepo.SequenceAllocator
}

// NewTaxRepository creates a new repository for tax data.
func NewTaxRepository(pool *pgxpool.Pool, sequences portsrepo.SequenceAllocator) portsrepo.TaxRepositoryFacade {
	return &PgxTaxRepository{
		BaseRepository: BaseRepository{Pool: pool},
		sequences:      sequences,
	}
}

var _ portsrepo.TaxRepositoryFacade = (*PgxTaxRepository)(nil)

// FindTaxCodeByID retrieves a WHT tax code by its identifier.
func (r *PgxTaxRepository) FindTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.WHTTaxCode, error) {
	query := `
		SELECT tax_code_id, code, rate, income_type_code, description_th, description_en, is_active
		FROM wht_tax_codes
		WHERE tax_code_id = $1;
	`
	code, err := scanTaxCode(r.Pool.QueryRow(ctx, query, taxCodeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find WHT tax code "+taxCodeID, err)
	}
	return code, nil
}

// ListTaxCodes retrieves all active WHT tax codes ordered by code.
func (r *PgxTaxRepository) ListTaxCodes(ctx context.Context) ([]domain.WHTTaxCode, error) {
	query := `
		SELECT tax_code_id, code, rate, income_type_code, description_th, description_en, is_active
		FROM wht_tax_codes
		WHERE is_active = TRUE
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list WHT tax codes", err)
	}
	defer rows.Close()

	var codes []domain.WHTTaxCode
	for rows.Next() {
		code, err := scanTaxCode(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan WHT tax code", err)
		}
		codes = append(codes, *code)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read WHT tax codes", err)
	}
	return codes, nil
}

// FindTaxGroupByCode retrieves an active VAT tax group by code.
func (r *PgxTaxRepository) FindTaxGroupByCode(ctx context.Context, code string) (*domain.TaxGroup, error) {
	query := `
		SELECT tax_group_id, code, name, rate, direction, is_active
		FROM tax_groups
		WHERE code = $1 AND is_active = TRUE;
	`
	group, err := scanTaxGroup(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tax group "+code, err)
	}
	return group, nil
}

// ListTaxGroups retrieves active VAT tax groups, optionally filtered by direction.
func (r *PgxTaxRepository) ListTaxGroups(ctx context.Context, direction *domain.VATDirection) ([]domain.TaxGroup, error) {
	query := `
		SELECT tax_group_id, code, name, rate, direction, is_active
		FROM tax_groups
		WHERE is_active = TRUE
	`
	args := []interface{}{}
	if direction != nil {
		args = append(args, *direction)
		query += ` AND direction = $1`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list tax groups", err)
	}
	defer rows.Close()

	var groups []domain.TaxGroup
	for rows.Next() {
		group, err := scanTaxGroup(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax group", err)
		}
		groups = append(groups, *group)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read tax groups", err)
	}
	return groups, nil
}

const certificateColumns = `
	certificate_id, book_number, certificate_date, payment_id,
	payer_tax_id, payer_name, payer_branch,
	payee_tax_id, payee_name, payee_branch,
	tax_code_id, base_amount, tax_amount, status,
	created_at, created_by, last_updated_at, last_updated_by
`

// FindCertificateByID retrieves a certificate by its identifier.
func (r *PgxTaxRepository) FindCertificateByID(ctx context.Context, certificateID string) (*domain.WHTCertificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM wht_certificates WHERE certificate_id = $1;`
	cert, err := scanCertificate(r.Pool.QueryRow(ctx, query, certificateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find WHT certificate "+certificateID, err)
	}
	return cert, nil
}

// ListCertificates retrieves a page of certificates, newest first, using a
// (certificate_date, created_at) keyset token.
func (r *PgxTaxRepository) ListCertificates(ctx context.Context, limit int, nextToken *string) ([]domain.WHTCertificate, *string, error) {
	query := `SELECT ` + certificateColumns + ` FROM wht_certificates`
	args := []interface{}{}
	if nextToken != nil {
		certDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` WHERE (certificate_date, created_at) < ($1, $2)`
		args = append(args, certDate, createdAt)
	}
	query += fmt.Sprintf(` ORDER BY certificate_date DESC, created_at DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list WHT certificates", err)
	}
	defer rows.Close()

	var certs []domain.WHTCertificate
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan WHT certificate", err)
		}
		certs = append(certs, *cert)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to read WHT certificates", err)
	}

	var token *string
	if len(certs) > limit {
		certs = certs[:limit]
		last := certs[len(certs)-1]
		t := pagination.EncodeToken(last.CertificateDate, last.CreatedAt)
		token = &t
	}
	return certs, token, nil
}

// SaveCertificate allocates the next yearly book number and persists the
// certificate atomically. Sequence conflicts during the first issue of a new
// year are retried here, mirroring journal number allocation.
func (r *PgxTaxRepository) SaveCertificate(ctx context.Context, cert domain.WHTCertificate) (string, error) {
	return allocateNumbered("certificate number", func() (string, error) {
		return r.saveCertificateOnce(ctx, cert)
	})
}

func (r *PgxTaxRepository) saveCertificateOnce(ctx context.Context, cert domain.WHTCertificate) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	scope := sequencing.CertificateScope(cert.CertificateDate)
	seq, err := r.sequences.NextInTx(ctx, tx, scope)
	if err != nil {
		return "", err
	}
	bookNumber := sequencing.CertificateNumber(scope, seq)

	query := `
		INSERT INTO wht_certificates (` + certificateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, query,
		cert.CertificateID,
		bookNumber,
		cert.CertificateDate,
		nullable(cert.PaymentID),
		cert.PayerTaxID,
		cert.PayerName,
		cert.PayerBranch,
		cert.PayeeTaxID,
		cert.PayeeName,
		cert.PayeeBranch,
		cert.TaxCodeID,
		cert.BaseAmount,
		cert.TaxAmount,
		cert.Status,
		cert.CreatedAt,
		cert.CreatedBy,
		cert.LastUpdatedAt,
		cert.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%w: certificate number %s", apperrors.ErrSequenceConflict, bookNumber)
		}
		return "", apperrors.NewAppError(500, "failed to insert WHT certificate "+cert.CertificateID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return bookNumber, nil
}

// UpdateCertificateStatus flips only the status field of a certificate. The
// update is conditional on the current status so two concurrent transitions
// cannot both succeed.
func (r *PgxTaxRepository) UpdateCertificateStatus(ctx context.Context, certificateID string, fromStatus, toStatus domain.CertificateStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE wht_certificates
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE certificate_id = $1 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, certificateID, toStatus, updatedAt, updatedByUserID, fromStatus)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update WHT certificate status "+certificateID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the certificate is gone or another request changed its status first.
		var current domain.CertificateStatus
		err := r.Pool.QueryRow(ctx, `SELECT status FROM wht_certificates WHERE certificate_id = $1;`, certificateID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to re-check WHT certificate status "+certificateID, err)
		}
		return fmt.Errorf("%w: certificate %s is already %s", apperrors.ErrConflict, certificateID, current)
	}
	return nil
}

func scanTaxCode(row pgx.Row) (*domain.WHTTaxCode, error) {
	var code domain.WHTTaxCode
	var descEN *string
	err := row.Scan(
		&code.TaxCodeID,
		&code.Code,
		&code.Rate,
		&code.IncomeTypeCode,
		&code.DescriptionTH,
		&descEN,
		&code.IsActive,
	)
	if err != nil {
		return nil, err
	}
	code.DescriptionEN = deref(descEN)
	return &code, nil
}

func scanTaxGroup(row pgx.Row) (*domain.TaxGroup, error) {
	var group domain.TaxGroup
	err := row.Scan(
		&group.TaxGroupID,
		&group.Code,
		&group.Name,
		&group.Rate,
		&group.Direction,
		&group.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func scanCertificate(row pgx.Row) (*domain.WHTCertificate, error) {
	var cert domain.WHTCertificate
	var paymentID *string
	err := row.Scan(
		&cert.CertificateID,
		&cert.BookNumber,
		&cert.CertificateDate,
		&paymentID,
		&cert.PayerTaxID,
		&cert.PayerName,
		&cert.PayerBranch,
		&cert.PayeeTaxID,
		&cert.PayeeName,
		&cert.PayeeBranch,
		&cert.TaxCodeID,
		&cert.BaseAmount,
		&cert.TaxAmount,
		&cert.Status,
		&cert.CreatedAt,
		&cert.CreatedBy,
		&cert.LastUpdatedAt,
		&cert.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	cert.PaymentID = deref(paymentID)
	return &cert, nil
}
