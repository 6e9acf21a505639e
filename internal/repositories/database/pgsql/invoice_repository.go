package pgsql

import (
	"context"
	"errors"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSalesInvoiceRepository reads finalized sales invoices. The posting engine
// never writes to this table; it belongs to the sales subsystem.
type PgxSalesInvoiceRepository struct {
	BaseRepository
}

// NewSalesInvoiceRepository creates a read-only repository over sales invoices.
func NewSalesInvoiceRepository(pool *pgxpool.Pool) portsrepo.SalesInvoiceReader {
	return &PgxSalesInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SalesInvoiceReader = (*PgxSalesInvoiceRepository)(nil)

// FindInvoiceByID retrieves the invoice totals and counterparty data needed
// for AR posting.
func (r *PgxSalesInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error) {
	query := `
		SELECT invoice_id, invoice_no, customer_id, customer_name, invoice_date,
		       status, subtotal, tax_amount, total_amount
		FROM sales_invoices
		WHERE invoice_id = $1;
	`
	var inv domain.SalesInvoice
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(
		&inv.InvoiceID,
		&inv.InvoiceNo,
		&inv.CustomerID,
		&inv.CustomerName,
		&inv.InvoiceDate,
		&inv.Status,
		&inv.Subtotal,
		&inv.TaxAmount,
		&inv.TotalAmount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sales invoice "+invoiceID, err)
	}
	return &inv, nil
}
