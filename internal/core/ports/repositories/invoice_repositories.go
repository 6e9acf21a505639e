package repositories

import (
	"context"

	"github.com/siamerp/finpost/internal/core/domain"
)

// SalesInvoiceReader provides read access to finalized sales documents owned
// by the sales subsystem. The posting engine never writes through this port.
type SalesInvoiceReader interface {
	// FindInvoiceByID retrieves the invoice totals and counterparty data needed
	// for AR posting.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error)
}
