package services

import (
	"context"

	"github.com/siamerp/finpost/internal/core/domain"
	"github.com/siamerp/finpost/internal/dto"
	"github.com/shopspring/decimal"
)

// PostingSvc turns finalized business documents into balanced journal entries.
// Each call is one atomic unit of work: either the full header+lines commit or
// nothing is written.
type PostingSvc interface {
	// PostSalesInvoice posts an AR journal entry for a finalized sales invoice.
	PostSalesInvoice(ctx context.Context, invoiceID string, actingUserID string) (*domain.JournalEntry, error)

	// PostGoodsReceipt posts an AP journal entry for a goods receipt.
	// Currently returns apperrors.ErrUnsupported.
	PostGoodsReceipt(ctx context.Context, receiptID string, actingUserID string) (*domain.JournalEntry, error)

	// PostPayment posts a payment journal entry with an optional withholding split.
	// Currently returns apperrors.ErrUnsupported.
	PostPayment(ctx context.Context, paymentID string, actingUserID string, withholdingAmount *decimal.Decimal) (*domain.JournalEntry, error)
}

// JournalReaderSvc defines read operations over posted journal entries
type JournalReaderSvc interface {
	// GetJournalEntry retrieves a journal entry with its lines by journal number.
	GetJournalEntry(ctx context.Context, journalNo string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a paginated list of journal headers.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// BalanceValidatorSvc exposes the balance check to external callers.
type BalanceValidatorSvc interface {
	// ValidateBalance reports whether the candidate lines net to zero.
	ValidateBalance(lines []domain.JournalLine) error
}

// PostingSvcFacade combines all posting-related service interfaces
type PostingSvcFacade interface {
	PostingSvc
	JournalReaderSvc
	BalanceValidatorSvc
}
