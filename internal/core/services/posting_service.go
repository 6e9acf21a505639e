package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portsrepo "github.com/siamerp/finpost/internal/core/ports/repositories"
	portssvc "github.com/siamerp/finpost/internal/core/ports/services"
	"github.com/siamerp/finpost/internal/dto"
	"github.com/siamerp/finpost/internal/middleware"
	"github.com/siamerp/finpost/internal/utils/accounting"
)

// postingService assembles balanced journal entries from business documents.
// One posting procedure exists per source-document type; each resolves its
// accounts through the determination service, builds the line set, validates
// balance, and commits header plus lines as a single unit.
type postingService struct {
	invoiceRepo      portsrepo.SalesInvoiceReader
	journalRepo      portsrepo.JournalEntryRepositoryFacade
	accountRepo      portsrepo.AccountReader
	determinationSvc portssvc.DeterminationSvcFacade
}

// NewPostingService creates a new posting orchestrator.
func NewPostingService(
	invoiceRepo portsrepo.SalesInvoiceReader,
	journalRepo portsrepo.JournalEntryRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	determinationSvc portssvc.DeterminationSvcFacade,
) portssvc.PostingSvcFacade {
	return &postingService{
		invoiceRepo:      invoiceRepo,
		journalRepo:      journalRepo,
		accountRepo:      accountRepo,
		determinationSvc: determinationSvc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostSalesInvoice creates the AR journal entry for a finalized sales invoice:
//
//	Dr. Accounts Receivable   (total amount)
//	Cr. Sales Revenue         (total - tax)
//	Cr. Output VAT            (tax amount, omitted when zero)
func (s *postingService) PostSalesInvoice(ctx context.Context, invoiceID string, actingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: sales invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		logger.Error("Failed to load invoice for posting", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}

	arAccountID, err := s.determinationSvc.ResolveAccount(ctx, domain.ProcessARDomestic, "", nil)
	if err != nil {
		return nil, err
	}
	revenueAccountID, err := s.determinationSvc.ResolveAccount(ctx, domain.ProcessSalesRevenue, "", nil)
	if err != nil {
		return nil, err
	}
	vatAccountID, err := s.determinationSvc.ResolveAccount(ctx, domain.ProcessSalesVAT, "", nil)
	if err != nil {
		return nil, err
	}

	if err := s.requirePostable(ctx, arAccountID, revenueAccountID, vatAccountID); err != nil {
		return nil, err
	}

	netAmount := invoice.TotalAmount.Sub(invoice.TaxAmount)

	lines := []domain.JournalLine{
		{
			LineID:      uuid.NewString(),
			AccountID:   arAccountID,
			PartnerID:   invoice.CustomerID,
			Description: fmt.Sprintf("A/R - %s", invoice.CustomerName),
			Debit:       invoice.TotalAmount,
			Credit:      decimal.Zero,
		},
		{
			LineID:      uuid.NewString(),
			AccountID:   revenueAccountID,
			Description: "Sales Revenue",
			Debit:       decimal.Zero,
			Credit:      netAmount,
		},
	}
	// A zero-amount VAT line is omitted, not written as a no-op row.
	if invoice.TaxAmount.IsPositive() {
		lines = append(lines, domain.JournalLine{
			LineID:      uuid.NewString(),
			AccountID:   vatAccountID,
			Description: "Output VAT",
			Debit:       decimal.Zero,
			Credit:      invoice.TaxAmount,
		})
	}

	if err := accounting.ValidateJournalBalance(lines); err != nil {
		logger.Error("Computed invoice posting does not balance", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		JournalID:          uuid.NewString(),
		JournalDate:        invoice.InvoiceDate,
		Description:        fmt.Sprintf("Sales Invoice - %s", invoice.CustomerName),
		Reference:          invoice.InvoiceNo,
		Status:             domain.Posted,
		SourceDocumentType: domain.SourceTaxInvoice,
		SourceDocumentID:   invoice.InvoiceID,
		PostedAt:           &now,
		PostedBy:           actingUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}
	for i := range lines {
		lines[i].JournalID = entry.JournalID
	}

	journalNo, err := s.journalRepo.SaveJournalEntry(ctx, entry, lines)
	if err != nil {
		logger.Error("Failed to save journal entry", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry for invoice %s: %w", invoiceID, err)
	}
	entry.JournalNo = journalNo
	entry.Lines = lines

	logger.Info("Sales invoice posted",
		slog.String("invoice_id", invoiceID),
		slog.String("journal_no", journalNo),
		slog.String("total", invoice.TotalAmount.String()),
	)
	return &entry, nil
}

// PostGoodsReceipt will post Dr. Inventory / Dr. Input VAT / Cr. Accounts
// Payable once goods receipt documents carry posting data.
func (s *postingService) PostGoodsReceipt(ctx context.Context, receiptID string, actingUserID string) (*domain.JournalEntry, error) {
	return nil, fmt.Errorf("%w: goods receipt posting is not implemented", apperrors.ErrUnsupported)
}

// PostPayment will post Dr. Accounts Payable / Cr. Bank / Cr. WHT Payable
// (when a withholding amount applies) once payment documents carry posting data.
func (s *postingService) PostPayment(ctx context.Context, paymentID string, actingUserID string, withholdingAmount *decimal.Decimal) (*domain.JournalEntry, error) {
	return nil, fmt.Errorf("%w: payment posting is not implemented", apperrors.ErrUnsupported)
}

// GetJournalEntry retrieves a journal entry with its lines by journal number.
func (s *postingService) GetJournalEntry(ctx context.Context, journalNo string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByNo(ctx, journalNo)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalNo, err)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, entry.JournalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for journal %s: %w", journalNo, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListJournalEntries retrieves a paginated list of journal headers.
func (s *postingService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListJournalEntries(ctx, portsrepo.ListJournalEntriesParams{
		Limit:     limit,
		NextToken: params.NextToken,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return &dto.ListJournalEntriesResponse{JournalEntries: responses, NextToken: nextToken}, nil
}

// ValidateBalance reports whether the candidate lines net to zero.
func (s *postingService) ValidateBalance(lines []domain.JournalLine) error {
	return accounting.ValidateJournalBalance(lines)
}

// requirePostable verifies that every target account exists, is postable and
// is active. Lines may only post to postable leaf accounts.
func (s *postingService) requirePostable(ctx context.Context, accountIDs ...string) error {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for posting: %w", err)
	}
	for _, id := range accountIDs {
		account, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, account.Code, id)
		}
		if !account.IsPostable {
			return fmt.Errorf("%w: account %s (%s) is a header account and cannot receive postings", apperrors.ErrValidation, account.Code, id)
		}
	}
	return nil
}
