package dto

import (
	"time"

	"github.com/siamerp/finpost/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineInput is one candidate ledger line submitted for balance validation.
type JournalLineInput struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// ValidateBalanceRequest carries a candidate set of lines to check.
type ValidateBalanceRequest struct {
	Lines []JournalLineInput `json:"lines" binding:"required,min=2,dive"`
}

// ValidateBalanceResponse reports the outcome of a balance check.
type ValidateBalanceResponse struct {
	Balanced    bool   `json:"balanced"`
	TotalDebit  string `json:"totalDebit"`
	TotalCredit string `json:"totalCredit"`
	Reason      string `json:"reason,omitempty"`
}

// JournalLineResponse is the API shape of a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	PartnerID   string          `json:"partnerID,omitempty"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse is the API shape of a journal entry header with lines.
type JournalEntryResponse struct {
	JournalID          string                `json:"journalID"`
	JournalNo          string                `json:"journalNo"`
	JournalDate        time.Time             `json:"journalDate"`
	Description        string                `json:"description"`
	Reference          string                `json:"reference,omitempty"`
	Status             string                `json:"status"`
	SourceDocumentType string                `json:"sourceDocumentType,omitempty"`
	SourceDocumentID   string                `json:"sourceDocumentID,omitempty"`
	PostedAt           *time.Time            `json:"postedAt,omitempty"`
	PostedBy           string                `json:"postedBy,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	CreatedBy          string                `json:"createdBy"`
	Lines              []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesParams holds pagination parameters for journal listings.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse is a page of journal headers plus the next token.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
	NextToken      *string                `json:"nextToken,omitempty"`
}

// PostPaymentRequest carries the optional withholding split for payment posting.
type PostPaymentRequest struct {
	WithholdingAmount *decimal.Decimal `json:"withholdingAmount,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to its API shape.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		PartnerID:   line.PartnerID,
		Description: line.Description,
		Debit:       line.Debit,
		Credit:      line.Credit,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to its API shape.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		JournalID:          entry.JournalID,
		JournalNo:          entry.JournalNo,
		JournalDate:        entry.JournalDate,
		Description:        entry.Description,
		Reference:          entry.Reference,
		Status:             string(entry.Status),
		SourceDocumentType: string(entry.SourceDocumentType),
		SourceDocumentID:   entry.SourceDocumentID,
		PostedAt:           entry.PostedAt,
		PostedBy:           entry.PostedBy,
		CreatedAt:          entry.CreatedAt,
		CreatedBy:          entry.CreatedBy,
	}
	if len(entry.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(entry.Lines))
		for i := range entry.Lines {
			resp.Lines[i] = ToJournalLineResponse(&entry.Lines[i])
		}
	}
	return resp
}

// ToDomainLines converts submitted line inputs into domain lines.
func ToDomainLines(inputs []JournalLineInput) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(inputs))
	for i, in := range inputs {
		lines[i] = domain.JournalLine{
			AccountID:   in.AccountID,
			Debit:       in.Debit,
			Credit:      in.Credit,
			Description: in.Description,
		}
	}
	return lines
}
