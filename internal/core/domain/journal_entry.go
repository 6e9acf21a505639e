package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus indicates the lifecycle state of a financial document.
// Transitions are one-way (DRAFT -> POSTED -> CANCELLED) except that a DRAFT
// may be cancelled directly before posting.
type DocumentStatus string

const (
	Draft     DocumentStatus = "DRAFT"
	Posted    DocumentStatus = "POSTED"
	Cancelled DocumentStatus = "CANCELLED"
)

// SourceDocumentType identifies the business document a journal entry was
// generated from. Traceability only; no referential ownership.
type SourceDocumentType string

const (
	SourceTaxInvoice   SourceDocumentType = "TAX_INVOICE"
	SourceGoodsReceipt SourceDocumentType = "GOODS_RECEIPT"
	SourcePayment      SourceDocumentType = "PAYMENT"
)

// JournalEntry is one balanced ledger transaction: a header owning an ordered
// set of lines. Deleting a header cascades to its lines.
type JournalEntry struct {
	JournalID          string             `json:"journalID"`
	JournalNo          string             `json:"journalNo"` // "JV-YYYY-MM-NNNN", unique
	JournalDate        time.Time          `json:"journalDate"`
	Description        string             `json:"description"`
	Reference          string             `json:"reference"` // external ref, e.g. invoice number
	Status             DocumentStatus     `json:"status"`
	SourceDocumentType SourceDocumentType `json:"sourceDocumentType,omitempty"`
	SourceDocumentID   string             `json:"sourceDocumentID,omitempty"`
	PostedAt           *time.Time         `json:"postedAt,omitempty"`
	PostedBy           string             `json:"postedBy,omitempty"`
	Lines              []JournalLine      `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit-or-credit effect against one account.
// Exactly one of Debit/Credit is non-zero.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	JournalID    string          `json:"journalID"`
	AccountID    string          `json:"accountID"`
	PartnerID    string          `json:"partnerID,omitempty"`    // dimension for AR/AP aging
	CostCenterID string          `json:"costCenterID,omitempty"` // dimension, optional
	ProjectID    string          `json:"projectID,omitempty"`    // dimension, optional
	Description  string          `json:"description,omitempty"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
}
