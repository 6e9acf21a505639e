package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoice is the read model of a finalized tax invoice consumed by the
// posting orchestrator. The document itself is owned by the sales subsystem;
// this engine only reads totals, counterparty and dates.
type SalesInvoice struct {
	InvoiceID    string          `json:"invoiceID"`
	InvoiceNo    string          `json:"invoiceNo"`
	CustomerID   string          `json:"customerID"`
	CustomerName string          `json:"customerName"`
	InvoiceDate  time.Time       `json:"invoiceDate"`
	Status       DocumentStatus  `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}
