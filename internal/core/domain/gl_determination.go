package domain

// GLDetermination maps an abstract business-process key to a concrete ledger
// account under a named configuration profile. Business logic addresses every
// monetary effect through a process key so operators can reconfigure the chart
// of accounts without code changes.
type GLDetermination struct {
	DeterminationID string `json:"determinationID"`
	ProfileName     string `json:"profileName"` // "Default" unless overridden
	ProcessKey      string `json:"processKey"`  // e.g. "SALES_REVENUE"
	AccountID       string `json:"accountID"`
	Description     string `json:"description,omitempty"`
	AuditFields
}

// Process keys consumed by the posting orchestrator. The seed configuration
// must cover every key used by an enabled posting rule.
const (
	ProcessSalesRevenue   = "SALES_REVENUE"
	ProcessSalesVAT       = "SALES_VAT"
	ProcessARDomestic     = "AR_DOMESTIC"
	ProcessAPDomestic     = "AP_DOMESTIC"
	ProcessInputVAT       = "INPUT_VAT"
	ProcessCostOfGoods    = "COST_OF_GOODS"
	ProcessInventoryAsset = "INVENTORY_ASSET"
	ProcessWHTPayable     = "WHT_PAYABLE"
	ProcessBankAccount    = "BANK_ACCOUNT"
)
