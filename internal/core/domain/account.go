package domain

// AccountType defines the fundamental accounting category of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account normally carries its balance.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// Account is a node in the chart of accounts. The hierarchy is arena-style:
// ParentAccountID references another account by id, never by pointer, so the
// tree can be serialized and checked for cycles independently of load order.
type Account struct {
	AccountID       string        `json:"accountID"`
	Code            string        `json:"code"` // sortable, e.g. "11300"
	NameTH          string        `json:"nameTH"`
	NameEN          string        `json:"nameEN"`
	AccountType     AccountType   `json:"accountType"`
	AccountLevel    int           `json:"accountLevel"`
	IsPostable      bool          `json:"isPostable"` // false = structural/header node
	NormalBalance   NormalBalance `json:"normalBalance"`
	ParentAccountID string        `json:"parentAccountID,omitempty"` // empty for root accounts
	Description     string        `json:"description,omitempty"`
	IsActive        bool          `json:"isActive"`
	AuditFields
}
