package models

// AccountType represents the type of account
type AccountType string

const (
	// AccountTypeDebit is cash or a bank account.
	AccountTypeDebit AccountType = "debit"
	// AccountTypeCredit is a credit card; the balance is the amount owed.
	AccountTypeCredit AccountType = "credit"
	// AccountTypeOwed tracks money someone owes the user.
	AccountTypeOwed AccountType = "owed"
	// AccountTypeDebt tracks money the user owes someone.
	AccountTypeDebt AccountType = "debt"
)

// Account is a balance-bearing entity inside a ledger.
//
// Invariant: CurrentBalance always equals InitialBalance plus the signed
// sum of every non-deleted transaction and transfer leg touching this
// account. The balance is maintained incrementally through
// AccountServicer.AdjustBalance and never recomputed from history.
type Account struct {
	Base
	LedgerID       string      `gorm:"type:uuid;not null;index" json:"ledger_id"`
	Name           string      `gorm:"not null" json:"name"`
	Type           AccountType `gorm:"column:account_type;not null" json:"type"`
	InitialBalance int64       `gorm:"not null;default:0" json:"initial_balance"`
	CurrentBalance int64       `gorm:"not null;default:0" json:"current_balance"`
	CreditLimit    *int64      `json:"credit_limit,omitempty"`
	PersonID       *string     `gorm:"type:uuid" json:"person_id,omitempty"`
	Icon           string      `json:"icon"`
	Color          string      `json:"color"`
	IsActive       bool        `gorm:"not null;default:true" json:"is_active"`
	Notes          *string     `json:"notes,omitempty"`

	// Credit card billing metadata (day-of-month values)
	StatementDate  *int `json:"statement_date,omitempty"`
	DueDate        *int `json:"due_date,omitempty"`
	PaymentDueDays *int `json:"payment_due_days,omitempty"`

	// Relationships
	Ledger Ledger  `gorm:"foreignKey:LedgerID;constraint:OnDelete:CASCADE" json:"-"`
	Person *Person `gorm:"foreignKey:PersonID;constraint:OnDelete:SET NULL" json:"person,omitempty"`
}
