package models

// Ledger is an isolated namespace of accounts, transactions, transfers
// and templates (e.g. "Personal" vs "Business"). At most one ledger is
// the default at any time; that invariant is maintained by
// LedgerServicer.SetDefaultLedger, not by a database constraint.
type Ledger struct {
	Base
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	IsDefault   bool    `gorm:"not null;default:false" json:"is_default"`

	// Relationships
	Accounts     []Account             `gorm:"foreignKey:LedgerID" json:"accounts,omitempty"`
	Transactions []Transaction         `gorm:"foreignKey:LedgerID" json:"transactions,omitempty"`
	Transfers    []Transfer            `gorm:"foreignKey:LedgerID" json:"transfers,omitempty"`
	Templates    []TransactionTemplate `gorm:"foreignKey:LedgerID" json:"templates,omitempty"`
}
