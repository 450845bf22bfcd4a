package models

import "time"

// TransactionTemplate pre-fills a transaction creation form. Templates
// never affect balances directly; UsageCount and LastUsedAt are advisory
// bookkeeping bumped when a template seeds a new transaction.
type TransactionTemplate struct {
	Base
	LedgerID      string    `gorm:"type:uuid;not null;index" json:"ledger_id"`
	Name          string    `gorm:"not null" json:"name"`
	AccountID     *string   `gorm:"type:uuid" json:"account_id,omitempty"`
	CategoryID    *string   `gorm:"type:uuid" json:"category_id,omitempty"`
	SubcategoryID *string   `gorm:"type:uuid" json:"subcategory_id,omitempty"`
	Amount        *int64    `json:"amount,omitempty"`
	Type          EntryType `gorm:"not null" json:"type"`
	Notes         *string   `json:"notes,omitempty"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	UsageCount    int       `gorm:"not null;default:0" json:"usage_count"`
	LastUsedAt    *time.Time `json:"last_used_at,omitempty"`

	// Relationships
	Ledger      Ledger       `gorm:"foreignKey:LedgerID;constraint:OnDelete:CASCADE" json:"-"`
	Account     *Account     `gorm:"foreignKey:AccountID;constraint:OnDelete:SET NULL" json:"account,omitempty"`
	Category    *Category    `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:SET NULL" json:"subcategory,omitempty"`
}
