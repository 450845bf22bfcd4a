package models

// Transaction is a single expense or income entry against one account.
// Amount is an unsigned value in minor currency units (cents); the sign
// of the balance effect is derived from Type, never stored.
//
// Date is a "YYYY-MM-DD" string and Time an optional "HH:MM" string so
// that SQLite grouping and the date/time/id descending sort order are
// exact lexicographic comparisons.
type Transaction struct {
	Base
	LedgerID      string    `gorm:"type:uuid;not null;index:idx_transactions_ledger_date" json:"ledger_id"`
	AccountID     string    `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID    *string   `gorm:"type:uuid;index" json:"category_id,omitempty"`
	SubcategoryID *string   `gorm:"type:uuid" json:"subcategory_id,omitempty"`
	Amount        int64     `gorm:"not null" json:"amount"`
	Type          EntryType `gorm:"not null" json:"type"`
	Date          string    `gorm:"not null;index:idx_transactions_ledger_date" json:"date"`
	Time          *string   `json:"time,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	ReceiptPath   *string   `gorm:"column:receipt_image_path" json:"receipt_image_path,omitempty"`

	// Relationships
	Ledger      Ledger       `gorm:"foreignKey:LedgerID;constraint:OnDelete:CASCADE" json:"-"`
	Account     Account      `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"account,omitempty"`
	Category    *Category    `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:SET NULL" json:"subcategory,omitempty"`
}
