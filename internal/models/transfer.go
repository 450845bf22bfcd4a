package models

// Transfer moves money between two accounts of the same ledger.
// The source account loses Amount+Fee, the destination gains Amount;
// the fee is never transferred. FromAccountID and ToAccountID must
// differ, validated before persistence.
type Transfer struct {
	Base
	LedgerID      string  `gorm:"type:uuid;not null;index:idx_transfers_ledger_date" json:"ledger_id"`
	FromAccountID string  `gorm:"type:uuid;not null" json:"from_account_id"`
	ToAccountID   string  `gorm:"type:uuid;not null" json:"to_account_id"`
	Amount        int64   `gorm:"not null" json:"amount"`
	Fee           int64   `gorm:"not null;default:0" json:"fee"`
	Date          string  `gorm:"not null;index:idx_transfers_ledger_date" json:"date"`
	Time          *string `json:"time,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	// Relationships
	Ledger      Ledger  `gorm:"foreignKey:LedgerID;constraint:OnDelete:CASCADE" json:"-"`
	FromAccount Account `gorm:"foreignKey:FromAccountID;constraint:OnDelete:CASCADE" json:"from_account,omitempty"`
	ToAccount   Account `gorm:"foreignKey:ToAccountID;constraint:OnDelete:CASCADE" json:"to_account,omitempty"`
}
