package models

// Person is a counterparty referenced by accounts of type owed/debt.
// Deleting a person detaches it from its accounts (the reference is
// nulled); it never blocks the delete or cascades to the accounts.
type Person struct {
	Base
	Name  string  `gorm:"not null" json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	Notes *string `json:"notes,omitempty"`

	Accounts []Account `gorm:"foreignKey:PersonID" json:"accounts,omitempty"`
}
