package models

// EntryType classifies a transaction, category or template as money in
// or money out. The sign of a balance delta is always derived from the
// entry type; amounts themselves are stored unsigned.
type EntryType string

const (
	EntryTypeExpense EntryType = "expense"
	EntryTypeIncome  EntryType = "income"
)

// Category groups transactions for reporting. Seeded system categories
// cannot be deleted.
type Category struct {
	Base
	Name      string    `gorm:"not null" json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Type      EntryType `gorm:"not null" json:"type"`
	IsSystem  bool      `gorm:"not null;default:false" json:"is_system"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

// Subcategory belongs to exactly one category and cascade-deletes with it.
type Subcategory struct {
	Base
	CategoryID string  `gorm:"type:uuid;not null;index" json:"category_id"`
	Name       string  `gorm:"not null" json:"name"`
	Icon       *string `json:"icon,omitempty"`
	SortOrder  int     `gorm:"not null;default:0" json:"sort_order"`

	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}
