package models

import "time"

// Preference keys persisted by the application.
const (
	PreferenceActiveLedger = "active_ledger_id"
	PreferenceThemeMode    = "theme_mode"
)

// Preference is a persisted key-value setting (active ledger, theme
// mode). Read at startup, written on change.
type Preference struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
