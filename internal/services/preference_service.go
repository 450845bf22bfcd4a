package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// preferenceService implements PreferenceServicer on top of a simple
// key-value table.
type preferenceService struct {
	db *gorm.DB
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(db *gorm.DB) PreferenceServicer {
	return &preferenceService{db: db}
}

// Get returns the stored value for a key, or empty string when unset.
func (s *preferenceService) Get(key string) (string, error) {
	var pref models.Preference
	if err := s.db.First(&pref, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pref.Value, nil
}

// Set upserts a preference value.
func (s *preferenceService) Set(key, value string) error {
	pref := models.Preference{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ActiveLedgerID returns the ledger the user is currently working in,
// falling back to the default ledger when none was chosen yet.
func (s *preferenceService) ActiveLedgerID() (string, error) {
	id, err := s.Get(models.PreferenceActiveLedger)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	var ledger models.Ledger
	if err := s.db.First(&ledger, "is_default = ?", true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrLedgerNotFound
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ledger.ID, nil
}

// SetActiveLedger validates the ledger exists before storing it.
func (s *preferenceService) SetActiveLedger(ledgerID string) error {
	var ledger models.Ledger
	if err := s.db.First(&ledger, "id = ?", ledgerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrLedgerNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.Set(models.PreferenceActiveLedger, ledgerID)
}

// ThemeMode returns the stored theme, defaulting to "system".
func (s *preferenceService) ThemeMode() (string, error) {
	mode, err := s.Get(models.PreferenceThemeMode)
	if err != nil {
		return "", err
	}
	if mode == "" {
		mode = "system"
	}
	return mode, nil
}

// SetThemeMode stores the theme preference.
func (s *preferenceService) SetThemeMode(mode string) error {
	switch mode {
	case "light", "dark", "system":
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Theme mode must be light, dark or system")
	}
	return s.Set(models.PreferenceThemeMode, mode)
}
