package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/models"
)

// ledgerService implements LedgerServicer.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// CreateLedger creates a ledger. The first ledger ever created becomes
// the default automatically.
func (s *ledgerService) CreateLedger(name string, description *string, icon, color string) (*models.Ledger, error) {
	ledger := models.Ledger{
		Name:        name,
		Description: description,
		Icon:        icon,
		Color:       color,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Ledger{}).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		ledger.IsDefault = count == 0

		if err := tx.Create(&ledger).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		logger.Get().Errorw("failed to create ledger", "name", name, "error", err)
		return nil, err
	}
	return &ledger, nil
}

// GetLedgers lists all ledgers, default first.
func (s *ledgerService) GetLedgers() ([]models.Ledger, error) {
	var ledgers []models.Ledger
	if err := s.db.Order("is_default DESC, name").Find(&ledgers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ledgers, nil
}

// GetLedgerByID retrieves a single ledger.
func (s *ledgerService) GetLedgerByID(id string) (*models.Ledger, error) {
	var ledger models.Ledger
	if err := s.db.First(&ledger, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &ledger, nil
}

// GetDefaultLedger returns the ledger flagged as default.
func (s *ledgerService) GetDefaultLedger() (*models.Ledger, error) {
	var ledger models.Ledger
	if err := s.db.First(&ledger, "is_default = ?", true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &ledger, nil
}

// UpdateLedger applies a partial update.
func (s *ledgerService) UpdateLedger(id string, fields LedgerUpdateFields) (*models.Ledger, error) {
	var ledger models.Ledger
	if err := s.db.First(&ledger, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Icon != nil {
		updates["icon"] = *fields.Icon
	}
	if fields.Color != nil {
		updates["color"] = *fields.Color
	}
	if len(updates) > 0 {
		if err := s.db.Model(&ledger).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &ledger, nil
}

// SetDefaultLedger makes the given ledger the sole default: clear the
// flag everywhere, then set it on the target. Both statements run in
// one transaction, so an unknown id rolls back the clear and the
// previous default survives.
func (s *ledgerService) SetDefaultLedger(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Ledger{}).Where("is_default = ?", true).Update("is_default", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result := tx.Model(&models.Ledger{}).Where("id = ?", id).Update("is_default", true)
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrLedgerNotFound
		}
		return nil
	})
}

// DeleteLedger removes a ledger and all of its data. The default ledger
// and the active ledger (per preferences) are protected.
func (s *ledgerService) DeleteLedger(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ledger models.Ledger
		if err := tx.First(&ledger, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrLedgerNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if ledger.IsDefault {
			return apperrors.ErrProtectedLedger
		}

		var pref models.Preference
		err := tx.First(&pref, "key = ?", models.PreferenceActiveLedger).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err == nil && pref.Value == id {
			return apperrors.ErrProtectedLedger
		}

		if err := tx.Where("ledger_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("ledger_id = ?", id).Delete(&models.Transfer{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("ledger_id = ?", id).Delete(&models.TransactionTemplate{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("ledger_id = ?", id).Delete(&models.Account{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&ledger).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
