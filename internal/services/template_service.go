package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// templateService implements TemplateServicer.
type templateService struct {
	db *gorm.DB
}

// NewTemplateService creates a new template service.
func NewTemplateService(db *gorm.DB) TemplateServicer {
	return &templateService{db: db}
}

func (s *templateService) CreateTemplate(ledgerID string, fields TemplateCreateFields) (*models.TransactionTemplate, error) {
	if !validEntryType(fields.Type) {
		return nil, apperrors.ErrInvalidEntryType
	}
	if fields.Amount != nil && *fields.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
	}

	var ledger models.Ledger
	if err := s.db.First(&ledger, "id = ?", ledgerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	tpl := models.TransactionTemplate{
		LedgerID:      ledgerID,
		Name:          fields.Name,
		AccountID:     fields.AccountID,
		CategoryID:    fields.CategoryID,
		SubcategoryID: fields.SubcategoryID,
		Amount:        fields.Amount,
		Type:          fields.Type,
		Notes:         fields.Notes,
		Icon:          fields.Icon,
		Color:         fields.Color,
	}
	if err := s.db.Create(&tpl).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tpl, nil
}

// GetLedgerTemplates lists templates, the most used first so frequent
// entries surface at the top of pickers.
func (s *templateService) GetLedgerTemplates(ledgerID string) ([]models.TransactionTemplate, error) {
	var tpls []models.TransactionTemplate
	err := s.db.Where("ledger_id = ?", ledgerID).
		Preload("Account").Preload("Category").Preload("Subcategory").
		Order("usage_count DESC, name").
		Find(&tpls).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tpls, nil
}

func (s *templateService) GetTemplateByID(id string) (*models.TransactionTemplate, error) {
	var tpl models.TransactionTemplate
	err := s.db.Preload("Account").Preload("Category").Preload("Subcategory").
		First(&tpl, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tpl, nil
}

func (s *templateService) UpdateTemplate(id string, fields TemplateUpdateFields) (*models.TransactionTemplate, error) {
	if fields.Type != nil && !validEntryType(*fields.Type) {
		return nil, apperrors.ErrInvalidEntryType
	}
	if fields.Amount != nil && *fields.Amount != nil && **fields.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
	}

	var tpl models.TransactionTemplate
	if err := s.db.First(&tpl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.AccountID != nil {
		updates["account_id"] = *fields.AccountID
	}
	if fields.CategoryID != nil {
		updates["category_id"] = *fields.CategoryID
	}
	if fields.SubcategoryID != nil {
		updates["subcategory_id"] = *fields.SubcategoryID
	}
	if fields.Amount != nil {
		updates["amount"] = *fields.Amount
	}
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}
	if fields.Icon != nil {
		updates["icon"] = *fields.Icon
	}
	if fields.Color != nil {
		updates["color"] = *fields.Color
	}
	if len(updates) > 0 {
		if err := s.db.Model(&tpl).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &tpl, nil
}

func (s *templateService) DeleteTemplate(id string) error {
	result := s.db.Delete(&models.TransactionTemplate{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTemplateNotFound
	}
	return nil
}

// IncrementUsage bumps the usage counter and stamps last_used_at.
func (s *templateService) IncrementUsage(id string) error {
	now := time.Now()
	result := s.db.Model(&models.TransactionTemplate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"usage_count":  gorm.Expr("usage_count + 1"),
			"last_used_at": &now,
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTemplateNotFound
	}
	return nil
}
