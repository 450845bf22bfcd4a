package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/models"
	"pennywise/internal/pagination"
)

// transferService implements TransferServicer.
type transferService struct {
	db       *gorm.DB
	accounts AccountServicer
}

// NewTransferService creates a new transfer service.
func NewTransferService(db *gorm.DB, accounts AccountServicer) TransferServicer {
	return &transferService{db: db, accounts: accounts}
}

// applyTransfer adjusts both legs: the source pays amount plus fee, the
// destination receives only the amount. The fee leaves the tracked
// system entirely.
func (s *transferService) applyTransfer(tx *gorm.DB, fromID, toID string, amount, fee int64) error {
	if err := s.accounts.AdjustBalance(tx, fromID, -(amount + fee)); err != nil {
		return err
	}
	return s.accounts.AdjustBalance(tx, toID, amount)
}

// reverseTransfer undoes applyTransfer for the same values.
func (s *transferService) reverseTransfer(tx *gorm.DB, fromID, toID string, amount, fee int64) error {
	if err := s.accounts.AdjustBalance(tx, fromID, amount+fee); err != nil {
		return err
	}
	return s.accounts.AdjustBalance(tx, toID, -amount)
}

// CreateTransfer records a transfer between two distinct accounts and
// moves both balances in one database transaction.
func (s *transferService) CreateTransfer(ledgerID string, fields TransferCreateFields) (*models.Transfer, error) {
	if fields.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
	}
	if fields.Fee < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Fee cannot be negative")
	}
	if fields.FromAccountID == fields.ToAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}

	transfer := models.Transfer{
		LedgerID:      ledgerID,
		FromAccountID: fields.FromAccountID,
		ToAccountID:   fields.ToAccountID,
		Amount:        fields.Amount,
		Fee:           fields.Fee,
		Date:          fields.Date,
		Time:          fields.Time,
		Notes:         fields.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ledger models.Ledger
		if err := tx.First(&ledger, "id = ?", ledgerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrLedgerNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var count int64
		if err := tx.Model(&models.Account{}).
			Where("id IN ?", []string{fields.FromAccountID, fields.ToAccountID}).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count != 2 {
			return apperrors.ErrAccountNotFound
		}

		if err := tx.Create(&transfer).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.applyTransfer(tx, fields.FromAccountID, fields.ToAccountID, fields.Amount, fields.Fee)
	})
	if err != nil {
		logger.Get().Errorw("failed to create transfer", "ledger_id", ledgerID, "error", err)
		return nil, err
	}
	return &transfer, nil
}

// GetLedgerTransfers lists a ledger's transfers newest first. The
// account filter matches either leg.
func (s *transferService) GetLedgerTransfers(ledgerID string, page pagination.PageRequest, filter TransferFilter) (*pagination.PageResponse[models.Transfer], error) {
	page.Normalize()

	query := s.db.Model(&models.Transfer{}).Where("ledger_id = ?", ledgerID)
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.AccountID != nil {
		query = query.Where("from_account_id = ? OR to_account_id = ?", *filter.AccountID, *filter.AccountID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transfers []models.Transfer
	err := query.
		Preload("FromAccount").Preload("ToAccount").
		Order("date DESC, time DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transfers).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(transfers, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetTransferByID retrieves a single transfer.
func (s *transferService) GetTransferByID(id string) (*models.Transfer, error) {
	var transfer models.Transfer
	err := s.db.Preload("FromAccount").Preload("ToAccount").
		First(&transfer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransferNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transfer, nil
}

// UpdateTransfer reverses the old legs, applies the patch, then applies
// the new legs inside one database transaction.
func (s *transferService) UpdateTransfer(id string, fields TransferUpdateFields) (*models.Transfer, error) {
	if fields.Amount != nil && *fields.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
	}
	if fields.Fee != nil && *fields.Fee < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Fee cannot be negative")
	}

	var transfer models.Transfer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&transfer, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransferNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		oldFrom, oldTo := transfer.FromAccountID, transfer.ToAccountID
		oldAmount, oldFee := transfer.Amount, transfer.Fee

		newFrom, newTo := oldFrom, oldTo
		if fields.FromAccountID != nil {
			newFrom = *fields.FromAccountID
		}
		if fields.ToAccountID != nil {
			newTo = *fields.ToAccountID
		}
		if newFrom == newTo {
			return apperrors.ErrSameAccountTransfer
		}
		newAmount, newFee := oldAmount, oldFee
		if fields.Amount != nil {
			newAmount = *fields.Amount
		}
		if fields.Fee != nil {
			newFee = *fields.Fee
		}

		if newFrom != oldFrom || newTo != oldTo {
			var count int64
			if err := tx.Model(&models.Account{}).
				Where("id IN ?", []string{newFrom, newTo}).
				Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count != 2 {
				return apperrors.ErrAccountNotFound
			}
		}

		updates := make(map[string]interface{})
		if fields.FromAccountID != nil {
			updates["from_account_id"] = *fields.FromAccountID
		}
		if fields.ToAccountID != nil {
			updates["to_account_id"] = *fields.ToAccountID
		}
		if fields.Amount != nil {
			updates["amount"] = *fields.Amount
		}
		if fields.Fee != nil {
			updates["fee"] = *fields.Fee
		}
		if fields.Date != nil {
			updates["date"] = *fields.Date
		}
		if fields.Time != nil {
			updates["time"] = *fields.Time
		}
		if fields.Notes != nil {
			updates["notes"] = *fields.Notes
		}

		if len(updates) > 0 {
			if err := tx.Model(&transfer).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if err := s.reverseTransfer(tx, oldFrom, oldTo, oldAmount, oldFee); err != nil {
			return err
		}
		if err := s.applyTransfer(tx, newFrom, newTo, newAmount, newFee); err != nil {
			return err
		}
		return tx.First(&transfer, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

// DeleteTransfer removes the row and restores both balances.
func (s *transferService) DeleteTransfer(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var transfer models.Transfer
		if err := tx.First(&transfer, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransferNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(&transfer).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.reverseTransfer(tx, transfer.FromAccountID, transfer.ToAccountID, transfer.Amount, transfer.Fee)
	})
}
