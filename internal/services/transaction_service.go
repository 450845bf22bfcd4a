package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/models"
	"pennywise/internal/pagination"
)

// transactionService implements TransactionServicer.
type transactionService struct {
	db       *gorm.DB
	accounts AccountServicer
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(db *gorm.DB, accounts AccountServicer) TransactionServicer {
	return &transactionService{db: db, accounts: accounts}
}

// entryDelta converts a stored positive amount into the signed balance
// effect: expenses decrease the account, income increases it.
func entryDelta(entryType models.EntryType, amount int64) int64 {
	if entryType == models.EntryTypeExpense {
		return -amount
	}
	return amount
}

func validEntryType(t models.EntryType) bool {
	return t == models.EntryTypeExpense || t == models.EntryTypeIncome
}

// CreateTransaction records a transaction and applies its balance
// effect to the account in one database transaction.
func (s *transactionService) CreateTransaction(ledgerID string, fields TransactionCreateFields) (*models.Transaction, error) {
	if fields.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
	}
	if !validEntryType(fields.Type) {
		return nil, apperrors.ErrInvalidEntryType
	}

	txn := models.Transaction{
		LedgerID:      ledgerID,
		AccountID:     fields.AccountID,
		CategoryID:    fields.CategoryID,
		SubcategoryID: fields.SubcategoryID,
		Amount:        fields.Amount,
		Type:          fields.Type,
		Date:          fields.Date,
		Time:          fields.Time,
		Notes:         fields.Notes,
		ReceiptPath:   fields.ReceiptPath,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ledger models.Ledger
		if err := tx.First(&ledger, "id = ?", ledgerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrLedgerNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var account models.Account
		if err := tx.First(&account, "id = ?", fields.AccountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrAccountNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if fields.CategoryID != nil {
			var category models.Category
			if err := tx.First(&category, "id = ?", *fields.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrCategoryNotFound
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if fields.SubcategoryID != nil {
			var sub models.Subcategory
			if err := tx.First(&sub, "id = ?", *fields.SubcategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrSubcategoryNotFound
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if err := tx.Create(&txn).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accounts.AdjustBalance(tx, fields.AccountID, entryDelta(fields.Type, fields.Amount))
	})
	if err != nil {
		logger.Get().Errorw("failed to create transaction", "ledger_id", ledgerID, "error", err)
		return nil, err
	}
	return &txn, nil
}

// GetLedgerTransactions lists a ledger's transactions newest first, with
// optional range and dimension filters.
func (s *transactionService) GetLedgerTransactions(ledgerID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Normalize()

	query := s.db.Model(&models.Transaction{}).Where("ledger_id = ?", ledgerID)
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SubcategoryID != nil {
		query = query.Where("subcategory_id = ?", *filter.SubcategoryID)
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var txns []models.Transaction
	err := query.
		Preload("Account").Preload("Category").Preload("Subcategory").
		Order("date DESC, time DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&txns).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(txns, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetRecentTransactions returns the newest transactions in a ledger.
func (s *transactionService) GetRecentTransactions(ledgerID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	var txns []models.Transaction
	err := s.db.Where("ledger_id = ?", ledgerID).
		Preload("Account").Preload("Category").Preload("Subcategory").
		Order("date DESC, time DESC, id DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txns, nil
}

// GetTransactionsByDate returns all of a day's transactions.
func (s *transactionService) GetTransactionsByDate(ledgerID, date string) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.Where("ledger_id = ? AND date = ?", ledgerID, date).
		Preload("Account").Preload("Category").Preload("Subcategory").
		Order("time DESC, id DESC").
		Find(&txns).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txns, nil
}

// GetTransactionByID retrieves a single transaction.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.Preload("Account").Preload("Category").Preload("Subcategory").
		First(&txn, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &txn, nil
}

// UpdateTransaction reverses the old balance effect, applies the patch,
// then applies the new effect, all in one database transaction. This
// holds even when the account itself changes.
func (s *transactionService) UpdateTransaction(id string, fields TransactionUpdateFields) (*models.Transaction, error) {
	if fields.Amount != nil && *fields.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
	}
	if fields.Type != nil && !validEntryType(*fields.Type) {
		return nil, apperrors.ErrInvalidEntryType
	}

	var txn models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&txn, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		oldAccountID := txn.AccountID
		oldDelta := entryDelta(txn.Type, txn.Amount)

		newAccountID := oldAccountID
		if fields.AccountID != nil {
			newAccountID = *fields.AccountID
		}
		newAmount := txn.Amount
		if fields.Amount != nil {
			newAmount = *fields.Amount
		}
		newType := txn.Type
		if fields.Type != nil {
			newType = *fields.Type
		}

		if newAccountID != oldAccountID {
			var account models.Account
			if err := tx.First(&account, "id = ?", newAccountID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrAccountNotFound
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if fields.CategoryID != nil && *fields.CategoryID != nil {
			var category models.Category
			if err := tx.First(&category, "id = ?", **fields.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrCategoryNotFound
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if fields.SubcategoryID != nil && *fields.SubcategoryID != nil {
			var sub models.Subcategory
			if err := tx.First(&sub, "id = ?", **fields.SubcategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrSubcategoryNotFound
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		updates := make(map[string]interface{})
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
		if fields.Date != nil {
			updates["date"] = *fields.Date
		}
		if fields.Time != nil {
			updates["time"] = *fields.Time
		}
		if fields.Notes != nil {
			updates["notes"] = *fields.Notes
		}
		if fields.ReceiptPath != nil {
			updates["receipt_image_path"] = *fields.ReceiptPath
		}

		if len(updates) > 0 {
			if err := tx.Model(&txn).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		// Reverse the old effect, apply the new one.
		if err := s.accounts.AdjustBalance(tx, oldAccountID, -oldDelta); err != nil {
			return err
		}
		if err := s.accounts.AdjustBalance(tx, newAccountID, entryDelta(newType, newAmount)); err != nil {
			return err
		}
		return tx.First(&txn, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// DeleteTransaction removes the row and reverses its balance effect.
func (s *transactionService) DeleteTransaction(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.First(&txn, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(&txn).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accounts.AdjustBalance(tx, txn.AccountID, -entryDelta(txn.Type, txn.Amount))
	})
}
