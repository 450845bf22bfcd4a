package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/models"
)

// accountService implements AccountServicer.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new account service.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

func validAccountType(t models.AccountType) bool {
	switch t {
	case models.AccountTypeDebit, models.AccountTypeCredit, models.AccountTypeOwed, models.AccountTypeDebt:
		return true
	}
	return false
}

// CreateAccount creates an account in the given ledger. The current
// balance starts equal to the initial balance.
func (s *accountService) CreateAccount(ledgerID string, fields AccountCreateFields) (*models.Account, error) {
	if !validAccountType(fields.Type) {
		return nil, apperrors.ErrInvalidAccountType
	}

	var ledger models.Ledger
	if err := s.db.First(&ledger, "id = ?", ledgerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if fields.PersonID != nil {
		var person models.Person
		if err := s.db.First(&person, "id = ?", *fields.PersonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrPersonNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	account := models.Account{
		LedgerID:       ledgerID,
		Name:           fields.Name,
		Type:           fields.Type,
		InitialBalance: fields.InitialBalance,
		CurrentBalance: fields.InitialBalance,
		CreditLimit:    fields.CreditLimit,
		PersonID:       fields.PersonID,
		Icon:           fields.Icon,
		Color:          fields.Color,
		IsActive:       true,
		Notes:          fields.Notes,
		StatementDate:  fields.StatementDate,
		DueDate:        fields.DueDate,
		PaymentDueDays: fields.PaymentDueDays,
	}
	if err := s.db.Create(&account).Error; err != nil {
		logger.Get().Errorw("failed to create account", "ledger_id", ledgerID, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// GetLedgerAccounts returns the ledger's accounts, active-only by default.
func (s *accountService) GetLedgerAccounts(ledgerID string, includeInactive bool) ([]models.Account, error) {
	query := s.db.Where("ledger_id = ?", ledgerID)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var accounts []models.Account
	if err := query.Order("account_type, name").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(id string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Preload("Person").First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount applies a partial update. Changing the initial balance
// shifts the current balance by the same difference so the running sum
// of entries stays intact.
func (s *accountService) UpdateAccount(id string, fields AccountUpdateFields) (*models.Account, error) {
	var account models.Account

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&account, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrAccountNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := make(map[string]interface{})
		if fields.Name != nil {
			updates["name"] = *fields.Name
		}
		if fields.InitialBalance != nil {
			diff := *fields.InitialBalance - account.InitialBalance
			updates["initial_balance"] = *fields.InitialBalance
			updates["current_balance"] = gorm.Expr("current_balance + ?", diff)
		}
		if fields.CreditLimit != nil {
			updates["credit_limit"] = *fields.CreditLimit
		}
		if fields.PersonID != nil {
			if *fields.PersonID != nil {
				var person models.Person
				if err := tx.First(&person, "id = ?", **fields.PersonID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return apperrors.ErrPersonNotFound
					}
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
			updates["person_id"] = *fields.PersonID
		}
		if fields.Icon != nil {
			updates["icon"] = *fields.Icon
		}
		if fields.Color != nil {
			updates["color"] = *fields.Color
		}
		if fields.IsActive != nil {
			updates["is_active"] = *fields.IsActive
		}
		if fields.Notes != nil {
			updates["notes"] = *fields.Notes
		}
		if fields.StatementDate != nil {
			updates["statement_date"] = *fields.StatementDate
		}
		if fields.DueDate != nil {
			updates["due_date"] = *fields.DueDate
		}
		if fields.PaymentDueDays != nil {
			updates["payment_due_days"] = *fields.PaymentDueDays
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&account).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return tx.First(&account, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// DeactivateAccount hides the account from default listings and the
// balance summary without touching its history.
func (s *accountService) DeactivateAccount(id string) error {
	result := s.db.Model(&models.Account{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// DeleteAccount permanently removes the account and every transaction
// and transfer touching it. Counterpart accounts of deleted transfers
// keep their current balance, so their balance no longer equals the sum
// over their surviving entries. Callers that need intact histories on
// the other side should use DeactivateAccount instead.
func (s *accountService) DeleteAccount(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrAccountNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Where("account_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("from_account_id = ? OR to_account_id = ?", id, id).Delete(&models.Transfer{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.TransactionTemplate{}).Where("account_id = ?", id).Update("account_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// AdjustBalance adds delta to the account's current balance using the
// caller's transaction handle. The arithmetic happens in SQL so
// concurrent adjustments cannot lose updates.
func (s *accountService) AdjustBalance(tx *gorm.DB, accountID string, delta int64) error {
	result := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("current_balance", gorm.Expr("current_balance + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// SetBalance overwrites the current balance with an absolute value.
func (s *accountService) SetBalance(accountID string, value int64) error {
	result := s.db.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("current_balance", value)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// GetBalanceSummary sums active account balances per type and derives
// net worth. Inactive accounts are excluded entirely.
func (s *accountService) GetBalanceSummary(ledgerID string) (*BalanceSummary, error) {
	var rows []struct {
		AccountType models.AccountType
		Total       int64
	}
	err := s.db.Model(&models.Account{}).
		Select("account_type, COALESCE(SUM(current_balance), 0) as total").
		Where("ledger_id = ? AND is_active = ?", ledgerID, true).
		Group("account_type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &BalanceSummary{}
	for _, row := range rows {
		switch row.AccountType {
		case models.AccountTypeDebit:
			summary.Debit = row.Total
		case models.AccountTypeCredit:
			summary.Credit = row.Total
		case models.AccountTypeOwed:
			summary.Owed = row.Total
		case models.AccountTypeDebt:
			summary.Debt = row.Total
		}
	}
	summary.NetWorth = summary.Debit + summary.Owed - summary.Credit - summary.Debt
	return summary, nil
}
