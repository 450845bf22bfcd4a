package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name           string  `json:"name" binding:"required,max=100"`
	Type           string  `json:"type" binding:"required,account_type"`
	InitialBalance int64   `json:"initial_balance"`
	CreditLimit    *int64  `json:"credit_limit" binding:"omitempty,gt=0"`
	PersonID       *string `json:"person_id"`
	Icon           string  `json:"icon" binding:"max=50"`
	Color          string  `json:"color" binding:"omitempty,hex_color"`
	Notes          *string `json:"notes" binding:"omitempty,max=500"`
	StatementDate  *int    `json:"statement_date" binding:"omitempty,min=1,max=31"`
	DueDate        *int    `json:"due_date" binding:"omitempty,min=1,max=31"`
	PaymentDueDays *int    `json:"payment_due_days" binding:"omitempty,min=1,max=90"`
}

// CreateAccount handles the creation of a new account within a ledger.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(ledgerID, services.AccountCreateFields{
		Name:           req.Name,
		Type:           models.AccountType(req.Type),
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
		PersonID:       req.PersonID,
		Icon:           req.Icon,
		Color:          req.Color,
		Notes:          req.Notes,
		StatementDate:  req.StatementDate,
		DueDate:        req.DueDate,
		PaymentDueDays: req.PaymentDueDays,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetLedgerAccounts handles listing a ledger's accounts. Pass
// ?include_inactive=true to include deactivated accounts.
func (h *AccountHandler) GetLedgerAccounts(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	accounts, err := h.accountService.GetLedgerAccounts(ledgerID, includeInactive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// GetAccountByID handles the retrieval of a specific account.
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateAccountRequest represents the request payload for updating an account.
// Empty strings clear nullable text fields; zero clears nullable numerics.
type UpdateAccountRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=100"`
	InitialBalance *int64  `json:"initial_balance"`
	CreditLimit    *int64  `json:"credit_limit"`
	PersonID       *string `json:"person_id"`
	Icon           *string `json:"icon" binding:"omitempty,max=50"`
	Color          *string `json:"color" binding:"omitempty,hex_color"`
	IsActive       *bool   `json:"is_active"`
	Notes          *string `json:"notes" binding:"omitempty,max=500"`
	StatementDate  *int    `json:"statement_date" binding:"omitempty,max=31"`
	DueDate        *int    `json:"due_date" binding:"omitempty,max=31"`
	PaymentDueDays *int    `json:"payment_due_days" binding:"omitempty,max=90"`
}

// UpdateAccount handles updating an existing account.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(id, services.AccountUpdateFields{
		Name:           req.Name,
		InitialBalance: req.InitialBalance,
		CreditLimit:    optionalInt64(req.CreditLimit),
		PersonID:       optionalString(req.PersonID),
		Icon:           req.Icon,
		Color:          req.Color,
		IsActive:       req.IsActive,
		Notes:          optionalString(req.Notes),
		StatementDate:  optionalInt(req.StatementDate),
		DueDate:        optionalInt(req.DueDate),
		PaymentDueDays: optionalInt(req.PaymentDueDays),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeactivateAccount hides an account without deleting its history.
func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeactivateAccount(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated"})
}

// DeleteAccount handles the permanent deletion of an account.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// SetBalanceRequest represents the request payload for a balance correction.
type SetBalanceRequest struct {
	CurrentBalance int64 `json:"current_balance"`
}

// SetBalance overwrites the account's current balance.
func (h *AccountHandler) SetBalance(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.accountService.SetBalance(id, req.CurrentBalance); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Balance updated"})
}

// GetBalanceSummary returns per-type balance totals and net worth for a ledger.
func (h *AccountHandler) GetBalanceSummary(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.accountService.GetBalanceSummary(ledgerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
