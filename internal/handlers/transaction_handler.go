package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/pagination"
	"pennywise/internal/services"
	"pennywise/internal/uuid"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	templateService    services.TemplateServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, templateService services.TemplateServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, templateService: templateService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	AccountID     string  `json:"account_id" binding:"required"`
	CategoryID    *string `json:"category_id"`
	SubcategoryID *string `json:"subcategory_id"`
	Amount        int64   `json:"amount" binding:"required,gt=0"`
	Type          string  `json:"type" binding:"required,entry_type"`
	Date          string  `json:"date" binding:"required,ledger_date"`
	Time          *string `json:"time" binding:"omitempty,clock_time"`
	Notes         *string `json:"notes" binding:"omitempty,max=500"`
	ReceiptPath   *string `json:"receipt_image_path" binding:"omitempty,max=500"`

	// TemplateID, when set, bumps that template's usage counter.
	TemplateID *string `json:"template_id"`
}

// CreateTransaction handles the creation of a new transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(ledgerID, services.TransactionCreateFields{
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Amount:        req.Amount,
		Type:          models.EntryType(req.Type),
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		ReceiptPath:   req.ReceiptPath,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if req.TemplateID != nil && uuid.IsValid(*req.TemplateID) {
		// Usage tracking is best-effort; the transaction already committed.
		_ = h.templateService.IncrementUsage(*req.TemplateID)
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetLedgerTransactions handles the paginated, filtered transaction listing.
func (h *TransactionHandler) GetLedgerTransactions(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetLedgerTransactions(ledgerID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRecentTransactions returns the newest transactions, ?limit= capped at 50.
func (h *TransactionHandler) GetRecentTransactions(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		parsed, parseErr := strconv.Atoi(v)
		if parseErr != nil || parsed <= 0 || parsed > 50 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be between 1 and 50"))
			return
		}
		limit = parsed
	}

	transactions, err := h.transactionService.GetRecentTransactions(ledgerID, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransactionsByDate returns all transactions of one calendar day.
func (h *TransactionHandler) GetTransactionsByDate(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	date := c.Param("date")
	if !isDateParam(date) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date, use YYYY-MM-DD"))
		return
	}

	transactions, err := h.transactionService.GetTransactionsByDate(ledgerID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransactionByID handles the retrieval of a specific transaction.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Empty strings clear nullable fields.
type UpdateTransactionRequest struct {
	AccountID     *string `json:"account_id"`
	CategoryID    *string `json:"category_id"`
	SubcategoryID *string `json:"subcategory_id"`
	Amount        *int64  `json:"amount" binding:"omitempty,gt=0"`
	Type          *string `json:"type" binding:"omitempty,entry_type"`
	Date          *string `json:"date" binding:"omitempty,ledger_date"`
	Time          *string `json:"time"`
	Notes         *string `json:"notes" binding:"omitempty,max=500"`
	ReceiptPath   *string `json:"receipt_image_path" binding:"omitempty,max=500"`
}

// UpdateTransaction handles updating an existing transaction. The account
// balance is corrected by reversing the old entry and applying the new one.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.TransactionUpdateFields{
		AccountID:     req.AccountID,
		CategoryID:    optionalString(req.CategoryID),
		SubcategoryID: optionalString(req.SubcategoryID),
		Amount:        req.Amount,
		Date:          req.Date,
		Time:          optionalString(req.Time),
		Notes:         optionalString(req.Notes),
		ReceiptPath:   optionalString(req.ReceiptPath),
	}
	if req.Type != nil {
		entryType := models.EntryType(*req.Type)
		fields.Type = &entryType
	}

	transaction, err := h.transactionService.UpdateTransaction(id, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles the deletion of a transaction.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("start_date"); v != "" {
		if !isDateParam(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date, use YYYY-MM-DD")
		}
		filter.StartDate = &v
	}
	if v := c.Query("end_date"); v != "" {
		if !isDateParam(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date, use YYYY-MM-DD")
		}
		filter.EndDate = &v
	}
	if v := c.Query("type"); v != "" {
		entryType := models.EntryType(v)
		switch entryType {
		case models.EntryTypeExpense, models.EntryTypeIncome:
			filter.Type = &entryType
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be expense or income")
		}
	}
	if v := c.Query("category_id"); v != "" {
		if !uuid.IsValid(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category_id")
		}
		filter.CategoryID = &v
	}
	if v := c.Query("subcategory_id"); v != "" {
		if !uuid.IsValid(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid subcategory_id")
		}
		filter.SubcategoryID = &v
	}
	if v := c.Query("account_id"); v != "" {
		if !uuid.IsValid(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid account_id")
		}
		filter.AccountID = &v
	}

	return filter, nil
}
