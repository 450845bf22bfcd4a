package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/pagination"
	"pennywise/internal/services"
	"pennywise/internal/uuid"
)

// TransferHandler handles transfer-related requests.
type TransferHandler struct {
	transferService services.TransferServicer
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferService services.TransferServicer) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// CreateTransferRequest represents the request payload for creating a transfer.
type CreateTransferRequest struct {
	FromAccountID string  `json:"from_account_id" binding:"required"`
	ToAccountID   string  `json:"to_account_id" binding:"required"`
	Amount        int64   `json:"amount" binding:"required,gt=0"`
	Fee           int64   `json:"fee" binding:"omitempty,gte=0"`
	Date          string  `json:"date" binding:"required,ledger_date"`
	Time          *string `json:"time" binding:"omitempty,clock_time"`
	Notes         *string `json:"notes" binding:"omitempty,max=500"`
}

// CreateTransfer handles the creation of a transfer between two accounts.
func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transfer, err := h.transferService.CreateTransfer(ledgerID, services.TransferCreateFields{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Fee:           req.Fee,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transfer": transfer})
}

// GetLedgerTransfers handles the paginated transfer listing.
func (h *TransferHandler) GetLedgerTransfers(c *gin.Context) {
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

	var filter services.TransferFilter
	if v := c.Query("start_date"); v != "" {
		if !isDateParam(v) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date, use YYYY-MM-DD"))
			return
		}
		filter.StartDate = &v
	}
	if v := c.Query("end_date"); v != "" {
		if !isDateParam(v) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date, use YYYY-MM-DD"))
			return
		}
		filter.EndDate = &v
	}
	if v := c.Query("account_id"); v != "" {
		if !uuid.IsValid(v) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid account_id"))
			return
		}
		filter.AccountID = &v
	}

	result, err := h.transferService.GetLedgerTransfers(ledgerID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransferByID handles the retrieval of a specific transfer.
func (h *TransferHandler) GetTransferByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transfer, err := h.transferService.GetTransferByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transfer": transfer})
}

// UpdateTransferRequest represents the request payload for updating a transfer.
type UpdateTransferRequest struct {
	FromAccountID *string `json:"from_account_id"`
	ToAccountID   *string `json:"to_account_id"`
	Amount        *int64  `json:"amount" binding:"omitempty,gt=0"`
	Fee           *int64  `json:"fee" binding:"omitempty,gte=0"`
	Date          *string `json:"date" binding:"omitempty,ledger_date"`
	Time          *string `json:"time"`
	Notes         *string `json:"notes" binding:"omitempty,max=500"`
}

// UpdateTransfer handles updating an existing transfer. Both account
// balances are corrected by reversing the old legs and applying the new.
func (h *TransferHandler) UpdateTransfer(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transfer, err := h.transferService.UpdateTransfer(id, services.TransferUpdateFields{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Fee:           req.Fee,
		Date:          req.Date,
		Time:          optionalString(req.Time),
		Notes:         optionalString(req.Notes),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transfer": transfer})
}

// DeleteTransfer handles the deletion of a transfer.
func (h *TransferHandler) DeleteTransfer(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transferService.DeleteTransfer(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transfer deleted successfully"})
}
