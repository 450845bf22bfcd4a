package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/services"
)

// LedgerHandler handles ledger-related requests.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// CreateLedgerRequest represents the request payload for creating a ledger.
type CreateLedgerRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Icon        string  `json:"icon" binding:"max=50"`
	Color       string  `json:"color" binding:"omitempty,hex_color"`
}

// CreateLedger handles the creation of a new ledger.
func (h *LedgerHandler) CreateLedger(c *gin.Context) {
	var req CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ledger, err := h.ledgerService.CreateLedger(req.Name, req.Description, req.Icon, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ledger": ledger})
}

// GetLedgers handles listing all ledgers.
func (h *LedgerHandler) GetLedgers(c *gin.Context) {
	ledgers, err := h.ledgerService.GetLedgers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ledgers": ledgers})
}

// GetLedgerByID handles the retrieval of a specific ledger.
func (h *LedgerHandler) GetLedgerByID(c *gin.Context) {
	id, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ledger, err := h.ledgerService.GetLedgerByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ledger": ledger})
}

// UpdateLedgerRequest represents the request payload for updating a ledger.
// An empty description clears the stored value.
type UpdateLedgerRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
	Color       *string `json:"color" binding:"omitempty,hex_color"`
}

// UpdateLedger handles updating an existing ledger.
func (h *LedgerHandler) UpdateLedger(c *gin.Context) {
	id, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ledger, err := h.ledgerService.UpdateLedger(id, services.LedgerUpdateFields{
		Name:        req.Name,
		Description: optionalString(req.Description),
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ledger": ledger})
}

// SetDefaultLedger marks a ledger as the default one.
func (h *LedgerHandler) SetDefaultLedger(c *gin.Context) {
	id, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.SetDefaultLedger(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Default ledger updated"})
}

// DeleteLedger handles the deletion of a ledger and all its data.
func (h *LedgerHandler) DeleteLedger(c *gin.Context) {
	id, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.DeleteLedger(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ledger deleted successfully"})
}
