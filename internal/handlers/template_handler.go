package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/services"
)

// TemplateHandler handles transaction template requests.
type TemplateHandler struct {
	templateService services.TemplateServicer
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService services.TemplateServicer) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// CreateTemplateRequest represents the request payload for creating a template.
type CreateTemplateRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	AccountID     *string `json:"account_id"`
	CategoryID    *string `json:"category_id"`
	SubcategoryID *string `json:"subcategory_id"`
	Amount        *int64  `json:"amount" binding:"omitempty,gt=0"`
	Type          string  `json:"type" binding:"required,entry_type"`
	Notes         *string `json:"notes" binding:"omitempty,max=500"`
	Icon          string  `json:"icon" binding:"max=50"`
	Color         string  `json:"color" binding:"omitempty,hex_color"`
}

// CreateTemplate handles the creation of a new template.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	template, err := h.templateService.CreateTemplate(ledgerID, services.TemplateCreateFields{
		Name:          req.Name,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Amount:        req.Amount,
		Type:          models.EntryType(req.Type),
		Notes:         req.Notes,
		Icon:          req.Icon,
		Color:         req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// GetLedgerTemplates handles listing a ledger's templates, most used first.
func (h *TemplateHandler) GetLedgerTemplates(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	templates, err := h.templateService.GetLedgerTemplates(ledgerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// GetTemplateByID handles the retrieval of a specific template.
func (h *TemplateHandler) GetTemplateByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.templateService.GetTemplateByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// UpdateTemplateRequest represents the request payload for updating a
// template. Empty strings clear nullable references; a zero amount clears
// the prefilled amount.
type UpdateTemplateRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	AccountID     *string `json:"account_id"`
	CategoryID    *string `json:"category_id"`
	SubcategoryID *string `json:"subcategory_id"`
	Amount        *int64  `json:"amount" binding:"omitempty,gte=0"`
	Type          *string `json:"type" binding:"omitempty,entry_type"`
	Notes         *string `json:"notes" binding:"omitempty,max=500"`
	Icon          *string `json:"icon" binding:"omitempty,max=50"`
	Color         *string `json:"color" binding:"omitempty,hex_color"`
}

// UpdateTemplate handles updating an existing template.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.TemplateUpdateFields{
		Name:          req.Name,
		AccountID:     optionalString(req.AccountID),
		CategoryID:    optionalString(req.CategoryID),
		SubcategoryID: optionalString(req.SubcategoryID),
		Amount:        optionalInt64(req.Amount),
		Notes:         optionalString(req.Notes),
		Icon:          req.Icon,
		Color:         req.Color,
	}
	if req.Type != nil {
		entryType := models.EntryType(*req.Type)
		fields.Type = &entryType
	}

	template, err := h.templateService.UpdateTemplate(id, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// DeleteTemplate handles the deletion of a template.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.templateService.DeleteTemplate(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// UseTemplate bumps a template's usage counter.
func (h *TemplateHandler) UseTemplate(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.templateService.IncrementUsage(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template usage recorded"})
}
