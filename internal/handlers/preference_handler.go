package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/services"
)

// PreferenceHandler handles application preference requests.
type PreferenceHandler struct {
	preferenceService services.PreferenceServicer
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(preferenceService services.PreferenceServicer) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// GetPreferences returns the resolved application preferences.
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	activeLedgerID, err := h.preferenceService.ActiveLedgerID()
	if err != nil {
		respondWithError(c, err)
		return
	}
	themeMode, err := h.preferenceService.ThemeMode()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active_ledger_id": activeLedgerID,
		"theme_mode":       themeMode,
	})
}

// SetActiveLedgerRequest represents the request payload for switching ledgers.
type SetActiveLedgerRequest struct {
	LedgerID string `json:"ledger_id" binding:"required"`
}

// SetActiveLedger switches the ledger the client works in.
func (h *PreferenceHandler) SetActiveLedger(c *gin.Context) {
	var req SetActiveLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.preferenceService.SetActiveLedger(req.LedgerID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Active ledger updated"})
}

// SetThemeModeRequest represents the request payload for changing the theme.
type SetThemeModeRequest struct {
	ThemeMode string `json:"theme_mode" binding:"required"`
}

// SetThemeMode stores the light/dark/system theme preference.
func (h *PreferenceHandler) SetThemeMode(c *gin.Context) {
	var req SetThemeModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.preferenceService.SetThemeMode(req.ThemeMode); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Theme updated"})
}
