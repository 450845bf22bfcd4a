package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/services"
)

// ReportHandler handles reporting and export requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseDateRange reads start_date/end_date query parameters, defaulting
// to the current calendar month.
func parseDateRange(c *gin.Context) (string, string, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	end := now.Format("2006-01-02")

	if v := c.Query("start_date"); v != "" {
		if !isDateParam(v) {
			return "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date, use YYYY-MM-DD")
		}
		start = v
	}
	if v := c.Query("end_date"); v != "" {
		if !isDateParam(v) {
			return "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date, use YYYY-MM-DD")
		}
		end = v
	}
	if start > end {
		return "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must not be after end_date")
	}
	return start, end, nil
}

// GetDailyTotals returns per-day income/expense totals for a range.
func (h *ReportHandler) GetDailyTotals(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.GetDailyTotals(ledgerID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily_totals": totals})
}

// GetCategorySpending returns the per-category breakdown for a range.
// ?type= selects expense (default) or income.
func (h *ReportHandler) GetCategorySpending(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryType := models.EntryTypeExpense
	if v := c.Query("type"); v != "" {
		switch models.EntryType(v) {
		case models.EntryTypeExpense, models.EntryTypeIncome:
			entryType = models.EntryType(v)
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be expense or income"))
			return
		}
	}

	spending, err := h.reportService.GetCategorySpending(ledgerID, start, end, entryType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category_spending": spending})
}

// GetMonthlyTotals returns income/expense totals for the last N months
// (?months=, default 6, max 36).
func (h *ReportHandler) GetMonthlyTotals(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := 6
	if v := c.Query("months"); v != "" {
		parsed, parseErr := strconv.Atoi(v)
		if parseErr != nil || parsed <= 0 || parsed > 36 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 36"))
			return
		}
		months = parsed
	}

	totals, err := h.reportService.GetMonthlyTotals(ledgerID, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthly_totals": totals})
}

// ExportTransactionsCSV streams the range's transactions as a CSV download.
func (h *ReportHandler) ExportTransactionsCSV(c *gin.Context) {
	ledgerID, err := parsePathID(c, "ledgerID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.reportService.ExportTransactionsCSV(ledgerID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", start, end)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}
